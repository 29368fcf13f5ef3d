package palette

import (
	"github.com/soft-focus/themegen/internal/model"
)

// DefaultOpacity is used when transparency.background_opacity is absent
const DefaultOpacity = 0.95

// Palette is the read-only view of a validated document that generators render from
type Palette struct {
	Theme      string
	Appearance model.Appearance
	Meta       model.Meta
	Source     string // file the palette was loaded from

	doc *model.Document
}

// New wraps a validated document for theme
func New(theme string, doc *model.Document) *Palette {
	return &Palette{
		Theme:      theme,
		Appearance: doc.Appearance,
		Meta:       doc.Meta,
		doc:        doc,
	}
}

// Title returns the human name of the theme ("Soft Focus Dark")
func (p *Palette) Title() string {
	return p.Meta.Family() + " " + p.Appearance.Title()
}

// Color resolves a palette or derived role
func (p *Palette) Color(role string) (string, error) {
	return Color(role, p.doc.Colors)
}

// Term returns one of the 16 ANSI colors from palette.terminal
func (p *Palette) Term(name string) (string, error) {
	if v, ok := p.doc.Terminal[name]; ok {
		return v, nil
	}
	return "", &MissingRoleError{Role: "terminal." + name}
}

// Override resolves a target-specific key, falling back to a palette role
func (p *Palette) Override(target, key, fallback string) (string, error) {
	return Resolve(key, p.doc.Colors, p.doc.Overrides[target], fallback)
}

// Opacity returns a transparency fraction or def when the palette does not set it
func (p *Palette) Opacity(key string, def float64) float64 {
	if v, ok := p.doc.Transparency[key]; ok {
		return v
	}
	return def
}

// Defined reports whether the palette sets role explicitly
func (p *Palette) Defined(role string) bool {
	_, ok := p.doc.Colors[role]
	return ok
}

// Roles returns the explicit palette roles followed by derived roles the palette omits
func (p *Palette) Roles() []string {
	roles := p.doc.ColorNames()
	for _, role := range DerivedRoles() {
		if !p.Defined(role) {
			roles = append(roles, role)
		}
	}
	return roles
}
