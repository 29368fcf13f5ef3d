package model

import (
	"sort"
	"strings"
)

// Appearance is the light/dark axis of a palette
type Appearance string

const (
	AppearanceDark  Appearance = "dark"
	AppearanceLight Appearance = "light"
)

// IsValid returns true for the appearances generators know how to label
func (a Appearance) IsValid() bool {
	return a == AppearanceDark || a == AppearanceLight
}

// IsDark returns true for dark palettes
func (a Appearance) IsDark() bool {
	return a == AppearanceDark
}

// Title returns the capitalized label used in generated headers ("Dark")
func (a Appearance) Title() string {
	s := string(a)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DefaultFamily is the theme family name written into generated titles
const DefaultFamily = "Soft Focus"

// BaseHues are the hue roles every palette must define
var BaseHues = []string{
	"red", "green", "yellow", "blue", "cyan", "magenta",
	"bright_red", "bright_green", "bright_yellow", "bright_blue", "bright_cyan", "bright_magenta",
}

// UIRoles are the surface and text roles every palette must define
var UIRoles = []string{
	"background", "foreground", "background_alt", "background_elevated",
	"foreground_alt", "foreground_dim", "border",
}

// TerminalColors are the 16 ANSI names in palette.terminal, in color0..color15 order
var TerminalColors = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// Meta holds optional descriptive fields of a palette
type Meta struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Family returns the configured family name or the default
func (m Meta) Family() string {
	if m.Name == "" {
		return DefaultFamily
	}
	return m.Name
}

// Document is a validated palette file
type Document struct {
	Appearance   Appearance
	Meta         Meta
	Colors       map[string]string            // palette.* except terminal
	Terminal     map[string]string            // palette.terminal.*
	Overrides    map[string]map[string]string // target -> key -> color
	Transparency map[string]float64
}

// DocumentFromMap converts a decoded palette file into a Document.
// Values of unexpected types are skipped; Validate reports them beforehand.
func DocumentFromMap(raw map[string]any) *Document {
	doc := &Document{
		Appearance:   Appearance(GetString(raw, "appearance")),
		Colors:       make(map[string]string),
		Terminal:     make(map[string]string),
		Overrides:    make(map[string]map[string]string),
		Transparency: make(map[string]float64),
	}

	if meta, ok := raw["meta"].(map[string]any); ok {
		doc.Meta = Meta{
			Name:   GetString(meta, "name"),
			Author: GetString(meta, "author"),
			URL:    GetString(meta, "url"),
		}
	}

	if p, ok := raw["palette"].(map[string]any); ok {
		for k, v := range p {
			if k == "terminal" {
				continue
			}
			if s, ok := v.(string); ok {
				doc.Colors[k] = s
			}
		}
		if t, ok := p["terminal"].(map[string]any); ok {
			for k, v := range t {
				if s, ok := v.(string); ok {
					doc.Terminal[k] = s
				}
			}
		}
	}

	if o, ok := raw["overrides"].(map[string]any); ok {
		for target, v := range o {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			doc.Overrides[target] = make(map[string]string, len(m))
			for k, c := range m {
				if s, ok := c.(string); ok {
					doc.Overrides[target][k] = s
				}
			}
		}
	}

	if t, ok := raw["transparency"].(map[string]any); ok {
		for k := range t {
			if f, ok := GetFloat(t, k); ok {
				doc.Transparency[k] = f
			}
		}
	}

	return doc
}

// ColorNames returns the palette role names in sorted order
func (d *Document) ColorNames() []string {
	names := make([]string, 0, len(d.Colors))
	for k := range d.Colors {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// GetString safely extracts a string from a map
func GetString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetFloat extracts a number from a map decoded from JSON or YAML
func GetFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
