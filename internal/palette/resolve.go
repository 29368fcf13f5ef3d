package palette

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Derivation describes how a role is computed when the palette does not define it.
// With Tint empty the role aliases From; otherwise From is mixed toward Tint by Amount.
type Derivation struct {
	From   string
	Tint   string
	Amount float64
}

func (d Derivation) String() string {
	if d.Tint == "" {
		return d.From
	}
	return fmt.Sprintf("blend(%s -> %s, %.2f)", d.From, d.Tint, d.Amount)
}

// Derivations is the fallback table for optional roles. Every chain ends in a
// required palette key, so a validated palette resolves every role listed here.
var Derivations = map[string]Derivation{
	"primary":     {From: "blue"},
	"secondary":   {From: "cyan"},
	"tertiary":    {From: "bright_cyan"},
	"accent_mint": {From: "tertiary"},

	"success": {From: "green"},
	"warning": {From: "yellow"},
	"error":   {From: "red"},
	"info":    {From: "cyan"},

	"border_active": {From: "primary"},
	"cursor":        {From: "foreground"},
	"cursor_text":   {From: "background"},
	"cursor_line":   {From: "background_elevated"},
	"visual":        {From: "background", Tint: "primary", Amount: 0.25},
	"search":        {From: "background", Tint: "warning", Amount: 0.30},

	"comment":  {From: "foreground_dim"},
	"keyword":  {From: "bright_red"},
	"function": {From: "secondary"},
	"string":   {From: "success"},
	"constant": {From: "yellow"},
	"operator": {From: "foreground_alt"},

	"diff_add_bg":      {From: "background", Tint: "green", Amount: 0.20},
	"diff_change_bg":   {From: "background", Tint: "yellow", Amount: 0.20},
	"diff_delete_bg":   {From: "background", Tint: "red", Amount: 0.20},
	"lsp_reference_bg": {From: "background", Tint: "primary", Amount: 0.15},

	"indent_guide":        {From: "border"},
	"indent_guide_active": {From: "border_active"},
}

// DerivedRoles returns the names in Derivations, sorted
func DerivedRoles() []string {
	roles := make([]string, 0, len(Derivations))
	for role := range Derivations {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Resolve returns the color for role: an override wins over the palette, and
// when neither defines it the fallback role is resolved against the palette.
func Resolve(role string, palette, overrides map[string]string, fallback string) (string, error) {
	if v, ok := overrides[role]; ok {
		return v, nil
	}
	if v, ok := palette[role]; ok {
		return v, nil
	}
	if fallback == "" {
		return "", &MissingRoleError{Role: role}
	}
	return Color(fallback, palette)
}

// Color resolves role from the palette, following Derivations when it is absent
func Color(role string, palette map[string]string) (string, error) {
	return color(role, palette, nil)
}

func color(role string, palette map[string]string, seen []string) (string, error) {
	if v, ok := palette[role]; ok {
		return v, nil
	}
	for _, s := range seen {
		if s == role {
			return "", fmt.Errorf("derivation cycle: %s -> %s", strings.Join(seen, " -> "), role)
		}
	}
	d, ok := Derivations[role]
	if !ok {
		return "", &MissingRoleError{Role: role}
	}
	seen = append(seen, role)

	base, err := color(d.From, palette, seen)
	if err != nil {
		return "", err
	}
	if d.Tint == "" {
		return base, nil
	}
	tint, err := color(d.Tint, palette, seen)
	if err != nil {
		return "", err
	}
	return Blend(base, tint, d.Amount)
}

// Blend mixes base toward tint by amount (0..1) in RGB space and returns #rrggbb.
// Any alpha suffix on the inputs is ignored.
func Blend(base, tint string, amount float64) (string, error) {
	b, err := colorful.Hex(StripAlpha(base))
	if err != nil {
		return "", fmt.Errorf("blend %s: %w", base, err)
	}
	t, err := colorful.Hex(StripAlpha(tint))
	if err != nil {
		return "", fmt.Errorf("blend %s: %w", tint, err)
	}
	return b.BlendRgb(t, amount).Clamped().Hex(), nil
}

// StripAlpha drops the AA component of #RRGGBBAA
func StripAlpha(hex string) string {
	if len(hex) == 9 && strings.HasPrefix(hex, "#") {
		return hex[:7]
	}
	return hex
}

// RGBA formats hex as a CSS rgba() with the given opacity
func RGBA(hex string, opacity float64) (string, error) {
	c, err := colorful.Hex(StripAlpha(hex))
	if err != nil {
		return "", fmt.Errorf("rgba %s: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatFloat(opacity)), nil
}

// WithAlpha appends opacity as a two-digit hex alpha byte to hex
func WithAlpha(hex string, opacity float64) string {
	a := int(math.Round(clamp01(opacity) * 255))
	return fmt.Sprintf("%s%02x", StripAlpha(hex), a)
}

// IsLight reports whether hex is closer to white than black, for choosing readable text
func IsLight(hex string) bool {
	c, err := colorful.Hex(StripAlpha(hex))
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l > 0.6
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

// formatFloat prints opacities the way palette authors write them (0.95, 1, 0.8)
func formatFloat(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
