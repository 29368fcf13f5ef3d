package palette

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/soft-focus/themegen/internal/model"
)

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsHexColor reports whether s is #RRGGBB or #RRGGBBAA
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// Validate checks a decoded palette document against the required-key schema.
// It reports every missing or malformed key at once rather than stopping at the first.
func Validate(raw map[string]any, theme string) error {
	verr := &ValidationError{Theme: theme}

	switch v, ok := raw["appearance"]; {
	case !ok || v == nil:
		verr.Missing = append(verr.Missing, "appearance")
	default:
		s, _ := v.(string)
		if !model.Appearance(s).IsValid() {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("appearance: expected %q or %q, got %v",
				model.AppearanceDark, model.AppearanceLight, v))
		}
	}

	p, ok := raw["palette"].(map[string]any)
	if !ok {
		if _, present := raw["palette"]; present && raw["palette"] != nil {
			verr.Invalid = append(verr.Invalid, "palette: expected a mapping")
		} else {
			verr.Missing = append(verr.Missing, "palette")
		}
	}

	checkKeys(verr, p, "palette", model.BaseHues)
	checkKeys(verr, p, "palette", model.UIRoles)

	// Optional roles are not required, but a malformed one would leak into every target.
	for _, key := range sortedKeys(p) {
		if key == "terminal" || isRequired(key) {
			continue
		}
		v := p[key]
		if s, ok := v.(string); !ok || !IsHexColor(s) {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("palette.%s: expected #RRGGBB or #RRGGBBAA, got %v", key, v))
		}
	}

	t, ok := p["terminal"].(map[string]any)
	if !ok {
		if v, present := p["terminal"]; present && v != nil {
			verr.Invalid = append(verr.Invalid, "palette.terminal: expected a mapping")
		} else {
			verr.Missing = append(verr.Missing, "palette.terminal")
		}
	}
	checkKeys(verr, t, "palette.terminal", model.TerminalColors)

	checkOverrides(verr, raw["overrides"])
	checkTransparency(verr, raw["transparency"])

	if verr.Problems() > 0 {
		return verr
	}
	return nil
}

// checkKeys records each key of keys that is absent from m (a nil m means every key is absent)
func checkKeys(verr *ValidationError, m map[string]any, prefix string, keys []string) {
	for _, key := range keys {
		path := prefix + "." + key
		v, ok := m[key]
		if !ok || v == nil {
			verr.Missing = append(verr.Missing, path)
			continue
		}
		s, isString := v.(string)
		if !isString || !IsHexColor(s) {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("%s: expected #RRGGBB or #RRGGBBAA, got %v", path, v))
		}
	}
}

// checkOverrides requires overrides to be a mapping of target name to a mapping of hex colors.
// Both sections are optional, so absence is never reported.
func checkOverrides(verr *ValidationError, v any) {
	if v == nil {
		return
	}
	o, ok := v.(map[string]any)
	if !ok {
		verr.Invalid = append(verr.Invalid, "overrides: expected a mapping of target names")
		return
	}
	for _, target := range sortedKeys(o) {
		m, ok := o[target].(map[string]any)
		if !ok {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("overrides.%s: expected a mapping, got %v", target, o[target]))
			continue
		}
		for _, key := range sortedKeys(m) {
			if s, ok := m[key].(string); !ok || !IsHexColor(s) {
				verr.Invalid = append(verr.Invalid, fmt.Sprintf("overrides.%s.%s: expected #RRGGBB or #RRGGBBAA, got %v", target, key, m[key]))
			}
		}
	}
}

func checkTransparency(verr *ValidationError, v any) {
	if v == nil {
		return
	}
	t, ok := v.(map[string]any)
	if !ok {
		verr.Invalid = append(verr.Invalid, "transparency: expected a mapping")
		return
	}
	for _, key := range sortedKeys(t) {
		if _, ok := model.GetFloat(t, key); !ok {
			verr.Invalid = append(verr.Invalid, fmt.Sprintf("transparency.%s: expected a number, got %v", key, t[key]))
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isRequired(key string) bool {
	for _, k := range model.BaseHues {
		if k == key {
			return true
		}
	}
	for _, k := range model.UIRoles {
		if k == key {
			return true
		}
	}
	return false
}
