package palette

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPaletteNotFound = errors.New("palette not found")
	ErrYAMLUnavailable = errors.New("YAML palette support disabled")
	ErrInvalidPalette  = errors.New("invalid palette")
	ErrUnknownRole     = errors.New("unknown color role")
)

// NotFoundError is returned when no palette file exists for a theme
type NotFoundError struct {
	Theme      string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("palette file not found for %q: tried %s", e.Theme, strings.Join(e.Candidates, " and "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrPaletteNotFound }

// YAMLUnavailableError is returned when only a YAML palette exists and YAML loading is turned off
type YAMLUnavailableError struct {
	Path string
}

func (e *YAMLUnavailableError) Error() string {
	return fmt.Sprintf("YAML palette found at %s but YAML support is disabled; "+
		"set yaml: true in themegen.yaml (or THEMEGEN_YAML=true), or convert %s to JSON", e.Path, e.Path)
}

func (e *YAMLUnavailableError) Is(target error) bool { return target == ErrYAMLUnavailable }

// ValidationError lists every problem found in a palette document
type ValidationError struct {
	Theme   string
	Missing []string // namespaced key paths, e.g. palette.terminal.bright_cyan
	Invalid []string // "path: reason"
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "palette %q is invalid", e.Theme)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&sb, "\nmissing %d required key(s):", len(e.Missing))
		for _, key := range e.Missing {
			sb.WriteString("\n  - ")
			sb.WriteString(key)
		}
	}
	if len(e.Invalid) > 0 {
		fmt.Fprintf(&sb, "\ninvalid %d value(s):", len(e.Invalid))
		for _, item := range e.Invalid {
			sb.WriteString("\n  - ")
			sb.WriteString(item)
		}
	}
	sb.WriteString("\nhint: semantic colors (primary, secondary, success, warning, error, info, ...) " +
		"are derived by the generator from the base hues and must not be added to the palette to satisfy this check")
	return sb.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidPalette }

// Problems returns the number of missing and invalid entries
func (e *ValidationError) Problems() int {
	return len(e.Missing) + len(e.Invalid)
}

// MissingRoleError is returned when a role is neither in the palette nor derivable
type MissingRoleError struct {
	Role string
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("color role %q not found in palette and has no fallback", e.Role)
}

func (e *MissingRoleError) Is(target error) bool { return target == ErrUnknownRole }
