package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft-focus/themegen/internal/model"
	"github.com/soft-focus/themegen/internal/palette/palettetest"
)

func TestValidateAcceptsSamples(t *testing.T) {
	for _, theme := range []string{palettetest.Dark, palettetest.Light} {
		t.Run(theme, func(t *testing.T) {
			require.NoError(t, Validate(palettetest.Raw(t, theme), theme))
		})
	}
}

func TestValidateReportsEveryMissingKey(t *testing.T) {
	tests := []struct {
		name   string
		remove func(raw map[string]any)
		want   []string
	}{
		{
			name: "single terminal color",
			remove: func(raw map[string]any) {
				delete(palettetest.Terminal(raw), "bright_cyan")
			},
			want: []string{"palette.terminal.bright_cyan"},
		},
		{
			name: "hues and ui roles",
			remove: func(raw map[string]any) {
				p := palettetest.Colors(raw)
				delete(p, "red")
				delete(p, "bright_magenta")
				delete(p, "background_elevated")
				delete(p, "border")
			},
			want: []string{"palette.red", "palette.bright_magenta", "palette.background_elevated", "palette.border"},
		},
		{
			name: "across sections",
			remove: func(raw map[string]any) {
				delete(raw, "appearance")
				delete(palettetest.Colors(raw), "foreground")
				delete(palettetest.Terminal(raw), "black")
				delete(palettetest.Terminal(raw), "cyan")
			},
			want: []string{"appearance", "palette.foreground", "palette.terminal.black", "palette.terminal.cyan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := palettetest.Raw(t, palettetest.Dark)
			tt.remove(raw)

			err := Validate(raw, palettetest.Dark)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPalette))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.ElementsMatch(t, tt.want, verr.Missing)
			assert.Empty(t, verr.Invalid)
			for _, key := range tt.want {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestValidateMissingTerminalSection(t *testing.T) {
	raw := palettetest.Raw(t, palettetest.Dark)
	delete(palettetest.Colors(raw), "terminal")

	var verr *ValidationError
	require.True(t, errors.As(Validate(raw, "x"), &verr))

	assert.Len(t, verr.Missing, len(model.TerminalColors)+1)
	assert.Contains(t, verr.Missing, "palette.terminal")
	for _, name := range model.TerminalColors {
		assert.Contains(t, verr.Missing, "palette.terminal."+name)
	}
}

func TestValidateMissingPaletteSection(t *testing.T) {
	raw := palettetest.Raw(t, palettetest.Dark)
	delete(raw, "palette")

	var verr *ValidationError
	require.True(t, errors.As(Validate(raw, "x"), &verr))

	assert.Contains(t, verr.Missing, "palette")
	assert.Contains(t, verr.Missing, "palette.red")
	assert.Contains(t, verr.Missing, "palette.border")
	assert.Contains(t, verr.Missing, "palette.terminal")
	assert.Contains(t, verr.Missing, "palette.terminal.bright_white")
	assert.Len(t, verr.Missing, 1+len(model.BaseHues)+len(model.UIRoles)+1+len(model.TerminalColors))
}

func TestValidateOnlyAppearance(t *testing.T) {
	var verr *ValidationError
	require.True(t, errors.As(Validate(map[string]any{"appearance": "dark"}, "x"), &verr))

	assert.Len(t, verr.Missing, 37)
	assert.Contains(t, verr.Missing, "palette.terminal")
	assert.Empty(t, verr.Invalid)
}

func TestValidateOverridesAndTransparency(t *testing.T) {
	raw := palettetest.Raw(t, palettetest.Dark)
	raw["overrides"] = map[string]any{
		"tmux":  map[string]any{"status_bg": 5, "status_fg": "#f5f5f5"},
		"kitty": map[string]any{"active_tab_bg": "blue"},
		"mako":  "#ffffff",
	}
	raw["transparency"] = map[string]any{
		"background_opacity": "0.9",
		"popup_opacity":      1,
	}

	var verr *ValidationError
	require.True(t, errors.As(Validate(raw, "x"), &verr))

	assert.Empty(t, verr.Missing)
	require.Len(t, verr.Invalid, 4)
	msg := verr.Error()
	for _, key := range []string{
		"overrides.tmux.status_bg",
		"overrides.kitty.active_tab_bg",
		"overrides.mako: expected a mapping",
		"transparency.background_opacity: expected a number",
	} {
		assert.Contains(t, msg, key)
	}
	assert.NotContains(t, msg, "status_fg")
	assert.NotContains(t, msg, "popup_opacity")
}

func TestValidateOverridesWrongShape(t *testing.T) {
	raw := palettetest.Raw(t, palettetest.Dark)
	raw["overrides"] = []any{"tmux"}
	raw["transparency"] = 0.9

	var verr *ValidationError
	require.True(t, errors.As(Validate(raw, "x"), &verr))
	assert.ElementsMatch(t, []string{
		"overrides: expected a mapping of target names",
		"transparency: expected a mapping",
	}, verr.Invalid)
}

func TestValidateInvalidValues(t *testing.T) {
	raw := palettetest.Raw(t, palettetest.Dark)
	raw["appearance"] = "dusk"
	palettetest.Colors(raw)["red"] = "crimson"
	palettetest.Colors(raw)["primary"] = "#12345"
	palettetest.Terminal(raw)["white"] = 42.0

	var verr *ValidationError
	require.True(t, errors.As(Validate(raw, "x"), &verr))

	assert.Empty(t, verr.Missing)
	require.Len(t, verr.Invalid, 4)
	msg := verr.Error()
	for _, key := range []string{"appearance", "palette.red", "palette.primary", "palette.terminal.white"} {
		assert.Contains(t, msg, key)
	}
}

func TestValidateNullCountsAsMissing(t *testing.T) {
	// An unquoted "#050505" in YAML decodes as a comment, leaving a null value.
	raw := palettetest.Raw(t, palettetest.Dark)
	palettetest.Colors(raw)["background"] = nil

	var verr *ValidationError
	require.True(t, errors.As(Validate(raw, "x"), &verr))
	assert.Equal(t, []string{"palette.background"}, verr.Missing)
}

func TestValidationErrorHint(t *testing.T) {
	raw := palettetest.Raw(t, palettetest.Dark)
	delete(palettetest.Colors(raw), "blue")

	err := Validate(raw, palettetest.Dark)
	require.Error(t, err)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, `palette "soft-focus-dark" is invalid`))
	assert.Contains(t, msg, "missing 1 required key(s)")
	assert.Contains(t, msg, "derived by the generator")
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, IsHexColor("#050505"))
	assert.True(t, IsHexColor("#AbCdEf"))
	assert.True(t, IsHexColor("#05050580"))
	assert.False(t, IsHexColor("050505"))
	assert.False(t, IsHexColor("#fff"))
	assert.False(t, IsHexColor("#0505050"))
	assert.False(t, IsHexColor("#zzzzzz"))
}
