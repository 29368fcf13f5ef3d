package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterGenerationLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Header("soft-focus-dark")
	p.Generated("Kitty theme", "/root/dot_config/kitty/themes/soft-focus-dark.conf")
	p.ThemeDone("soft-focus-dark")
	p.Summary(17, 1)

	out := buf.String()
	assert.Contains(t, out, "Generating themes for: soft-focus-dark")
	assert.Contains(t, out, strings.Repeat("=", ruleWidth))
	assert.Contains(t, out, IconSuccess+" Generated Kitty theme: /root/dot_config/kitty/themes/soft-focus-dark.conf\n")
	assert.Contains(t, out, "Wrote 17 file(s) for 1 theme(s)")
}

func TestPrinterCheck(t *testing.T) {
	tests := []struct {
		status string
		detail string
		icon   string
	}{
		{"ok", "", IconSuccess},
		{"missing", "", IconMissing},
		{"stale", "", IconStale},
		{"invalid", "line 3: unclosed '{'", IconError},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).Check(tt.status, "dot_config/a.conf", tt.detail)
			out := buf.String()
			assert.True(t, strings.HasPrefix(out, tt.icon), out)
			assert.Contains(t, out, "dot_config/a.conf")
			if tt.detail != "" {
				assert.Contains(t, out, "("+tt.detail+")")
			}
		})
	}
}

func TestPrinterError(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Error(errors.New("palette not found"))
	assert.Contains(t, buf.String(), "Error: palette not found")
}

func TestSwatchLine(t *testing.T) {
	line := SwatchLine("surface", "#1a1a1a", true)
	assert.Contains(t, line, "surface")
	assert.Contains(t, line, "#1a1a1a")
	assert.Contains(t, line, "(derived)")

	assert.NotContains(t, SwatchLine("red", "#ff000080", false), "(derived)")
}
