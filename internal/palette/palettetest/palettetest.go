// Package palettetest provides sample palettes and temporary chezmoi roots for tests.
package palettetest

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/soft-focus/themegen/internal/storage"
)

//go:embed palettes/*.json
var palettesFS embed.FS

const (
	Dark  = "soft-focus-dark"
	Light = "soft-focus-light"
)

// Raw returns a freshly decoded copy of a bundled palette, safe to mutate
func Raw(t testing.TB, theme string) map[string]any {
	t.Helper()
	data, err := palettesFS.ReadFile("palettes/" + theme + ".json")
	if err != nil {
		t.Fatalf("read sample palette %s: %v", theme, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode sample palette %s: %v", theme, err)
	}
	return raw
}

// Colors returns the palette mapping of raw
func Colors(raw map[string]any) map[string]any {
	return raw["palette"].(map[string]any)
}

// Terminal returns the palette.terminal mapping of raw
func Terminal(raw map[string]any) map[string]any {
	return Colors(raw)["terminal"].(map[string]any)
}

// Root creates a temporary chezmoi root with an empty colors directory
func Root(t testing.TB) *storage.Storage {
	t.Helper()
	s := storage.New(t.TempDir(), storage.DefaultLayout())
	if err := os.MkdirAll(s.ColorsDir, 0755); err != nil {
		t.Fatalf("create colors dir: %v", err)
	}
	return s
}

// WriteJSON writes raw as <colors>/<theme>.json
func WriteJSON(t testing.TB, s *storage.Storage, theme string, raw map[string]any) string {
	t.Helper()
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		t.Fatalf("encode palette: %v", err)
	}
	return write(t, s.PalettePath(theme, storage.ExtJSON), data)
}

// WriteYAML writes raw as <colors>/<theme>.yaml
func WriteYAML(t testing.TB, s *storage.Storage, theme string, raw map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(raw)
	if err != nil {
		t.Fatalf("encode palette: %v", err)
	}
	return write(t, s.PalettePath(theme, storage.ExtYAML), data)
}

// WriteSamples writes both bundled palettes as JSON into s
func WriteSamples(t testing.TB, s *storage.Storage) {
	t.Helper()
	WriteJSON(t, s, Dark, Raw(t, Dark))
	WriteJSON(t, s, Light, Raw(t, Light))
}

func write(t testing.TB, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
