package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Layout names the directories themegen reads from and writes to, relative to the root
type Layout struct {
	ColorsDir string
	ConfigDir string
	EmacsDir  string
}

// DefaultLayout returns the chezmoi source-tree layout
func DefaultLayout() Layout {
	return Layout{
		ColorsDir: filepath.Join(".chezmoidata", "colors"),
		ConfigDir: "dot_config",
		EmacsDir:  "dot_emacs.d",
	}
}

// Palette file extensions in lookup order
const (
	ExtJSON = ".json"
	ExtYAML = ".yaml"
)

// Storage handles reading palettes and writing generated theme files
type Storage struct {
	Root      string
	ColorsDir string
	ConfigDir string
	EmacsDir  string
}

// New creates a new Storage instance
func New(root string, layout Layout) *Storage {
	if root == "" {
		root, _ = os.Getwd()
	}
	def := DefaultLayout()
	if layout.ColorsDir == "" {
		layout.ColorsDir = def.ColorsDir
	}
	if layout.ConfigDir == "" {
		layout.ConfigDir = def.ConfigDir
	}
	if layout.EmacsDir == "" {
		layout.EmacsDir = def.EmacsDir
	}
	return &Storage{
		Root:      root,
		ColorsDir: filepath.Join(root, layout.ColorsDir),
		ConfigDir: filepath.Join(root, layout.ConfigDir),
		EmacsDir:  filepath.Join(root, layout.EmacsDir),
	}
}

// Path helpers
func (s *Storage) PalettePath(theme, ext string) string {
	return filepath.Join(s.ColorsDir, theme+ext)
}

// PaletteCandidates returns the palette paths for theme in lookup order
func (s *Storage) PaletteCandidates(theme string) []string {
	return []string{
		s.PalettePath(theme, ExtJSON),
		s.PalettePath(theme, ExtYAML),
	}
}

func (s *Storage) ConfigPath(parts ...string) string {
	return filepath.Join(append([]string{s.ConfigDir}, parts...)...)
}

func (s *Storage) EmacsPath(parts ...string) string {
	return filepath.Join(append([]string{s.EmacsDir}, parts...)...)
}

// Rel returns path relative to the root, or path itself when that fails
func (s *Storage) Rel(path string) string {
	rel, err := filepath.Rel(s.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// ListThemes returns the base names of palette files in the colors directory
func (s *Storage) ListThemes() ([]string, error) {
	entries, err := os.ReadDir(s.ColorsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading colors dir: %w", err)
	}

	seen := make(map[string]bool)
	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ExtJSON && ext != ExtYAML {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if seen[name] {
			continue
		}
		seen[name] = true
		themes = append(themes, name)
	}
	sort.Strings(themes)
	return themes, nil
}

// Exists reports whether path exists
func (s *Storage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFile writes data to path, creating parent directories and replacing any existing file
func (s *Storage) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the content of path, or nil when it does not exist
func (s *Storage) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
