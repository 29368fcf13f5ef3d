package palette

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/soft-focus/themegen/internal/model"
	"github.com/soft-focus/themegen/internal/storage"
)

// Loader locates, parses and validates palette files
type Loader struct {
	storage   *storage.Storage
	allowYAML bool
	logger    zerolog.Logger
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithYAML enables or disables the YAML fallback
func WithYAML(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.allowYAML = enabled
	}
}

// WithLogger sets the loader's logger
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader reading from the storage colors directory
func NewLoader(s *storage.Storage, opts ...LoaderOption) *Loader {
	l := &Loader{
		storage:   s,
		allowYAML: true,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the palette file for theme, preferring JSON over YAML
func (l *Loader) Locate(theme string) (string, error) {
	jsonPath := l.storage.PalettePath(theme, storage.ExtJSON)
	if l.storage.Exists(jsonPath) {
		return jsonPath, nil
	}

	yamlPath := l.storage.PalettePath(theme, storage.ExtYAML)
	if l.storage.Exists(yamlPath) {
		if !l.allowYAML {
			return "", &YAMLUnavailableError{Path: yamlPath}
		}
		return yamlPath, nil
	}

	return "", &NotFoundError{Theme: theme, Candidates: l.storage.PaletteCandidates(theme)}
}

// LoadRaw reads the palette file for theme without validating it
func (l *Loader) LoadRaw(theme string) (map[string]any, string, error) {
	path, err := l.Locate(theme)
	if err != nil {
		return nil, "", err
	}

	raw, err := storage.ReadDocument(path)
	if err != nil {
		return nil, path, fmt.Errorf("loading palette %s: %w", theme, err)
	}
	return raw, path, nil
}

// Load reads and validates the palette for theme
func (l *Loader) Load(theme string) (*Palette, error) {
	raw, path, err := l.LoadRaw(theme)
	if err != nil {
		return nil, err
	}

	if err := Validate(raw, theme); err != nil {
		l.logger.Debug().Str("theme", theme).Str("path", path).Msg("palette failed validation")
		return nil, err
	}

	doc := model.DocumentFromMap(raw)
	p := New(theme, doc)
	p.Source = path

	l.logger.Debug().
		Str("theme", theme).
		Str("path", path).
		Str("appearance", string(doc.Appearance)).
		Int("roles", len(doc.Colors)).
		Msg("loaded palette")

	return p, nil
}
