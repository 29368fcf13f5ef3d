package generator

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/storage"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// templateData is the dot value of every theme template
type templateData struct {
	Theme      string // file-level theme name, e.g. soft-focus-dark
	Title      string // "Soft Focus Dark"
	Family     string // "Soft Focus"
	Appearance string // "dark"
	Dark       bool
}

type templateFile struct {
	name   string
	format Format
	path   pathFunc
}

func tmplFile(name string, format Format, path pathFunc) templateFile {
	return templateFile{name: name, format: format, path: path}
}

func templateTarget(name, label string, files ...templateFile) Target {
	return Target{
		Name:  name,
		Label: label,
		Render: func(p *palette.Palette, s *storage.Storage) ([]File, error) {
			out := make([]File, 0, len(files))
			for _, f := range files {
				data, err := renderTemplate(f.name, name, p)
				if err != nil {
					return nil, err
				}
				out = append(out, File{Path: f.path(s, p.Theme), Data: data, Format: f.format})
			}
			return out, nil
		},
	}
}

// renderTemplate executes an embedded template against p; target scopes the override lookups
func renderTemplate(name, target string, p *palette.Palette) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(funcMap(target, p)).
		Option("missingkey=error").
		ParseFS(templatesFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(p)); err != nil {
		return nil, fmt.Errorf("render %s for %s: %w", target, p.Theme, err)
	}
	return buf.Bytes(), nil
}

func newTemplateData(p *palette.Palette) templateData {
	return templateData{
		Theme:      p.Theme,
		Title:      p.Title(),
		Family:     p.Meta.Family(),
		Appearance: string(p.Appearance),
		Dark:       p.Appearance.IsDark(),
	}
}

func funcMap(target string, p *palette.Palette) template.FuncMap {
	return template.FuncMap{
		"color": p.Color,
		"term":  p.Term,
		"override": func(key, fallback string) (string, error) {
			return p.Override(target, key, fallback)
		},
		"opacity": func(key string) float64 {
			return p.Opacity(key, palette.DefaultOpacity)
		},
		"rgba":   palette.RGBA,
		"alpha":  palette.WithAlpha,
		"nohash": func(hex string) string { return strings.TrimPrefix(hex, "#") },
		"ifdark": func(dark, light string) string {
			if p.Appearance.IsDark() {
				return dark
			}
			return light
		},
	}
}
