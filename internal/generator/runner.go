package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/storage"
	"github.com/soft-focus/themegen/internal/ui"
)

// Selectors accepted on the command line
const (
	SelectDark  = "dark"
	SelectLight = "light"
	SelectAll   = "all"
)

// ErrVerifyFailed is returned when generated files are missing, stale or unparseable
var ErrVerifyFailed = errors.New("generated files are out of date")

// Variants maps the dark and light selectors to palette names
type Variants struct {
	Dark  string
	Light string
}

// SelectThemes turns a selector into palette names. Anything other than
// dark, light or all is treated as a literal palette name.
func SelectThemes(selector string, v Variants) []string {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "", SelectAll:
		return []string{v.Dark, v.Light}
	case SelectDark:
		return []string{v.Dark}
	case SelectLight:
		return []string{v.Light}
	default:
		return []string{selector}
	}
}

// Runner drives the registry over one or more palettes
type Runner struct {
	Storage *storage.Storage
	Loader  *palette.Loader
	Targets []Target
	Printer *ui.Printer
	Logger  zerolog.Logger
	Stage   bool // git add written files after a successful run
}

// ThemeReport lists the files written for one theme, in write order
type ThemeReport struct {
	Theme string
	Files []string
}

// Report is the outcome of Run
type Report struct {
	Themes []ThemeReport
}

// Files returns every written path across themes
func (r *Report) Files() []string {
	var out []string
	for _, t := range r.Themes {
		out = append(out, t.Files...)
	}
	return out
}

// Run validates every selected palette, then renders and writes each target in
// registry order. A validation failure writes nothing; the first render or write
// error stops the run with earlier files left in place.
func (r *Runner) Run(ctx context.Context, themes []string) (*Report, error) {
	palettes, err := r.LoadAll(themes)
	if err != nil {
		return nil, err
	}

	printer := r.printer()
	report := &Report{}

	for _, p := range palettes {
		printer.Header(p.Theme)
		tr := ThemeReport{Theme: p.Theme}

		for _, t := range r.Targets {
			if err := ctx.Err(); err != nil {
				report.Themes = append(report.Themes, tr)
				return report, err
			}

			files, err := t.Render(p, r.Storage)
			if err != nil {
				report.Themes = append(report.Themes, tr)
				return report, fmt.Errorf("generating %s for %s: %w", t.Name, p.Theme, err)
			}

			for _, f := range files {
				if err := r.Storage.WriteFile(f.Path, f.Data); err != nil {
					report.Themes = append(report.Themes, tr)
					return report, fmt.Errorf("generating %s for %s: %w", t.Name, p.Theme, err)
				}
				r.Logger.Debug().Str("target", t.Name).Str("path", f.Path).Int("bytes", len(f.Data)).Msg("wrote file")
				printer.Generated(t.Label, f.Path)
				tr.Files = append(tr.Files, f.Path)
			}
		}

		report.Themes = append(report.Themes, tr)
		printer.ThemeDone(p.Theme)
		r.Logger.Info().Str("theme", p.Theme).Int("files", len(tr.Files)).Msg("generated theme")
	}

	printer.Summary(len(report.Files()), len(report.Themes))

	if r.Stage {
		if err := r.stage(report.Files()); err != nil {
			return report, err
		}
	}
	return report, nil
}

// LoadAll loads and validates every palette, joining all failures into one error
func (r *Runner) LoadAll(themes []string) ([]*palette.Palette, error) {
	var (
		out  []*palette.Palette
		errs []error
	)
	for _, theme := range themes {
		p, err := r.Loader.Load(theme)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Runner) stage(paths []string) error {
	if !r.Storage.IsGitRepo() {
		return fmt.Errorf("cannot stage: %s is not a git repository", r.Storage.Root)
	}
	if err := r.Storage.Stage(paths...); err != nil {
		return err
	}
	r.printer().Staged(len(paths))
	r.Logger.Debug().Str("status", r.Storage.GitStatus(paths...)).Msg("staged generated files")
	return nil
}

func (r *Runner) printer() *ui.Printer {
	if r.Printer == nil {
		return ui.NewPrinter(io.Discard)
	}
	return r.Printer
}

// Planned is one file a run would write
type Planned struct {
	Theme  string
	Target string
	File   File
}

// Plan renders every target in memory without touching disk. When several
// themes write the same path, only the last rendering is kept, as it is the
// one a run leaves behind.
func (r *Runner) Plan(ctx context.Context, themes []string) ([]Planned, error) {
	palettes, err := r.LoadAll(themes)
	if err != nil {
		return nil, err
	}

	var out []Planned
	index := make(map[string]int)
	for _, p := range palettes {
		for _, t := range r.Targets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			files, err := t.Render(p, r.Storage)
			if err != nil {
				return nil, fmt.Errorf("rendering %s for %s: %w", t.Name, p.Theme, err)
			}
			for _, f := range files {
				entry := Planned{Theme: p.Theme, Target: t.Name, File: f}
				if i, ok := index[f.Path]; ok {
					out[i] = entry
					continue
				}
				index[f.Path] = len(out)
				out = append(out, entry)
			}
		}
	}
	return out, nil
}

// CheckStatus is the verify outcome for one file
type CheckStatus string

const (
	StatusOK      CheckStatus = "ok"
	StatusMissing CheckStatus = "missing"
	StatusStale   CheckStatus = "stale"
	StatusInvalid CheckStatus = "invalid"
)

// CheckResult describes one generated file on disk
type CheckResult struct {
	Planned
	Status CheckStatus
	Err    error // parse error for StatusInvalid
}

// Verify compares what a run would write with what is on disk and parses each
// existing file by its format.
func (r *Runner) Verify(ctx context.Context, themes []string) ([]CheckResult, error) {
	plan, err := r.Plan(ctx, themes)
	if err != nil {
		return nil, err
	}

	printer := r.printer()
	results := make([]CheckResult, 0, len(plan))
	bad := 0

	for _, p := range plan {
		res := CheckResult{Planned: p, Status: StatusOK}

		onDisk, err := r.Storage.ReadFile(p.File.Path)
		switch {
		case err != nil:
			return results, err
		case onDisk == nil:
			res.Status = StatusMissing
		default:
			if checkErr := Check(p.File.Format, onDisk); checkErr != nil {
				res.Status = StatusInvalid
				res.Err = checkErr
			} else if !bytes.Equal(onDisk, p.File.Data) {
				res.Status = StatusStale
			}
		}

		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		printer.Check(string(res.Status), r.Storage.Rel(p.File.Path), detail)

		if res.Status != StatusOK {
			bad++
			r.Logger.Debug().Str("path", p.File.Path).Str("status", string(res.Status)).Msg("verify")
		}
		results = append(results, res)
	}

	if bad > 0 {
		return results, fmt.Errorf("%w: %d of %d file(s) need regenerating", ErrVerifyFailed, bad, len(results))
	}
	return results, nil
}
