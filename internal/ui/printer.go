package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/soft-focus/themegen/internal/model"
	"github.com/soft-focus/themegen/internal/palette"
)

const ruleWidth = 60

// Printer writes user-facing progress lines. Diagnostics go to the logger instead.
type Printer struct {
	w io.Writer

	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a Printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		success: lipgloss.NewStyle().Foreground(ColorSuccess),
		failure: lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		warning: lipgloss.NewStyle().Foreground(ColorWarning),
		muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// Header announces the theme about to be generated
func (p *Printer) Header(theme string) {
	fmt.Fprintf(p.w, "\n%s %s\n", IconTheme, p.title.Render("Generating themes for: "+theme))
	fmt.Fprintln(p.w, p.muted.Render(strings.Repeat("=", ruleWidth)))
}

// Generated confirms one written file
func (p *Printer) Generated(label, path string) {
	fmt.Fprintf(p.w, "%s Generated %s: %s\n", p.success.Render(IconSuccess), label, path)
}

// ThemeDone closes the section opened by Header
func (p *Printer) ThemeDone(theme string) {
	fmt.Fprintln(p.w, p.muted.Render(strings.Repeat("=", ruleWidth)))
	fmt.Fprintf(p.w, "%s All themes generated successfully for %s!\n", IconDone, theme)
}

// Summary reports the totals of a run
func (p *Printer) Summary(files, themes int) {
	fmt.Fprintf(p.w, "\n%s\n", p.title.Render(fmt.Sprintf("Wrote %d file(s) for %d theme(s)", files, themes)))
}

// Staged reports files added to the git index
func (p *Printer) Staged(count int) {
	fmt.Fprintf(p.w, "%s Staged %d file(s) with git add\n", p.success.Render(IconSuccess), count)
}

// Check prints one verify result line
func (p *Printer) Check(status, path, detail string) {
	var icon string
	switch status {
	case "ok":
		icon = p.success.Render(IconSuccess)
	case "missing":
		icon = p.warning.Render(IconMissing)
	case "stale":
		icon = p.warning.Render(IconStale)
	default:
		icon = p.failure.Render(IconError)
	}
	line := fmt.Sprintf("%s %-8s %s", icon, status, path)
	if detail != "" {
		line += " " + p.muted.Render("("+detail+")")
	}
	fmt.Fprintln(p.w, line)
}

// Valid confirms that a palette loaded and passed validation
func (p *Printer) Valid(theme, source string) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.success.Render(IconSuccess), theme, p.muted.Render("("+source+")"))
}

// Error prints err prominently
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s %s\n", p.failure.Render(IconError+" Error:"), err)
}

// Swatches prints every resolved role of pal followed by its terminal colors
func (p *Printer) Swatches(pal *palette.Palette) error {
	fmt.Fprintln(p.w, p.title.Render(pal.Title()))
	for _, role := range pal.Roles() {
		hex, err := pal.Color(role)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.w, SwatchLine(role, hex, !pal.Defined(role)))
	}
	fmt.Fprintln(p.w)
	for _, name := range model.TerminalColors {
		hex, err := pal.Term(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.w, SwatchLine("terminal."+name, hex, false))
	}
	return nil
}

// SwatchLine renders "name  ██████ #rrggbb", marking derived roles with "(derived)"
func SwatchLine(name, hex string, derived bool) string {
	fg := lipgloss.Color("#000000")
	if !palette.IsLight(hex) {
		fg = lipgloss.Color("#ffffff")
	}
	block := lipgloss.NewStyle().
		Background(lipgloss.Color(palette.StripAlpha(hex))).
		Foreground(fg).
		Render(SwatchBlock)

	line := fmt.Sprintf("%-26s %s %s", name, block, hex)
	if derived {
		line += lipgloss.NewStyle().Foreground(ColorMuted).Render(" (derived)")
	}
	return line
}
