package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/storage"
)

const zedSchema = "https://zed.dev/schema/themes/v0.2.0.json"

// lookup resolves colors for JSON targets and keeps the first failure,
// so a whole document can be built before checking err once.
type lookup struct {
	p   *palette.Palette
	err error
}

func (l *lookup) color(role string) string {
	v, err := l.p.Color(role)
	if err != nil && l.err == nil {
		l.err = err
	}
	return v
}

func (l *lookup) term(name string) string {
	v, err := l.p.Term(name)
	if err != nil && l.err == nil {
		l.err = err
	}
	return v
}

func (l *lookup) alpha(role string, opacity float64) string {
	return palette.WithAlpha(l.color(role), opacity)
}

func (l *lookup) termAlpha(name string, opacity float64) string {
	return palette.WithAlpha(l.term(name), opacity)
}

// encodeJSON marshals v with the given indent and a trailing newline
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderVSCode(p *palette.Palette, s *storage.Storage) ([]File, error) {
	l := &lookup{p: p}
	colors := map[string]string{
		// Editor
		"editor.background":                   l.color("background"),
		"editor.foreground":                   l.color("foreground"),
		"editorLineNumber.foreground":         l.color("foreground_dim"),
		"editorLineNumber.activeForeground":   l.color("foreground"),
		"editorCursor.foreground":             l.color("primary"),
		"editor.selectionBackground":          l.color("visual"),
		"editor.inactiveSelectionBackground":  l.color("cursor_line"),
		"editor.lineHighlightBackground":      l.color("cursor_line"),
		"editor.findMatchBackground":          l.color("search"),
		"editor.wordHighlightBackground":      l.color("lsp_reference_bg"),
		"editorWhitespace.foreground":         l.color("foreground_dim"),
		"editorIndentGuide.background1":       l.color("indent_guide"),
		"editorIndentGuide.activeBackground1": l.color("indent_guide_active"),
		"editorRuler.foreground":              l.color("border"),
		"editorBracketMatch.background":       l.color("visual"),
		"editorBracketMatch.border":           l.color("primary"),
		"editorGutter.background":             l.color("background"),
		"editorGutter.modifiedBackground":     l.color("warning"),
		"editorGutter.addedBackground":        l.color("success"),
		"editorGutter.deletedBackground":      l.color("error"),
		"diffEditor.insertedLineBackground":   l.color("diff_add_bg"),
		"diffEditor.removedLineBackground":    l.color("diff_delete_bg"),

		// Sidebar and activity bar
		"sideBar.background":              l.color("background"),
		"sideBar.foreground":              l.color("foreground_alt"),
		"sideBar.border":                  l.color("border"),
		"sideBarTitle.foreground":         l.color("primary"),
		"sideBarSectionHeader.background": l.color("background_elevated"),
		"sideBarSectionHeader.foreground": l.color("foreground"),
		"sideBarSectionHeader.border":     l.color("border"),
		"activityBar.background":          l.color("background"),
		"activityBar.foreground":          l.color("primary"),
		"activityBar.inactiveForeground":  l.color("foreground_dim"),
		"activityBar.border":              l.color("border"),
		"activityBarBadge.background":     l.color("primary"),
		"activityBarBadge.foreground":     l.color("background"),

		// Status bar, tabs, title bar, panel
		"statusBar.background":             l.color("background"),
		"statusBar.foreground":             l.color("foreground_alt"),
		"statusBar.border":                 l.color("border"),
		"statusBar.debuggingBackground":    l.color("warning"),
		"statusBar.debuggingForeground":    l.color("background"),
		"statusBar.noFolderBackground":     l.color("background"),
		"statusBar.noFolderForeground":     l.color("foreground_alt"),
		"tab.activeBackground":             l.color("background"),
		"tab.activeForeground":             l.color("foreground"),
		"tab.activeBorder":                 l.color("primary"),
		"tab.inactiveBackground":           l.color("background"),
		"tab.inactiveForeground":           l.color("foreground_alt"),
		"tab.border":                       l.color("border"),
		"editorGroupHeader.tabsBackground": l.color("background"),
		"editorGroupHeader.tabsBorder":     l.color("border"),
		"titleBar.activeBackground":        l.color("background"),
		"titleBar.activeForeground":        l.color("foreground"),
		"titleBar.inactiveBackground":      l.color("background"),
		"titleBar.inactiveForeground":      l.color("foreground_dim"),
		"titleBar.border":                  l.color("border"),
		"panel.background":                 l.color("background"),
		"panel.border":                     l.color("border"),
		"panelTitle.activeBorder":          l.color("primary"),
		"panelTitle.activeForeground":      l.color("foreground"),
		"panelTitle.inactiveForeground":    l.color("foreground_alt"),

		// Terminal
		"terminal.background":        l.color("background"),
		"terminal.foreground":        l.color("foreground"),
		"terminal.ansiBlack":         l.term("black"),
		"terminal.ansiRed":           l.term("red"),
		"terminal.ansiGreen":         l.term("green"),
		"terminal.ansiYellow":        l.term("yellow"),
		"terminal.ansiBlue":          l.term("blue"),
		"terminal.ansiMagenta":       l.term("magenta"),
		"terminal.ansiCyan":          l.term("cyan"),
		"terminal.ansiWhite":         l.term("white"),
		"terminal.ansiBrightBlack":   l.term("bright_black"),
		"terminal.ansiBrightRed":     l.term("bright_red"),
		"terminal.ansiBrightGreen":   l.term("bright_green"),
		"terminal.ansiBrightYellow":  l.term("bright_yellow"),
		"terminal.ansiBrightBlue":    l.term("bright_blue"),
		"terminal.ansiBrightMagenta": l.term("bright_magenta"),
		"terminal.ansiBrightCyan":    l.term("bright_cyan"),
		"terminal.ansiBrightWhite":   l.term("bright_white"),

		// Git decorations
		"gitDecoration.modifiedResourceForeground":    l.color("warning"),
		"gitDecoration.deletedResourceForeground":     l.color("error"),
		"gitDecoration.untrackedResourceForeground":   l.color("success"),
		"gitDecoration.ignoredResourceForeground":     l.color("foreground_dim"),
		"gitDecoration.conflictingResourceForeground": l.color("error"),

		// Buttons and lists
		"button.background":                l.color("primary"),
		"button.foreground":                l.color("background"),
		"button.hoverBackground":           l.color("secondary"),
		"list.activeSelectionBackground":   l.color("visual"),
		"list.activeSelectionForeground":   l.color("foreground"),
		"list.inactiveSelectionBackground": l.color("cursor_line"),
		"list.inactiveSelectionForeground": l.color("foreground_alt"),
		"list.hoverBackground":             l.color("cursor_line"),
		"list.hoverForeground":             l.color("foreground"),
		"list.focusBackground":             l.color("visual"),
		"list.focusForeground":             l.color("foreground"),

		// Peek view, notifications, search
		"peekView.border":                         l.color("primary"),
		"peekViewEditor.background":               l.color("background"),
		"peekViewEditor.matchHighlightBackground": l.color("search"),
		"peekViewResult.background":               l.color("background_elevated"),
		"peekViewResult.matchHighlightBackground": l.color("search"),
		"peekViewResult.selectionBackground":      l.color("visual"),
		"peekViewTitle.background":                l.color("background_elevated"),
		"notificationCenter.border":               l.color("border"),
		"notificationCenterHeader.background":     l.color("background_elevated"),
		"notifications.background":                l.color("background_elevated"),
		"notifications.border":                    l.color("border"),
		"searchEditor.findMatchBackground":        l.color("search"),
		"search.resultsInfoForeground":            l.color("foreground_alt"),
	}
	if l.err != nil {
		return nil, fmt.Errorf("render vscode for %s: %w", p.Theme, l.err)
	}

	data, err := encodeJSON(map[string]any{"workbench.colorCustomizations": colors}, "    ")
	if err != nil {
		return nil, err
	}
	return []File{{
		Path:   s.ConfigPath("Code", "User", "themes", p.Theme+".json"),
		Data:   data,
		Format: FormatJSON,
	}}, nil
}

type zedFamily struct {
	Schema string     `json:"$schema"`
	Name   string     `json:"name"`
	Author string     `json:"author"`
	Themes []zedTheme `json:"themes"`
}

type zedTheme struct {
	Name       string         `json:"name"`
	Appearance string         `json:"appearance"`
	Style      map[string]any `json:"style"`
}

type zedPlayer struct {
	Cursor     string `json:"cursor"`
	Selection  string `json:"selection"`
	Background string `json:"background"`
}

type zedSyntax struct {
	Color      string  `json:"color"`
	FontStyle  *string `json:"font_style"`
	FontWeight *int    `json:"font_weight"`
}

func syntax(color string, italic bool) zedSyntax {
	s := zedSyntax{Color: color}
	if italic {
		style := "italic"
		s.FontStyle = &style
	}
	return s
}

func renderZed(p *palette.Palette, s *storage.Storage) ([]File, error) {
	l := &lookup{p: p}
	style := map[string]any{
		"accents": []string{l.color("accent_mint"), l.color("primary"), l.color("secondary")},

		"background":                  l.color("background"),
		"border":                      l.color("border"),
		"border.variant":              "#00000000",
		"border.focused":              l.color("border_active"),
		"border.selected":             l.color("primary"),
		"border.transparent":          "#00000000",
		"border.disabled":             l.color("foreground_dim"),
		"elevated_surface.background": l.color("background"),
		"surface.background":          l.color("background"),
		"element.background":          l.color("background"),
		"element.hover":               l.color("background_elevated"),
		"element.active":              l.color("cursor_line"),
		"element.selected":            l.color("cursor_line"),
		"element.disabled":            l.color("foreground_dim"),
		"drop_target.background":      l.alpha("secondary", 0.5),
		"ghost_element.background":    l.color("background"),
		"ghost_element.hover":         l.color("background_elevated"),
		"ghost_element.active":        l.color("cursor_line"),
		"ghost_element.selected":      l.color("cursor_line"),
		"ghost_element.disabled":      l.color("foreground_dim"),

		"text":             l.color("foreground"),
		"text.muted":       l.color("foreground_alt"),
		"text.placeholder": l.color("foreground_dim"),
		"text.disabled":    l.color("foreground_dim"),
		"text.accent":      l.color("secondary"),
		"icon":             l.color("foreground"),
		"icon.muted":       l.color("foreground_alt"),
		"icon.disabled":    l.color("foreground_dim"),
		"icon.placeholder": l.color("foreground_dim"),
		"icon.accent":      l.color("secondary"),

		"status_bar.background":            l.color("background"),
		"title_bar.background":             l.color("background"),
		"title_bar.inactive_background":    l.color("background"),
		"toolbar.background":               l.color("background"),
		"tab_bar.background":               l.color("background"),
		"tab.active_background":            l.color("background"),
		"tab.inactive_background":          l.color("background"),
		"search.match_background":          l.color("search"),
		"panel.background":                 l.color("background"),
		"panel.focused_border":             l.color("border_active"),
		"panel.indent_guide":               l.color("indent_guide"),
		"panel.indent_guide_active":        l.color("indent_guide_active"),
		"panel.indent_guide_hover":         l.color("primary"),
		"panel.overlay_background":         l.color("background_alt"),
		"pane.focused_border":              l.color("border_active"),
		"pane_group.border":                l.color("border"),
		"scrollbar.thumb.background":       l.color("foreground_dim"),
		"scrollbar.thumb.hover_background": l.color("foreground_alt"),
		"scrollbar.thumb.border":           l.color("primary"),
		"scrollbar.track.background":       l.color("background"),
		"scrollbar.track.border":           "#00000000",

		"editor.background":                            l.color("background"),
		"editor.foreground":                            l.color("foreground"),
		"editor.gutter.background":                     l.color("background"),
		"editor.subheader.background":                  l.color("background_elevated"),
		"editor.active_line.background":                l.color("cursor_line"),
		"editor.highlighted_line.background":           l.color("background_elevated"),
		"editor.line_number":                           l.color("foreground_dim"),
		"editor.active_line_number":                    l.color("foreground"),
		"editor.invisible":                             l.color("foreground_dim"),
		"editor.wrap_guide":                            l.color("border"),
		"editor.active_wrap_guide":                     l.color("foreground_dim"),
		"editor.document_highlight.bracket_background": l.color("visual"),
		"editor.document_highlight.read_background":    l.color("cursor_line"),
		"editor.document_highlight.write_background":   l.color("visual"),
		"editor.indent_guide":                          l.color("indent_guide"),
		"editor.indent_guide_active":                   l.color("indent_guide_active"),

		"terminal.background":          l.color("background"),
		"terminal.ansi.background":     l.color("background"),
		"terminal.foreground":          l.color("foreground"),
		"terminal.dim_foreground":      l.color("foreground_alt"),
		"terminal.bright_foreground":   l.color("foreground"),
		"terminal.ansi.black":          l.term("black"),
		"terminal.ansi.red":            l.term("red"),
		"terminal.ansi.green":          l.term("green"),
		"terminal.ansi.yellow":         l.term("yellow"),
		"terminal.ansi.blue":           l.term("blue"),
		"terminal.ansi.magenta":        l.term("magenta"),
		"terminal.ansi.cyan":           l.term("cyan"),
		"terminal.ansi.white":          l.term("white"),
		"terminal.ansi.bright_black":   l.term("bright_black"),
		"terminal.ansi.bright_red":     l.term("bright_red"),
		"terminal.ansi.bright_green":   l.term("bright_green"),
		"terminal.ansi.bright_yellow":  l.term("bright_yellow"),
		"terminal.ansi.bright_blue":    l.term("bright_blue"),
		"terminal.ansi.bright_magenta": l.term("bright_magenta"),
		"terminal.ansi.bright_cyan":    l.term("bright_cyan"),
		"terminal.ansi.bright_white":   l.term("bright_white"),
		"terminal.ansi.dim_black":      l.term("bright_black"),
		"terminal.ansi.dim_red":        l.term("red"),
		"terminal.ansi.dim_green":      l.term("green"),
		"terminal.ansi.dim_yellow":     l.term("yellow"),
		"terminal.ansi.dim_blue":       l.term("blue"),
		"terminal.ansi.dim_magenta":    l.term("magenta"),
		"terminal.ansi.dim_cyan":       l.term("cyan"),
		"terminal.ansi.dim_white":      l.term("bright_black"),

		"link_text.hover":        l.color("secondary"),
		"conflict":               l.term("bright_red"),
		"conflict.border":        l.term("bright_red"),
		"conflict.background":    l.color("diff_delete_bg"),
		"created":                l.term("green"),
		"created.border":         l.term("green"),
		"created.background":     l.color("diff_add_bg"),
		"deleted":                l.term("red"),
		"deleted.border":         l.term("red"),
		"deleted.background":     l.color("diff_delete_bg"),
		"hidden":                 l.color("foreground_dim"),
		"hidden.border":          l.color("foreground_dim"),
		"hidden.background":      l.color("background_alt"),
		"ignored":                l.color("foreground_dim"),
		"ignored.border":         l.color("foreground_dim"),
		"ignored.background":     l.color("background_alt"),
		"modified":               l.term("yellow"),
		"modified.border":        l.term("yellow"),
		"modified.background":    l.color("diff_change_bg"),
		"predictive":             l.color("foreground_dim"),
		"predictive.border":      l.color("primary"),
		"predictive.background":  l.color("background_alt"),
		"renamed":                l.color("accent_mint"),
		"renamed.border":         l.color("accent_mint"),
		"renamed.background":     l.color("accent_mint"),
		"success":                l.term("green"),
		"success.border":         l.term("green"),
		"success.background":     l.term("green"),
		"unreachable":            l.term("red"),
		"unreachable.border":     l.term("red"),
		"unreachable.background": l.term("red"),

		"version_control.added":               l.term("green"),
		"version_control.added_background":    l.termAlpha("green", 0.15),
		"version_control.deleted":             l.term("red"),
		"version_control.deleted_background":  l.termAlpha("red", 0.15),
		"version_control.modified":            l.term("yellow"),
		"version_control.modified_background": l.termAlpha("yellow", 0.15),
		"version_control.renamed":             l.color("accent_mint"),
		"version_control.conflict":            l.term("bright_red"),
		"version_control.conflict_background": l.termAlpha("bright_red", 0.15),
		"version_control.ignored":             l.color("foreground_dim"),

		"error":              l.term("bright_red"),
		"error.background":   l.color("background"),
		"error.border":       l.term("bright_red"),
		"warning":            l.term("yellow"),
		"warning.background": l.color("background"),
		"warning.border":     l.term("yellow"),
		"hint":               l.color("secondary"),
		"hint.background":    l.color("background"),
		"hint.border":        l.color("secondary"),
		"info":               l.color("info"),
		"info.background":    l.color("background"),
		"info.border":        l.color("info"),

		// Selection stays translucent so selected text remains readable.
		"players": []zedPlayer{{
			Cursor:     l.color("cursor"),
			Selection:  l.alpha("primary", 0.25),
			Background: l.color("background"),
		}},
		"syntax": map[string]zedSyntax{
			"comment":  syntax(l.color("comment"), true),
			"keyword":  syntax(l.color("keyword"), false),
			"function": syntax(l.color("function"), false),
			"string":   syntax(l.term("green"), false),
			"variable": syntax(l.color("foreground"), false),
			"type":     syntax(l.term("yellow"), false),
			"constant": syntax(l.color("constant"), false),
			"operator": syntax(l.color("operator"), false),
		},
	}
	if l.err != nil {
		return nil, fmt.Errorf("render zed for %s: %w", p.Theme, l.err)
	}

	family := zedFamily{
		Schema: zedSchema,
		Name:   p.Meta.Family(),
		Author: p.Meta.Author,
		Themes: []zedTheme{{
			Name:       p.Title(),
			Appearance: string(p.Appearance),
			Style:      style,
		}},
	}
	data, err := encodeJSON(family, "    ")
	if err != nil {
		return nil, err
	}
	return []File{{
		Path:   s.ConfigPath("zed", "themes", p.Theme+".json"),
		Data:   data,
		Format: FormatJSON,
	}}, nil
}

type obsidianManifest struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	MinAppVersion string `json:"minAppVersion"`
	Author        string `json:"author,omitempty"`
	AuthorURL     string `json:"authorUrl,omitempty"`
}

func renderObsidian(p *palette.Palette, s *storage.Storage) ([]File, error) {
	manifest, err := encodeJSON(obsidianManifest{
		Name:          p.Title(),
		Version:       "1.0.0",
		MinAppVersion: "0.16.0",
		Author:        p.Meta.Author,
		AuthorURL:     p.Meta.URL,
	}, "  ")
	if err != nil {
		return nil, err
	}

	css, err := renderTemplate("obsidian.css.tmpl", "obsidian", p)
	if err != nil {
		return nil, err
	}

	dir := obsidianDir(s, p.Theme)
	return []File{
		{Path: filepath.Join(dir, "manifest.json"), Data: manifest, Format: FormatJSON},
		{Path: filepath.Join(dir, "theme.css"), Data: css, Format: FormatCSS},
	}, nil
}
