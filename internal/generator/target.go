package generator

import (
	"fmt"

	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/storage"
)

// File is one rendered output
type File struct {
	Path   string
	Data   []byte
	Format Format
}

// RenderFunc renders every file a target produces for a palette
type RenderFunc func(p *palette.Palette, s *storage.Storage) ([]File, error)

// Target is one consuming application
type Target struct {
	Name   string // short id used for overrides and filtering, e.g. "kitty"
	Label  string // human label for confirmation lines, e.g. "Kitty theme"
	Render RenderFunc
}

// pathFunc computes an output path for a theme
type pathFunc func(s *storage.Storage, theme string) string

func configFile(parts ...string) func(ext string) pathFunc {
	return func(ext string) pathFunc {
		return func(s *storage.Storage, theme string) string {
			return s.ConfigPath(append(parts, theme+ext)...)
		}
	}
}

// Targets returns the generator registry in its fixed execution order
func Targets() []Target {
	return []Target{
		templateTarget("kitty", "Kitty theme", tmplFile("kitty.conf.tmpl", FormatKeyValue, configFile("kitty", "themes")(".conf"))),
		templateTarget("wezterm", "WezTerm theme", tmplFile("wezterm.toml.tmpl", FormatTOML, configFile("wezterm", "colors")(".toml"))),
		templateTarget("tmux", "tmux theme", tmplFile("tmux.conf.tmpl", FormatTmux, configFile("tmux", "themes")(".conf"))),
		templateTarget("yazi", "Yazi theme", tmplFile("yazi.toml.tmpl", FormatTOML, configFile("yazi", "themes")(".toml"))),
		templateTarget("btop", "btop theme", tmplFile("btop.theme.tmpl", FormatBtop, configFile("btop", "themes")(".theme"))),
		templateTarget("hyprland", "Hyprland theme", tmplFile("hyprland.conf.tmpl", FormatHyprland, configFile("hypr", "themes")(".conf"))),
		templateTarget("waybar", "Waybar theme", tmplFile("waybar.css.tmpl", FormatCSS, configFile("waybar", "themes")(".css"))),
		templateTarget("ly", "Ly theme", tmplFile("ly.ini.tmpl", FormatINI, configFile("ly", "themes")(".ini"))),
		templateTarget("mako", "Mako theme", tmplFile("mako.tmpl", FormatINI, configFile("mako", "themes")(""))),
		templateTarget("rofi", "Rofi theme", tmplFile("rofi.rasi.tmpl", FormatRasi, configFile("rofi", "themes")(".rasi"))),
		{Name: "vscode", Label: "VS Code settings", Render: renderVSCode},
		{Name: "zed", Label: "Zed theme", Render: renderZed},
		templateTarget("nvim", "Neovim theme", tmplFile("nvim.lua.tmpl", FormatLua, configFile("nvim", "lua", "plugins", "themes")(".lua"))),
		templateTarget("emacs", "Emacs theme", tmplFile("emacs.el.tmpl", FormatElisp, emacsThemePath)),
		templateTarget("zsh", "Zsh theme", tmplFile("zsh.zsh.tmpl", FormatShell, configFile("zsh", "themes")(".zsh"))),
		templateTarget("firefox", "Firefox theme",
			tmplFile("firefox-userchrome.css.tmpl", FormatCSS, firefoxPath("userChrome.css")),
			tmplFile("firefox-usercontent.css.tmpl", FormatCSS, firefoxPath("userContent.css")),
		),
		{Name: "obsidian", Label: "Obsidian theme", Render: renderObsidian},
	}
}

// Filter returns the targets whose names are listed, in registry order
func Filter(targets []Target, names []string) ([]Target, error) {
	if len(names) == 0 {
		return targets, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Target
	for _, t := range targets {
		if want[t.Name] {
			out = append(out, t)
			delete(want, t.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("unknown target %q", n)
	}
	return out, nil
}

func emacsThemePath(s *storage.Storage, theme string) string {
	return s.EmacsPath("themes", theme+"-theme.el")
}

// Firefox reads one userChrome.css per profile, so every variant writes the same pair of files.
func firefoxPath(name string) pathFunc {
	return func(s *storage.Storage, _ string) string {
		return s.ConfigPath("firefox", "chrome", name)
	}
}

func obsidianDir(s *storage.Storage, theme string) string {
	return s.ConfigPath("obsidian", "themes", theme)
}
