package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/soft-focus/themegen/internal/generator"
	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/storage"
	"github.com/soft-focus/themegen/internal/ui"
)

// DetailMode selects what the right panel shows for the selected theme
type DetailMode int

const (
	DetailRoles DetailMode = iota
	DetailTargets
)

func (d DetailMode) String() string {
	switch d {
	case DetailRoles:
		return "Roles"
	case DetailTargets:
		return "Targets"
	}
	return ""
}

// AppState represents the current UI state
type AppState int

const (
	StateNormal AppState = iota
	StateFilter
	StateConfirm
	StateBusy
)

// Options carries the collaborators the preview drives
type Options struct {
	Storage  *storage.Storage
	Loader   *palette.Loader
	Runner   *generator.Runner
	Variants generator.Variants
	Logger   zerolog.Logger
}

// Model is the main Bubble Tea model
type Model struct {
	// Core dependencies
	storage  *storage.Storage
	loader   *palette.Loader
	runner   *generator.Runner
	variants generator.Variants
	logger   zerolog.Logger
	keys     KeyMap
	styles   Styles

	// Window dimensions
	width  int
	height int

	// Theme list state
	themes   []string
	visible  []string
	selected int

	// Detail panel
	mode   DetailMode
	detail string

	// UI state
	state     AppState
	statusMsg string

	// Sub-components
	textInput textinput.Model
	viewport  viewport.Model
	help      help.Model

	// Confirm state
	confirmMsg    string
	confirmAction func() tea.Cmd
}

// New creates a new TUI model
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "theme name"
	ti.CharLimit = 64
	ti.Width = 30

	vp := viewport.New(40, 20)

	// The runner's printer would write over the alternate screen.
	runner := *opts.Runner
	runner.Printer = nil

	return Model{
		storage:   opts.Storage,
		loader:    opts.Loader,
		runner:    &runner,
		variants:  opts.Variants,
		logger:    opts.Logger,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		textInput: ti,
		viewport:  vp,
		help:      help.New(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.loadThemes()
}

// Themes found in the colors directory
type themesLoadedMsg struct {
	themes []string
	err    error
}

// Rendered detail panel for one theme
type detailLoadedMsg struct {
	theme   string
	mode    DetailMode
	content string
}

// Outcome of a generation run
type generatedMsg struct {
	report *generator.Report
	err    error
}

// Request to reload themes (after the editor closes)
type refreshRequestMsg struct{}

func (m Model) loadThemes() tea.Cmd {
	return func() tea.Msg {
		themes, err := m.storage.ListThemes()
		return themesLoadedMsg{themes: themes, err: err}
	}
}

func (m Model) loadDetail() tea.Cmd {
	theme := m.selectedTheme()
	if theme == "" {
		return nil
	}
	mode := m.mode
	return func() tea.Msg {
		return detailLoadedMsg{theme: theme, mode: mode, content: m.renderDetail(theme, mode)}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(1, msg.Width-msg.Width/3-4)
		m.viewport.Height = max(1, msg.Height-5)
		m.help.Width = msg.Width - 2
		return m, nil

	case themesLoadedMsg:
		if msg.err != nil {
			m.statusMsg = "Error: " + msg.err.Error()
			return m, nil
		}
		m.themes = msg.themes
		m.applyFilter()
		return m, m.loadDetail()

	case detailLoadedMsg:
		// Ignore results for a selection the user already moved away from.
		if msg.theme != m.selectedTheme() || msg.mode != m.mode {
			return m, nil
		}
		m.detail = msg.content
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		return m, nil

	case generatedMsg:
		m.state = StateNormal
		if msg.err != nil {
			m.statusMsg = "Error: " + msg.err.Error()
			m.logger.Error().Err(msg.err).Msg("generation failed")
		} else {
			m.statusMsg = fmt.Sprintf("%s Wrote %d file(s) for %d theme(s)",
				ui.IconSuccess, len(msg.report.Files()), len(msg.report.Themes))
		}
		return m, m.loadDetail()

	case refreshRequestMsg:
		return m, m.loadThemes()
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateFilter:
		return m.handleFilterKey(msg)
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateBusy:
		// Ignore key input while generating
		return m, nil
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			return m, m.loadDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
			return m, m.loadDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.mode = (m.mode + 1) % 2
		return m, m.loadDetail()

	case key.Matches(msg, m.keys.Filter):
		m.state = StateFilter
		cmd := m.textInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Generate):
		return m.confirmGenerate()

	case key.Matches(msg, m.keys.GenerateAll):
		return m.confirmGenerateAll()

	case key.Matches(msg, m.keys.Edit):
		return m.editPalette()

	case key.Matches(msg, m.keys.Refresh):
		m.statusMsg = "Refreshed"
		return m, m.loadThemes()
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.state = StateNormal
		m.textInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.state = StateNormal
		m.textInput.Blur()
		m.textInput.Reset()
		m.applyFilter()
		return m, m.loadDetail()
	}

	before := m.selectedTheme()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter()
	if m.selectedTheme() != before {
		return m, tea.Batch(cmd, m.loadDetail())
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.state = StateNormal
		if m.confirmAction == nil {
			return m, nil
		}
		m.state = StateBusy
		m.statusMsg = "Generating..."
		return m, m.confirmAction()

	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Escape):
		m.state = StateNormal
		m.statusMsg = "Cancelled"
		return m, nil
	}

	return m, nil
}

// applyFilter narrows the list to themes containing the filter text and
// keeps the selection on the same theme when it is still visible
func (m *Model) applyFilter() {
	current := m.selectedTheme()
	query := strings.ToLower(strings.TrimSpace(m.textInput.Value()))

	var visible []string
	for _, theme := range m.themes {
		if query == "" || strings.Contains(strings.ToLower(theme), query) {
			visible = append(visible, theme)
		}
	}
	m.visible = visible

	m.selected = 0
	for i, theme := range m.visible {
		if theme == current {
			m.selected = i
			break
		}
	}
	if len(m.visible) == 0 {
		m.detail = ""
		m.viewport.SetContent("")
	}
}

func (m Model) selectedTheme() string {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return ""
	}
	return m.visible[m.selected]
}

// renderDetail builds the right panel for theme. Load and validation errors
// are shown in place of the swatches.
func (m Model) renderDetail(theme string, mode DetailMode) string {
	p, err := m.loader.Load(theme)
	if err != nil {
		return m.styles.ErrorText.Render(err.Error())
	}

	if mode == DetailRoles {
		var buf bytes.Buffer
		if err := ui.NewPrinter(&buf).Swatches(p); err != nil {
			return m.styles.ErrorText.Render(err.Error())
		}
		return buf.String()
	}

	results, err := m.runner.Verify(context.Background(), []string{theme})
	if err != nil && !errors.Is(err, generator.ErrVerifyFailed) {
		return m.styles.ErrorText.Render(err.Error())
	}

	width := m.viewport.Width
	var lines []string
	for _, res := range results {
		line := fmt.Sprintf("%s %-8s %-10s %s", StatusIcons[string(res.Status)], res.Status, res.Target, m.storage.Rel(res.File.Path))
		if width > 3 && runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width-3, "...")
		}
		if res.Err != nil {
			line += "\n    " + m.styles.ErrorText.Render(res.Err.Error())
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Reserve 3 lines for header(1) + footer(1) + status(1)
	listWidth := m.width / 3
	detailWidth := m.width - listWidth
	contentHeight := max(1, m.height-3)

	header := m.styles.Header.Render(
		fmt.Sprintf("%s themegen [%s]", ui.IconTheme, m.mode),
	)

	listPanel := m.styles.ListPanel.
		Width(listWidth).
		Render(m.renderList(listWidth-2, contentHeight))

	detailPanel := m.styles.DetailPanel.
		Width(detailWidth).
		Render(m.renderDetailPanel(detailWidth-4, contentHeight))

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)

	footer := m.styles.Footer.Render(m.help.View(m.keys))
	status := m.styles.StatusBar.Render(m.statusMsg)

	var overlay string
	switch m.state {
	case StateConfirm:
		overlay = m.renderConfirmOverlay()
	case StateBusy:
		overlay = m.styles.PopupBorder.Render(m.styles.PopupTitle.Render("Generating..."))
	}

	if overlay != "" {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(overlay)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, header, content, footer, status)

	// Force exact terminal height to prevent scrolling issues
	lines := strings.Split(view, "\n")
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderList(width, height int) string {
	var lines []string

	if m.state == StateFilter || m.textInput.Value() != "" {
		lines = append(lines, m.styles.FilterPrompt.Render(m.textInput.View()))
	}

	if len(m.visible) == 0 {
		if len(m.themes) == 0 {
			lines = append(lines, "No palettes in "+m.storage.Rel(m.storage.ColorsDir))
		} else {
			lines = append(lines, "No matching themes")
		}
	}

	for i, theme := range m.visible {
		if len(lines) >= height {
			break
		}

		line := theme
		switch theme {
		case m.variants.Dark:
			line = ui.IconDark + " " + theme
		case m.variants.Light:
			line = ui.IconLight + " " + theme
		default:
			line = "  " + theme
		}

		// Truncate using display width
		if runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width-3, "...")
		}

		if i == m.selected {
			line = m.styles.SelectedItem.Render(line)
		} else {
			line = m.styles.NormalItem.Render(line)
		}
		lines = append(lines, line)
	}

	// Pad to fill height to prevent layout shifts
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetailPanel(width, height int) string {
	theme := m.selectedTheme()
	if theme == "" {
		return "No theme selected"
	}

	title := m.styles.DetailTitle.Render(fmt.Sprintf("%s: %s", m.mode, theme))
	rule := m.styles.Rule.Render(strings.Repeat("─", max(1, min(width, 40))))
	scroll := m.styles.Rule.Render(fmt.Sprintf(" %3.0f%%", m.viewport.ScrollPercent()*100))

	lines := []string{title + scroll, rule}
	lines = append(lines, strings.Split(m.viewport.View(), "\n")...)
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderConfirmOverlay() string {
	return m.styles.PopupBorder.Render(
		fmt.Sprintf("%s\n\n[y]es / [n]o",
			m.styles.PopupTitle.Render(ui.IconConfirm+m.confirmMsg),
		),
	)
}

func (m Model) confirmGenerate() (Model, tea.Cmd) {
	theme := m.selectedTheme()
	if theme == "" {
		m.statusMsg = "No theme selected"
		return m, nil
	}
	return m.confirm(fmt.Sprintf("Generate %d target(s) for %s?", len(m.runner.Targets), theme), []string{theme})
}

func (m Model) confirmGenerateAll() (Model, tea.Cmd) {
	themes := generator.SelectThemes(generator.SelectAll, m.variants)
	return m.confirm(fmt.Sprintf("Generate %s?", strings.Join(themes, " and ")), themes)
}

func (m Model) confirm(prompt string, themes []string) (Model, tea.Cmd) {
	runner := m.runner
	m.state = StateConfirm
	m.confirmMsg = prompt
	m.confirmAction = func() tea.Cmd {
		return func() tea.Msg {
			report, err := runner.Run(context.Background(), themes)
			return generatedMsg{report: report, err: err}
		}
	}
	return m, nil
}

func (m Model) editPalette() (Model, tea.Cmd) {
	theme := m.selectedTheme()
	if theme == "" {
		m.statusMsg = "No theme selected"
		return m, nil
	}

	path, err := m.loader.Locate(theme)
	if err != nil {
		m.statusMsg = "Error: " + err.Error()
		return m, nil
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	cmd := exec.Command(editor, path)
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			m.logger.Warn().Err(err).Str("editor", editor).Msg("editor exited with error")
		}
		return refreshRequestMsg{}
	})
}
