package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft-focus/themegen/internal/generator"
	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/palette/palettetest"
	"github.com/soft-focus/themegen/internal/storage"
)

func newTestModel(t *testing.T, s *storage.Storage) Model {
	t.Helper()
	loader := palette.NewLoader(s)
	m := New(Options{
		Storage:  s,
		Loader:   loader,
		Runner:   &generator.Runner{Storage: s, Loader: loader, Targets: generator.Targets(), Logger: zerolog.Nop()},
		Variants: generator.Variants{Dark: palettetest.Dark, Light: palettetest.Light},
		Logger:   zerolog.Nop(),
	})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 140, Height: 50})
	return m
}

// step feeds msg to m and returns the concrete model
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// settle runs cmd and feeds its message back until no command is left
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		m, cmd = step(t, m, msg)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewListsThemesAndSwatches(t *testing.T) {
	s := palettetest.Root(t)
	palettetest.WriteSamples(t, s)

	m := newTestModel(t, s)
	m = settle(t, m, m.Init())

	assert.Equal(t, []string{palettetest.Dark, palettetest.Light}, m.visible)
	assert.Equal(t, palettetest.Dark, m.selectedTheme())
	assert.Contains(t, m.detail, "background")
	assert.Contains(t, m.detail, "terminal.bright_white")
	assert.Contains(t, m.View(), palettetest.Dark)

	next, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = settle(t, next, cmd)
	assert.Equal(t, palettetest.Light, m.selectedTheme())
	assert.Contains(t, m.detail, "#")
}

func TestPreviewShowsValidationError(t *testing.T) {
	s := palettetest.Root(t)
	broken := palettetest.Raw(t, palettetest.Dark)
	delete(palettetest.Colors(broken), "red")
	palettetest.WriteJSON(t, s, palettetest.Dark, broken)

	m := newTestModel(t, s)
	m = settle(t, m, m.Init())

	assert.Contains(t, m.detail, "palette.red")
}

func TestPreviewToggleShowsTargets(t *testing.T) {
	s := palettetest.Root(t)
	palettetest.WriteSamples(t, s)

	m := newTestModel(t, s)
	m = settle(t, m, m.Init())

	next, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = settle(t, next, cmd)

	assert.Equal(t, DetailTargets, m.mode)
	assert.Contains(t, m.detail, "missing")
	assert.Contains(t, m.detail, "kitty")
}

func TestPreviewFilter(t *testing.T) {
	s := palettetest.Root(t)
	palettetest.WriteSamples(t, s)

	m := newTestModel(t, s)
	m = settle(t, m, m.Init())

	m, _ = step(t, m, keyRunes("/"))
	require.Equal(t, StateFilter, m.state)

	next, cmd := step(t, m, keyRunes("light"))
	m = settle(t, next, cmd)
	assert.Equal(t, []string{palettetest.Light}, m.visible)
	assert.Equal(t, palettetest.Light, m.selectedTheme())

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateNormal, m.state)
	assert.Len(t, m.visible, 2)
	assert.Equal(t, palettetest.Light, m.selectedTheme())
	_ = settle(t, m, cmd)
}

func TestPreviewGenerateAfterConfirm(t *testing.T) {
	s := palettetest.Root(t)
	palettetest.WriteSamples(t, s)

	m := newTestModel(t, s)
	m = settle(t, m, m.Init())

	m, cmd := step(t, m, keyRunes("g"))
	assert.Nil(t, cmd)
	require.Equal(t, StateConfirm, m.state)
	assert.Contains(t, m.confirmMsg, palettetest.Dark)

	m, cmd = step(t, m, keyRunes("y"))
	require.Equal(t, StateBusy, m.state)
	require.NotNil(t, cmd)

	m = settle(t, m, cmd)
	assert.Equal(t, StateNormal, m.state)
	assert.Contains(t, m.statusMsg, "Wrote")
	assert.FileExists(t, s.ConfigPath("kitty", "themes", palettetest.Dark+".conf"))
	assert.NoFileExists(t, s.ConfigPath("kitty", "themes", palettetest.Light+".conf"))
}

func TestPreviewConfirmCancel(t *testing.T) {
	s := palettetest.Root(t)
	palettetest.WriteSamples(t, s)

	m := newTestModel(t, s)
	m = settle(t, m, m.Init())

	m, _ = step(t, m, keyRunes("a"))
	require.Equal(t, StateConfirm, m.state)

	m, cmd := step(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, StateNormal, m.state)
	assert.Equal(t, "Cancelled", m.statusMsg)
	assert.NoDirExists(t, s.ConfigDir)
}

func TestPreviewIgnoresKeysWhileBusy(t *testing.T) {
	m := Model{state: StateBusy, keys: DefaultKeyMap()}
	next, cmd := m.Update(keyRunes("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, StateBusy, next.(Model).state)
}
