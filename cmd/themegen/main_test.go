package main

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft-focus/themegen/internal/generator"
	"github.com/soft-focus/themegen/internal/palette"
	"github.com/soft-focus/themegen/internal/palette/palettetest"
	"github.com/soft-focus/themegen/internal/storage"
)

// execute runs themegen with args against root and returns stdout
func execute(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--root", root, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func sampleRoot(t *testing.T) *storage.Storage {
	t.Helper()
	s := palettetest.Root(t)
	palettetest.WriteSamples(t, s)
	return s
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range newRootCmd().Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"validate", "list", "verify", "preview"} {
		assert.True(t, found[name], name)
	}
}

func TestGenerateDark(t *testing.T) {
	s := sampleRoot(t)

	out, err := execute(t, s.Root, "dark")
	require.NoError(t, err)

	kitty := s.ConfigPath("kitty", "themes", palettetest.Dark+".conf")
	assert.FileExists(t, kitty)
	assert.NoFileExists(t, s.ConfigPath("kitty", "themes", palettetest.Light+".conf"))
	assert.Contains(t, out, "Generated Kitty theme: "+kitty)
	assert.Contains(t, out, "for 1 theme(s)")
}

func TestGenerateOnly(t *testing.T) {
	s := sampleRoot(t)

	_, err := execute(t, s.Root, "--only", "tmux,btop", "light")
	require.NoError(t, err)

	assert.FileExists(t, s.ConfigPath("tmux", "themes", palettetest.Light+".conf"))
	assert.NoFileExists(t, s.ConfigPath("kitty", "themes", palettetest.Light+".conf"))
}

func TestGenerateUnknownTarget(t *testing.T) {
	s := sampleRoot(t)

	_, err := execute(t, s.Root, "--only", "notepad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown target "notepad"`)
}

func TestValidateReportsMissingKeys(t *testing.T) {
	s := palettetest.Root(t)
	broken := palettetest.Raw(t, palettetest.Dark)
	delete(palettetest.Colors(broken), "background_alt")
	palettetest.WriteJSON(t, s, palettetest.Dark, broken)
	palettetest.WriteJSON(t, s, palettetest.Light, palettetest.Raw(t, palettetest.Light))

	_, err := execute(t, s.Root, "validate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, palette.ErrInvalidPalette))
	assert.Contains(t, err.Error(), "palette.background_alt")
	assert.NoDirExists(t, s.ConfigDir)
}

func TestValidateOK(t *testing.T) {
	s := sampleRoot(t)

	out, err := execute(t, s.Root, "validate", "--swatches", "light")
	require.NoError(t, err)
	assert.Contains(t, out, palettetest.Light)
	assert.Contains(t, out, "terminal.bright_white")
}

func TestList(t *testing.T) {
	s := sampleRoot(t)

	out, err := execute(t, s.Root, "list", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, s.Rel(s.ConfigPath("kitty", "themes", palettetest.Dark+".conf")))
	assert.NoDirExists(t, s.ConfigDir)
}

func TestVerifyAfterGenerate(t *testing.T) {
	s := sampleRoot(t)

	_, err := execute(t, s.Root, "verify")
	require.Error(t, err)
	assert.True(t, errors.Is(err, generator.ErrVerifyFailed))

	_, err = execute(t, s.Root)
	require.NoError(t, err)

	out, err := execute(t, s.Root, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	require.NoError(t, os.Remove(s.ConfigPath("tmux", "themes", palettetest.Dark+".conf")))
	out, err = execute(t, s.Root, "verify", "dark")
	require.Error(t, err)
	assert.Contains(t, out, "missing")
}
