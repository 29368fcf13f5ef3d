package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestSetupAndComponent(t *testing.T) {
	var buf bytes.Buffer
	_, err := Setup(&buf, "warn")
	require.NoError(t, err)
	t.Cleanup(func() {
		mu.Lock()
		base = zerolog.Nop()
		mu.Unlock()
	})

	log := Component("generator")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "generator")
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, err := Setup(&bytes.Buffer{}, "chatty")
	assert.Error(t, err)
}
