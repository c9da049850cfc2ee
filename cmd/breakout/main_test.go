package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func line(out, prefix string) string {
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, prefix) {
			return l
		}
	}
	return ""
}

func TestSimulateDeterministic(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	first := execute(t, "simulate", "--seed", "42", "--ticks", "300")
	second := execute(t, "simulate", "--seed", "42", "--ticks", "300")

	assert.NotEmpty(t, line(first, "hash:"))
	assert.Equal(t, line(first, "hash:"), line(second, "hash:"))
	assert.Contains(t, line(first, "ticks:"), "300 (5s simulated")
	assert.Equal(t, "seed:     42", line(first, "seed:"))
}

func TestListShowsVariants(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	out := execute(t, "list")
	assert.Contains(t, out, "breakout_tall")
	assert.Contains(t, out, "Breakout (Tall)")
}

func TestConfigPrintsDefaults(t *testing.T) {
	out := execute(t, "config")

	var cfg config.BreakoutConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.DefaultBreakoutConfig(), cfg)
}

func TestRejectsUnknownPreset(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"config", "--difficulty", "brutal"})
	assert.Error(t, rootCmd.Execute())

	// Flags persist between executions of the same command tree.
	rootCmd.SetArgs([]string{"config", "--difficulty", ""})
	assert.NoError(t, rootCmd.Execute())
}
