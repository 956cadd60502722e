package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifepanel/internal/config"
)

// run executes the root command with fresh flag state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = config.Default()
	cfgFile = ""
	stepCount, stepAll, patternsShow = 1, false, false
	reset := func(f *pflag.Flag) { f.Changed = false }
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPatternsCommand(t *testing.T) {
	out, err := run(t, "patterns")
	require.NoError(t, err)
	assert.Contains(t, out, "blinker")
	assert.Contains(t, out, "glider     3x3")
}

func TestStepCommand(t *testing.T) {
	out, err := run(t, "step", "--pattern", "blinker", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "!Name: generation 1\n")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 16)
	assert.Equal(t, "..............O...............", lines[7])
	assert.Equal(t, "..............O...............", lines[8])
}

func TestStepCommandReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 5\nheight: 5\npattern: blinker\n"), 0o644))

	out, err := run(t, "step", "--config", path, "-n", "2", "--width", "7", "--height", "7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "..OOO..", lines[4])
}

func TestStepCommandRejectsBadConfig(t *testing.T) {
	_, err := run(t, "step", "--live-chance", "2")
	assert.Error(t, err)
}

func TestCommandsInSequenceDoNotShareFlags(t *testing.T) {
	_, err := run(t, "step", "--pattern", "glider", "-n", "3")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "life.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 5\nheight: 5\npattern: blinker\n"), 0o644))
	out, err := run(t, "step", "--config", path, "-n", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "!Name: generation 1", lines[0])
	assert.Equal(t, "..O..", lines[2])
	assert.Equal(t, "..O..", lines[3])
	assert.Equal(t, "..O..", lines[4])
}
