package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/zensnap/progress"
)

type cliEnv struct {
	dir    string
	config string
	store  string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := cliEnv{
		dir:    dir,
		config: filepath.Join(dir, "zensnap.yaml"),
		store:  filepath.Join(dir, "progress.json"),
	}
	cfg := "storage:\n  driver: file\n  path: " + env.store + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o644))
	return env
}

func (e cliEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	progressJSON, mapHighest, mapNodes, mapWidth = false, 0, false, 400
	levelsFrom, levelsCount = 1, 20
	sliceCell = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--offline"}, args...))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestLevelsCommand(t *testing.T) {
	env := newCLIEnv(t)
	out := env.run(t, "levels", "--from", "5", "--count", "3")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "DIFFICULTY")
	assert.Contains(t, lines[1], "Food")
	assert.Contains(t, lines[1], "placeholder://5")
	assert.Contains(t, lines[2], "4x4")
	assert.Contains(t, lines[2], "Medium")
}

func TestProgressCommands(t *testing.T) {
	env := newCLIEnv(t)
	doc := `{"zenSnapProgress":{"highestLevel":4,"stars":{"1":3,"2":1,"3":2}}}`
	require.NoError(t, os.WriteFile(env.store, []byte(doc), 0o644))

	out := env.run(t, "progress", "show")
	assert.Contains(t, out, "highest unlocked level: 4")
	assert.Contains(t, out, "level   1  ***")
	assert.Contains(t, out, "level   2  *--")
	assert.Contains(t, out, "total stars: 6 / 9")

	out = env.run(t, "progress", "reset")
	assert.Contains(t, out, "progress reset")

	out = env.run(t, "progress", "show", "--json")
	assert.JSONEq(t, `{"highestLevel":1,"stars":{}}`, out)
}

func TestMapCommand(t *testing.T) {
	env := newCLIEnv(t)
	out := env.run(t, "map", "--highest", "3", "--nodes")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+50)
	assert.True(t, strings.HasPrefix(lines[0], "M "))
	assert.Equal(t, 49, strings.Count(lines[0], " C "))
	assert.Contains(t, lines[1], "completed")
	assert.Contains(t, lines[3], "unlocked")
	assert.Contains(t, lines[4], "locked")
}

func TestSliceCommand(t *testing.T) {
	env := newCLIEnv(t)
	outDir := filepath.Join(env.dir, "tiles")
	out := env.run(t, "slice", "7", outDir, "--cell", "32")
	assert.Contains(t, out, "16 tiles of 32px")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 16)
	assert.Equal(t, "tile_00_00.jpg", entries[0].Name())
	assert.Equal(t, "tile_03_03.jpg", entries[15].Name())
}

func TestSliceCommandRejectsBadLevel(t *testing.T) {
	env := newCLIEnv(t)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", env.config, "slice", "zero", env.dir})
	assert.Error(t, rootCmd.Execute())
}

func TestNextLevel(t *testing.T) {
	cases := []struct {
		name    string
		level   int
		highest int
		want    bool
	}{
		{"just unlocked", 1, 2, true},
		{"replayed old level", 1, 12, true},
		{"save failed", 1, 1, false},
		{"stale record", 5, 3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, ok := nextLevel(c.level, progress.UserProgress{HighestLevel: c.highest})
			assert.Equal(t, c.level+1, next)
			assert.Equal(t, c.want, ok)
		})
	}
}
