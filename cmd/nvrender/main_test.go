package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/nodeview/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line with an isolated settings file.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.DefaultConfig().Save(cfgPath))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderDemoToStdout(t *testing.T) {
	out, _, err := run(t, "render", filepath.Join("..", "..", "examples", "demo.nv"))
	require.NoError(t, err)

	assert.Contains(t, out, "<svg")
	assert.Equal(t, 5, strings.Count(out, "<linearGradient"))
	assert.Contains(t, out, "Horizontal sockets.")
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "scene.nv")
	require.NoError(t, os.WriteFile(script, []byte(`
(def a (node 0 0))
(def b (node 200 100))
(link (socket a :right "Out") (socket b :left "In"))
(theme "dark")
`), 0o644))
	target := filepath.Join(dir, "scene.svg")

	_, stderr, err := run(t, "render", script, "--out", target, "--scale", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "theme DARK")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#151515")
}

func TestRenderThemeFlagWins(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "scene.nv")
	require.NoError(t, os.WriteFile(script, []byte(`(node 0 0) (theme "dark")`), 0o644))
	target := filepath.Join(dir, "scene.svg")

	_, stderr, err := run(t, "render", script, "-o", target, "-t", "light")
	require.NoError(t, err)
	assert.Contains(t, stderr, "theme LIGHT")
}

func TestRenderReportsScriptErrors(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.nv")
	require.NoError(t, os.WriteFile(script, []byte(`(def a (node 0 0))
(socket a :middle)`), 0o644))

	_, stderr, err := run(t, "render", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluation errors")
	assert.Contains(t, stderr, "middle")
}

func TestRenderUnknownTheme(t *testing.T) {
	script := filepath.Join(t.TempDir(), "scene.nv")
	require.NoError(t, os.WriteFile(script, []byte(`(node 0 0)`), 0o644))

	_, _, err := run(t, "render", script, "--theme", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neon")
}

func TestThemes(t *testing.T) {
	out, _, err := run(t, "themes")
	require.NoError(t, err)

	for _, name := range []string{"*TEST", "LIGHT", "DARK"} {
		assert.Contains(t, out, name)
	}
}
