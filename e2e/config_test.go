//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigCreatedOnFirstRun(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	out, err := tf.RunCommand("config", "path")
	require.NoError(t, err, out)

	configPath := filepath.Join(workspace, "config", "launchpad", "config.toml")
	require.Contains(t, out, configPath)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err, "defaults should be written")
	require.Contains(t, string(content), "debounce_ms = 300")
	require.Contains(t, string(content), "[window]")
}

func TestConfigSetPath(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	_, err = tf.WriteConfig("")
	require.NoError(t, err)

	target := filepath.Join(tf.workspace, "other-apps")
	require.NoError(t, os.MkdirAll(target, 0o755))

	out, err := tf.RunCommand("config", "set-path", target)
	require.NoError(t, err, out)
	require.Contains(t, out, "launch folder set to "+target)

	out, err = tf.RunCommand("config", "path")
	require.NoError(t, err, out)
	require.Contains(t, out, "launch folder: "+target)

	_, err = tf.RunCommand("config", "set-path", filepath.Join(tf.workspace, "missing"))
	require.Error(t, err, "missing folders are rejected")
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	path := filepath.Join(tf.workspace, "config", "launchpad", "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nmax_results = 0\n"), 0o644))

	out, err := tf.RunCommand("config", "path")
	require.Error(t, err)
	require.Contains(t, out, "max_results")
}
