//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// EntryOption is a function that configures a launch folder entry
type EntryOption func(*entryOptions)

type entryOptions struct {
	hidden bool
	subdir string
}

// Hidden marks the desktop entry NoDisplay
func Hidden() EntryOption {
	return func(opts *entryOptions) {
		opts.hidden = true
	}
}

// InSubdir places the entry below the launch folder root
func InSubdir(dir string) EntryOption {
	return func(opts *entryOptions) {
		opts.subdir = dir
	}
}

// CreateTestWorkspace creates a temporary directory holding the launch
// folder, a bin directory and the app's XDG directories
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	for _, dir := range []string{"apps", "bin", "config/launchpad"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0o755); err != nil {
			return "", err
		}
	}
	return tmpDir, nil
}

// LaunchDir is the workspace's launch folder
func (tf *TUITestFramework) LaunchDir() string {
	return filepath.Join(tf.workspace, "apps")
}

// MarkerPath is the file the named entry's script touches when launched
func (tf *TUITestFramework) MarkerPath(name string) string {
	return filepath.Join(tf.workspace, "launched-"+name)
}

// WriteConfig writes a config that points at the workspace launch folder
// and keeps the host window untouched
func (tf *TUITestFramework) WriteConfig(extra string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, "config", "launchpad", "config.toml")
	content := fmt.Sprintf(`version = 1
launch_dir = %q

[search]
debounce_ms = 50

[window]
host = "none"

[logging]
level = "debug"
%s`, tf.LaunchDir(), extra)
	return path, os.WriteFile(path, []byte(content), 0o644)
}

// CreateDesktopEntry adds a desktop entry named name whose Exec runs a
// script touching MarkerPath(id)
func (tf *TUITestFramework) CreateDesktopEntry(id, name string, options ...EntryOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	opts := &entryOptions{}
	for _, opt := range options {
		opt(opts)
	}

	script := filepath.Join(tf.workspace, "bin", id+".sh")
	body := fmt.Sprintf("#!/bin/sh\ntouch %q\n", tf.MarkerPath(id))
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		return "", err
	}

	dir := filepath.Join(tf.LaunchDir(), opts.subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	entry := fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nExec=%s %%U\n", name, script)
	if opts.hidden {
		entry += "NoDisplay=true\n"
	}
	path := filepath.Join(dir, id+".desktop")
	return path, os.WriteFile(path, []byte(entry), 0o644)
}

// CreateStandardEntries adds the entries most tests use
func (tf *TUITestFramework) CreateStandardEntries() error {
	entries := []struct{ id, name string }{
		{"calculator", "Calculator"},
		{"calcnotes", "Calc Notes"},
		{"terminal", "Terminal"},
	}
	for _, e := range entries {
		if _, err := tf.CreateDesktopEntry(e.id, e.name); err != nil {
			return err
		}
	}
	_, err := tf.CreateDesktopEntry("secret", "Secret Tool", Hidden())
	return err
}
