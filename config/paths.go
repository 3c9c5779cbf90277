// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for tilecast configuration and state.

package config

import (
	"os"
	"path/filepath"
)

const (
	configName       = "config.toml"
	legacyConfigName = "config.json"
	historyDBName    = "history.db"
	socketName       = "tilecast.sock"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tilecast"), nil
}

// Path returns the location of the user config file.
func Path() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configName), nil
}

func legacyPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, legacyConfigName), nil
}

// HistoryDBPath returns the location of the clipboard history database.
func HistoryDBPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, historyDBName), nil
}

// SocketPath returns the control socket location. XDG_RUNTIME_DIR is
// preferred; the temp dir is the fallback for sessions without one.
func SocketPath() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, socketName)
	}
	return filepath.Join(os.TempDir(), socketName)
}

// EnsureConfigDir creates the config root if needed.
func EnsureConfigDir() error {
	root, err := configRoot()
	if err != nil {
		return err
	}
	return os.MkdirAll(root, 0o755)
}
