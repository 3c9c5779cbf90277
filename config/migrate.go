// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Legacy config migration helpers.

package config

import (
	"encoding/json"
	"os"
)

// migrateFromLegacy folds values from an old config.json into cfg.
// The legacy file is renamed aside after a successful read so the
// migration runs once.
func migrateFromLegacy(cfg *Config) (bool, error) {
	path, err := legacyPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	var legacy struct {
		Placeholder string   `json:"placeholder"`
		SearchURL   string   `json:"search_url"`
		LogPath     string   `json:"log_path"`
		IndexDirs   []string `json:"index_dirs"`
		Buffer      *struct {
			ClearOnHide  bool `json:"clear_on_hide"`
			ClearOnEnter bool `json:"clear_on_enter"`
		} `json:"buffer_rules"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return false, err
	}

	migrated := false
	if legacy.Placeholder != "" {
		cfg.Placeholder = legacy.Placeholder
		migrated = true
	}
	if legacy.SearchURL != "" {
		cfg.SearchURL = legacy.SearchURL
		migrated = true
	}
	if legacy.LogPath != "" {
		cfg.LogPath = legacy.LogPath
		migrated = true
	}
	if len(legacy.IndexDirs) > 0 {
		cfg.IndexDirs = legacy.IndexDirs
		migrated = true
	}
	if legacy.Buffer != nil {
		cfg.Buffer.ClearOnHide = legacy.Buffer.ClearOnHide
		cfg.Buffer.ClearOnEnter = legacy.Buffer.ClearOnEnter
		migrated = true
	}

	if migrated {
		_ = os.Rename(path, path+".migrated")
	}
	return migrated, nil
}
