// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: TOML configuration store for tilecast.

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the schema of the user config file.
type Config struct {
	Placeholder string `toml:"placeholder"`
	SearchURL   string `toml:"search_url"`
	LogPath     string `toml:"log_path"`
	MaxResults  int    `toml:"max_results"`
	HistoryMax  int    `toml:"history_max"`

	Buffer Buffer `toml:"buffer"`
	Theme  Theme  `toml:"theme"`

	// Commands are the user-defined shell commands reachable by alias.
	Commands []Command `toml:"commands"`

	// IndexDirs lists extra directories to scan for executables,
	// each optionally suffixed with ":<depth>".
	IndexDirs []string `toml:"index_dirs"`
}

// Buffer controls when the query buffer is cleared.
type Buffer struct {
	ClearOnHide  bool `toml:"clear_on_hide"`
	ClearOnEnter bool `toml:"clear_on_enter"`
}

// Command is a user-defined shell command triggered by its alias.
// Everything typed after the alias is appended to the command line.
type Command struct {
	Alias       string `toml:"alias"`
	Command     string `toml:"command"`
	Description string `toml:"description"`
	Capture     bool   `toml:"capture"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Placeholder: "Time to be productive!",
		SearchURL:   "https://google.com/search?q=%s",
		LogPath:     filepath.Join(os.TempDir(), "tilecast.log"),
		MaxResults:  5,
		HistoryMax:  200,
		Buffer: Buffer{
			ClearOnHide:  true,
			ClearOnEnter: true,
		},
		Theme: defaultTheme(),
	}
}

// Load reads the config file, falling back to defaults for a missing
// file or missing keys. A malformed file is an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if migrated, merr := migrateFromLegacy(&cfg); merr != nil {
				log.Printf("Config: legacy migration failed: %v", merr)
			} else if migrated {
				log.Printf("Config: migrated legacy config.json")
			}
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the user config path.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CreateIfMissing writes the default config file on first run.
func CreateIfMissing() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	cfg := Default()
	if _, err := migrateFromLegacy(&cfg); err != nil {
		log.Printf("Config: legacy migration failed: %v", err)
	}
	return cfg.SaveTo(path)
}
