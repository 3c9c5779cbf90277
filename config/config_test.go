// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SearchURL != Default().SearchURL {
		t.Fatalf("expected default search_url, got %q", cfg.SearchURL)
	}
	if !cfg.Buffer.ClearOnHide {
		t.Fatalf("expected clear_on_hide default true")
	}
}

func TestCreateIfMissingWritesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := CreateIfMissing(); err != nil {
		t.Fatalf("CreateIfMissing: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := toml.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if disk.Placeholder != Default().Placeholder {
		t.Fatalf("expected default placeholder, got %q", disk.Placeholder)
	}

	// A second run must not fail or truncate.
	if err := CreateIfMissing(); err != nil {
		t.Fatalf("CreateIfMissing (second run): %v", err)
	}
}

func TestLoadParsesCommandsAndTheme(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	cfgRoot := filepath.Join(root, "tilecast")
	if err := os.MkdirAll(cfgRoot, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := `
placeholder = "go"
search_url = "https://duckduckgo.com/?q=%s"

[[commands]]
alias = "vol"
command = "pactl set-sink-volume @DEFAULT_SINK@"
description = "Set volume"

[theme]
text_color = [1.0, 1.0, 1.0]
background_color = [0.0, 0.0, 0.0]
show_scroll_bar = false
`
	if err := os.WriteFile(filepath.Join(cfgRoot, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Alias != "vol" {
		t.Fatalf("expected vol command, got %+v", cfg.Commands)
	}
	if cfg.Theme.ShowScrollBar {
		t.Fatalf("expected show_scroll_bar false")
	}
	if cfg.SearchURL != "https://duckduckgo.com/?q=%s" {
		t.Fatalf("unexpected search_url %q", cfg.SearchURL)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	cfgRoot := filepath.Join(root, "tilecast")
	if err := os.MkdirAll(cfgRoot, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgRoot, "config.toml"), []byte("not [valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error for malformed config")
	}
}

func TestMigrationFromLegacyJSON(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	cfgRoot := filepath.Join(root, "tilecast")
	if err := os.MkdirAll(cfgRoot, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	legacy := `{"placeholder":"legacy prompt","search_url":"https://example.com/?q=%s","buffer_rules":{"clear_on_hide":false,"clear_on_enter":true}}`
	if err := os.WriteFile(filepath.Join(cfgRoot, "config.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Placeholder != "legacy prompt" {
		t.Fatalf("expected placeholder migration, got %q", cfg.Placeholder)
	}
	if cfg.Buffer.ClearOnHide {
		t.Fatalf("expected clear_on_hide migration to false")
	}

	if _, err := os.Stat(filepath.Join(cfgRoot, "config.json")); !os.IsNotExist(err) {
		t.Fatalf("expected legacy file to be renamed aside")
	}
	if _, err := os.Stat(filepath.Join(cfgRoot, "config.json.migrated")); err != nil {
		t.Fatalf("expected renamed legacy file: %v", err)
	}
}
