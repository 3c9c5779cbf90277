// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appindex/builtin.go
// Summary: Built-in launcher entries and config-defined commands.

package appindex

import (
	"strings"

	"tilecast/action"
	"tilecast/config"
)

const builtinDesc = "Tilecast"

// Builtins returns the launcher's own entries.
func Builtins(version string) []Entry {
	return []Entry{
		{
			Name:       "Quit Tilecast",
			SearchName: "quit",
			Desc:       builtinDesc,
			Action:     action.Quit{},
		},
		{
			Name:       "Open Tilecast Preferences",
			SearchName: "settings",
			Desc:       builtinDesc,
			Action:     action.OpenConfig{},
		},
		{
			Name:       "Search for an Emoji",
			SearchName: "emoji",
			Desc:       builtinDesc,
			Action:     action.SwitchPage{Page: action.PageEmojiSearch},
		},
		{
			Name:       "Clipboard History",
			SearchName: "clipboard",
			Desc:       builtinDesc,
			Action:     action.SwitchPage{Page: action.PageClipboardHistory},
		},
		{
			Name:       "Reload Tilecast",
			SearchName: "reload",
			Desc:       builtinDesc,
			Action:     action.Reload{},
		},
		{
			Name:       "Current Tilecast Version: " + version,
			SearchName: "version",
			Desc:       builtinDesc,
			Action:     action.ShowVersion{},
		},
	}
}

// CommandEntries converts the config's custom commands into entries.
func CommandEntries(cfg *config.Config) []Entry {
	var entries []Entry
	for _, c := range cfg.Commands {
		if c.Alias == "" || c.Command == "" {
			continue
		}
		desc := c.Description
		if desc == "" {
			desc = "Shell Command"
		}
		entries = append(entries, Entry{
			Name:       c.Alias,
			SearchName: strings.ToLower(c.Alias),
			Desc:       desc,
			Action: action.RunShell{
				Command: c.Command,
				Alias:   strings.ToLower(c.Alias),
				Capture: c.Capture,
			},
		})
	}
	return entries
}

// Build assembles the main page index: discovered apps, custom
// commands, and built-ins.
func Build(cfg *config.Config, version string) *Index {
	entries := Discover(cfg)
	entries = append(entries, CommandEntries(cfg)...)
	entries = append(entries, Builtins(version)...)
	return New(entries)
}
