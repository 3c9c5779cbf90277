// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: emoji/emoji.go
// Summary: Emoji search page entries built from the gomoji dataset.

package emoji

import (
	"strings"

	"github.com/forPelevin/gomoji"

	"tilecast/action"
	"tilecast/appindex"
)

// Entries converts the emoji dataset into searchable launcher entries.
// Activating one copies the emoji character to the clipboard.
func Entries() []appindex.Entry {
	all := gomoji.AllEmojis()
	entries := make([]appindex.Entry, 0, len(all))
	for _, e := range all {
		name := strings.ToLower(e.Slug)
		entries = append(entries, appindex.Entry{
			Name:       e.Character + "  " + e.Slug,
			SearchName: name,
			Desc:       e.Group,
			Action:     action.CopyText{Text: e.Character},
		})
	}
	return entries
}

// BuildIndex assembles the emoji page index.
func BuildIndex() *appindex.Index {
	return appindex.New(Entries())
}
