// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appindex/index.go
// Summary: Prefix-searchable index of launchable entries.

package appindex

import (
	"sort"
	"strings"

	"tilecast/action"
)

// Entry is one launchable result: an installed app, a user command, a
// built-in, an emoji, or a clipboard item.
type Entry struct {
	// Name is the display title.
	Name string
	// SearchName is the lowercase key the prefix search runs on.
	SearchName string
	// Desc is the secondary line shown under the title.
	Desc string
	// Action runs when the entry is activated.
	Action action.Action
}

// Index holds entries sorted by SearchName for range scans. Shorter
// names sort first among equal prefixes so the tightest match ranks
// highest.
type Index struct {
	entries []Entry
}

// New builds an index from entries. Entries with an empty SearchName
// get one derived from Name.
func New(entries []Entry) *Index {
	owned := make([]Entry, len(entries))
	copy(owned, entries)
	for i := range owned {
		if owned[i].SearchName == "" {
			owned[i].SearchName = strings.ToLower(owned[i].Name)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].SearchName < owned[j].SearchName
	})
	return &Index{entries: owned}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// All returns every entry ranked by name length.
func (ix *Index) All() []Entry {
	return rank(append([]Entry(nil), ix.entries...))
}

// SearchPrefix returns the entries whose SearchName starts with prefix,
// ranked with shorter names first.
func (ix *Index) SearchPrefix(prefix string) []Entry {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return ix.All()
	}

	start := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].SearchName >= prefix
	})

	var matches []Entry
	for i := start; i < len(ix.entries); i++ {
		if !strings.HasPrefix(ix.entries[i].SearchName, prefix) {
			break
		}
		matches = append(matches, ix.entries[i])
	}
	return rank(matches)
}

func rank(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].SearchName) != len(entries[j].SearchName) {
			return len(entries[i].SearchName) < len(entries[j].SearchName)
		}
		return entries[i].SearchName < entries[j].SearchName
	})
	return entries
}
