// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package appindex

import (
	"testing"

	"tilecast/action"
)

func testIndex() *Index {
	return New([]Entry{
		{Name: "Firefox", Desc: "Web Browser"},
		{Name: "Files", Desc: "File Manager"},
		{Name: "Fi", Desc: "Short"},
		{Name: "Terminal", Desc: "Terminal Emulator"},
		{Name: "firewalld", Desc: "Firewall"},
	})
}

func TestSearchPrefixMatchesCaseInsensitive(t *testing.T) {
	ix := testIndex()

	got := ix.SearchPrefix("fi")
	if len(got) != 4 {
		t.Fatalf("expected 4 matches for \"fi\", got %d", len(got))
	}
	for _, e := range got {
		if e.SearchName[:2] != "fi" {
			t.Fatalf("unexpected match %q", e.Name)
		}
	}

	if got := ix.SearchPrefix("FIREF"); len(got) != 1 || got[0].Name != "Firefox" {
		t.Fatalf("expected Firefox for \"FIREF\", got %+v", got)
	}
}

func TestSearchPrefixRanksShorterFirst(t *testing.T) {
	ix := testIndex()
	got := ix.SearchPrefix("fi")
	if got[0].Name != "Fi" {
		t.Fatalf("expected shortest name first, got %q", got[0].Name)
	}
	if got[1].Name != "Files" {
		t.Fatalf("expected Files second, got %q", got[1].Name)
	}
}

func TestSearchPrefixNoMatch(t *testing.T) {
	ix := testIndex()
	if got := ix.SearchPrefix("zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestEmptyPrefixReturnsAll(t *testing.T) {
	ix := testIndex()
	if got := ix.SearchPrefix(""); len(got) != ix.Len() {
		t.Fatalf("expected all %d entries, got %d", ix.Len(), len(got))
	}
}

func TestBuiltinsCoverTriggerEntries(t *testing.T) {
	entries := Builtins("v1.2.3")
	ix := New(entries)

	got := ix.SearchPrefix("clipboard")
	if len(got) != 1 {
		t.Fatalf("expected clipboard builtin, got %d entries", len(got))
	}
	if _, ok := got[0].Action.(action.SwitchPage); !ok {
		t.Fatalf("expected SwitchPage action, got %T", got[0].Action)
	}

	if got := ix.SearchPrefix("quit"); len(got) != 1 {
		t.Fatalf("expected quit builtin")
	}

	got = ix.SearchPrefix("reload")
	if len(got) != 1 || got[0].Name != "Reload Tilecast" {
		t.Fatalf("expected reload builtin, got %+v", got)
	}
	if _, ok := got[0].Action.(action.Reload); !ok {
		t.Fatalf("expected Reload action, got %T", got[0].Action)
	}
}
