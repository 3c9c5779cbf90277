// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustAdd(t *testing.T, s *Store, content string) Entry {
	t.Helper()
	e, err := s.Add(Entry{Kind: KindText, Content: content})
	if err != nil {
		t.Fatalf("add %q: %v", content, err)
	}
	return e
}

func TestAddAndRecent(t *testing.T) {
	s := testStore(t)

	mustAdd(t, s, "first")
	time.Sleep(time.Millisecond)
	mustAdd(t, s, "second")

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Content != "second" {
		t.Fatalf("expected newest first, got %q", got[0].Content)
	}
}

func TestAddDeduplicatesLatest(t *testing.T) {
	s := testStore(t)

	a := mustAdd(t, s, "same")
	b := mustAdd(t, s, "same")
	if a.ID != b.ID {
		t.Fatalf("expected duplicate add to return existing entry, got ids %d and %d", a.ID, b.ID)
	}

	got, _ := s.Recent(10)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after duplicate add, got %d", len(got))
	}

	// Same content is allowed again once something else intervened.
	mustAdd(t, s, "other")
	mustAdd(t, s, "same")
	got, _ = s.Recent(10)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}

func TestSearchSubstring(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, "https://example.com/some/path")
	mustAdd(t, s, "SELECT * FROM users")
	mustAdd(t, s, "plain note about users")

	got, err := s.Search("users", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for \"users\", got %d", len(got))
	}

	got, err = s.Search("example.com", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match for \"example.com\", got %d", len(got))
	}
}

func TestSearchShortQueryUsesLike(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, "ab initio")
	mustAdd(t, s, "nothing here")

	got, err := s.Search("ab", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Content != "ab initio" {
		t.Fatalf("expected short-query match, got %+v", got)
	}
}

func TestSearchShortQueryWithBackslash(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, `C:\x`)
	mustAdd(t, s, "no slashes here")

	got, err := s.Search(`\x`, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Content != `C:\x` {
		t.Fatalf("expected backslash match, got %+v", got)
	}
}

func TestSearchShortMultibyteQuery(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, "日本語のメモ")
	mustAdd(t, s, "plain text")

	// Two runes but more than three bytes: must take the LIKE path,
	// since no full trigram exists.
	got, err := s.Search("日本", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Content != "日本語のメモ" {
		t.Fatalf("expected multibyte match, got %+v", got)
	}
}

func TestSearchEmptyReturnsRecent(t *testing.T) {
	s := testStore(t)
	mustAdd(t, s, "one")

	got, err := s.Search("", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected recent entries for empty query, got %d", len(got))
	}
}

func TestTrimKeepsNewest(t *testing.T) {
	s := testStore(t)
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		mustAdd(t, s, c)
		time.Sleep(time.Millisecond)
	}

	if err := s.Trim(2); err != nil {
		t.Fatalf("trim: %v", err)
	}
	got, _ := s.Recent(10)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after trim, got %d", len(got))
	}
	if got[0].Content != "e" || got[1].Content != "d" {
		t.Fatalf("expected newest entries kept, got %+v", got)
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Add(Entry{Kind: KindText, Content: "survives"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Close()

	s, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, _ := s.Recent(10)
	if len(got) != 1 || got[0].Content != "survives" {
		t.Fatalf("expected entry to survive reopen, got %+v", got)
	}
}

func TestFirstLine(t *testing.T) {
	e := Entry{Kind: KindText, Content: "line one\nline two"}
	if e.FirstLine() != "line one" {
		t.Fatalf("expected first line, got %q", e.FirstLine())
	}
	img := Entry{Kind: KindImage, Content: "\x89PNG"}
	if img.FirstLine() != "<img>" {
		t.Fatalf("expected image placeholder, got %q", img.FirstLine())
	}
}
