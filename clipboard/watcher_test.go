// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeProvider struct {
	mu   sync.Mutex
	text string
}

func (p *fakeProvider) Read() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text, nil
}

func (p *fakeProvider) set(text string) {
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
}

func TestWatcherRecordsChanges(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	prov := &fakeProvider{text: "preexisting"}
	changes := make(chan Entry, 4)
	w := &Watcher{
		Provider: prov,
		Store:    s,
		Interval: 5 * time.Millisecond,
		OnChange: func(e Entry) { changes <- e },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give the watcher time to prime on the preexisting content.
	time.Sleep(20 * time.Millisecond)
	prov.set("fresh copy")

	select {
	case e := <-changes:
		if e.Content != "fresh copy" {
			t.Fatalf("expected new content, got %q", e.Content)
		}
	case <-time.After(time.Second):
		t.Fatalf("watcher never reported the change")
	}

	got, _ := s.Recent(10)
	if len(got) != 1 || got[0].Content != "fresh copy" {
		t.Fatalf("expected only the new content stored, got %+v", got)
	}
}

func TestWatcherIgnoresBlankClipboard(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	prov := &fakeProvider{}
	w := &Watcher{Provider: prov, Store: s}
	w.last = "primed"

	prov.set("   \n\t")
	w.poll()

	got, _ := s.Recent(10)
	if len(got) != 0 {
		t.Fatalf("expected blank clipboard ignored, got %+v", got)
	}
}
