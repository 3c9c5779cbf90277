// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/watcher.go
// Summary: Polls the system clipboard and records changes in the store.

package clipboard

import (
	"context"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Provider reads the current system clipboard contents.
type Provider interface {
	Read() (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() (string, error)

func (f ProviderFunc) Read() (string, error) { return f() }

type commandProvider struct {
	name string
	args []string
}

func (p commandProvider) Read() (string, error) {
	out, err := exec.Command(p.name, p.args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// clipboard tool candidates, in preference order
var providerCandidates = []commandProvider{
	{"wl-paste", []string{"--no-newline"}},
	{"xclip", []string{"-selection", "clipboard", "-o"}},
	{"xsel", []string{"-b"}},
}

// DetectProvider picks the first clipboard tool found on PATH.
// Returns nil when none is installed.
func DetectProvider() Provider {
	for _, c := range providerCandidates {
		if _, err := exec.LookPath(c.name); err == nil {
			log.Printf("Clipboard: using %s", c.name)
			return c
		}
	}
	return nil
}

const defaultPollInterval = 500 * time.Millisecond

// Watcher polls a Provider and appends new clipboard contents to a
// Store.
type Watcher struct {
	Provider Provider
	Store    *Store
	Interval time.Duration

	// OnChange, when set, receives every newly stored entry. The tile
	// uses this to refresh the history page while it is visible.
	OnChange func(Entry)

	last string
}

// Run polls until ctx is cancelled. The first read primes the
// comparison value without storing, so whatever was on the clipboard
// before startup is not recorded.
func (w *Watcher) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	if text, err := w.Provider.Read(); err == nil {
		w.last = text
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	text, err := w.Provider.Read()
	if err != nil {
		// Empty clipboards make some tools exit nonzero. Not an error
		// worth logging on every tick.
		return
	}
	if text == w.last || strings.TrimSpace(text) == "" {
		return
	}
	w.last = text

	entry := Entry{Kind: KindText, Content: text, Language: DetectLanguage(text)}
	stored, err := w.Store.Add(entry)
	if err != nil {
		log.Printf("Clipboard: store failed: %v", err)
		return
	}
	if w.OnChange != nil {
		w.OnChange(stored)
	}
}
