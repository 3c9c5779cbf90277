// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: action/tilectl.go
// Summary: Actions that steer the tile itself rather than the system.

package action

import "context"

// Page names for SwitchPage targets. The tile owns the page state;
// these constants just keep the wiring typo-free.
const (
	PageMain             = "main"
	PageClipboardHistory = "clipboard"
	PageEmojiSearch      = "emoji"
)

// SwitchPage moves the tile to another page.
type SwitchPage struct {
	Page string
}

func (a SwitchPage) Execute(ctx context.Context, r *Runner, query string) error {
	if r.SwitchPage != nil {
		r.SwitchPage(a.Page)
	}
	return nil
}

// Reload re-reads the config and rebuilds the app index.
type Reload struct{}

func (a Reload) Execute(ctx context.Context, r *Runner, query string) error {
	if r.Reload != nil {
		r.Reload()
	}
	return nil
}
