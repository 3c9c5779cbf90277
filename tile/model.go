// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tile/model.go
// Summary: Pure tile state and the message-driven update step.
//
// The tile follows a message loop: input events become Msg values, the
// update step folds them into the Model and emits an Effect for the
// runtime to execute. Keeping the step pure makes the whole interaction
// model testable without a terminal.

package tile

import (
	"tilecast/action"
	"tilecast/clipboard"
	"tilecast/config"
	"tilecast/query"
)

// Model is the complete visible state of the tile.
type Model struct {
	Visible bool
	Page    string

	Query  string
	Cursor int // rune index into Query

	Results []query.Result
	Focus   int

	// Notice is a transient feedback line (captured command output,
	// action errors) shown in the footer.
	Notice string

	// SubmittedQuery is the query text as it was when Submit produced
	// EffectActivate, before any clear-on-enter rule ran. Actions that
	// consume trailing input read it.
	SubmittedQuery string

	Width, Height int
}

// NewModel returns the initial hidden model on the main page.
func NewModel() Model {
	return Model{Page: action.PageMain}
}

// Msg is an input to the update step.
type Msg interface{ isMsg() }

type (
	// TypeRune inserts a character at the cursor.
	TypeRune struct{ R rune }
	// Backspace deletes the character before the cursor.
	Backspace struct{}
	// DeleteForward deletes the character under the cursor.
	DeleteForward struct{}
	// MoveCursor moves the cursor by delta runes, clamped.
	MoveCursor struct{ Delta int }
	// MoveFocus moves result focus by delta, wrapping around.
	MoveFocus struct{ Delta int }
	// Submit activates the focused result.
	Submit struct{}
	// Escape clears the query, or hides the tile when already empty.
	Escape struct{}
	// Toggle flips visibility, optionally landing on a page.
	Toggle struct{ Page string }
	// SwitchTo moves to another page and clears the query.
	SwitchTo struct{ Page string }
	// ClipboardAdded reports a new history entry from the watcher.
	ClipboardAdded struct{ Entry clipboard.Entry }
	// ConfigReloaded reports that config and indexes were rebuilt.
	ConfigReloaded struct{}
	// Notice sets the footer feedback line.
	Notice struct{ Line string }
	// Resize reports new screen dimensions.
	Resize struct{ W, H int }
	// QuitRequested asks the runtime to exit.
	QuitRequested struct{}
)

func (TypeRune) isMsg()       {}
func (Backspace) isMsg()      {}
func (DeleteForward) isMsg()  {}
func (MoveCursor) isMsg()     {}
func (MoveFocus) isMsg()      {}
func (Submit) isMsg()         {}
func (Escape) isMsg()         {}
func (Toggle) isMsg()         {}
func (SwitchTo) isMsg()       {}
func (ClipboardAdded) isMsg() {}
func (ConfigReloaded) isMsg() {}
func (Notice) isMsg()         {}
func (Resize) isMsg()         {}
func (QuitRequested) isMsg()  {}

// Effect is what the runtime must do after an update step.
type Effect int

const (
	EffectNone Effect = iota
	// EffectActivate runs the returned result's action.
	EffectActivate
	EffectHide
	EffectQuit
	// EffectReload asks the runtime to reload config and rebuild
	// indexes, then deliver ConfigReloaded.
	EffectReload
)

// Update folds one message into the model and reports the effect the
// runtime should carry out. The returned result is valid only for
// EffectActivate.
func (m *Model) Update(msg Msg, eng *query.Engine, cfg *config.Config) (Effect, query.Result) {
	switch msg := msg.(type) {
	case TypeRune:
		r := []rune(m.Query)
		m.Query = string(r[:m.Cursor]) + string(msg.R) + string(r[m.Cursor:])
		m.Cursor++
		m.queryChanged(eng)

	case Backspace:
		if m.Cursor > 0 {
			r := []rune(m.Query)
			m.Query = string(r[:m.Cursor-1]) + string(r[m.Cursor:])
			m.Cursor--
			m.queryChanged(eng)
		}

	case DeleteForward:
		r := []rune(m.Query)
		if m.Cursor < len(r) {
			m.Query = string(r[:m.Cursor]) + string(r[m.Cursor+1:])
			m.queryChanged(eng)
		}

	case MoveCursor:
		m.Cursor += msg.Delta
		if m.Cursor < 0 {
			m.Cursor = 0
		}
		if n := len([]rune(m.Query)); m.Cursor > n {
			m.Cursor = n
		}

	case MoveFocus:
		if n := len(m.Results); n > 0 {
			m.Focus = ((m.Focus+msg.Delta)%n + n) % n
		}

	case Submit:
		if m.Focus < len(m.Results) {
			res := m.Results[m.Focus]
			if sw, ok := res.Action.(action.SwitchPage); ok {
				m.switchPage(sw.Page, eng)
				return EffectNone, query.Result{}
			}
			if _, ok := res.Action.(action.Reload); ok {
				return EffectReload, query.Result{}
			}
			m.SubmittedQuery = m.Query
			if cfg.Buffer.ClearOnEnter {
				m.clearQuery(eng)
			}
			return EffectActivate, res
		}

	case Escape:
		if m.Query != "" {
			m.clearQuery(eng)
			return EffectNone, query.Result{}
		}
		if m.Page != action.PageMain {
			m.switchPage(action.PageMain, eng)
			return EffectNone, query.Result{}
		}
		m.hide(cfg)
		return EffectHide, query.Result{}

	case Toggle:
		if m.Visible {
			m.hide(cfg)
			return EffectHide, query.Result{}
		}
		m.Visible = true
		if msg.Page != "" {
			m.switchPage(msg.Page, eng)
		} else {
			m.queryChanged(eng)
		}

	case SwitchTo:
		m.Visible = true
		m.switchPage(msg.Page, eng)

	case ClipboardAdded:
		// Refresh the visible history page so the new entry shows up.
		if m.Visible && m.Page == action.PageClipboardHistory {
			m.queryChanged(eng)
		}

	case ConfigReloaded:
		m.Notice = "Configuration reloaded"
		m.queryChanged(eng)

	case Notice:
		m.Notice = msg.Line

	case Resize:
		m.Width, m.Height = msg.W, msg.H

	case QuitRequested:
		return EffectQuit, query.Result{}
	}
	return EffectNone, query.Result{}
}

// queryChanged re-evaluates results and handles trigger words.
func (m *Model) queryChanged(eng *query.Engine) {
	m.Notice = ""
	if page, ok := query.Trigger(m.Query); ok && page != m.Page {
		m.switchPage(page, eng)
		return
	}
	m.Results = eng.Evaluate(m.Query, m.Page)
	m.Focus = 0
}

func (m *Model) switchPage(page string, eng *query.Engine) {
	m.Page = page
	m.Query = ""
	m.Cursor = 0
	m.queryChanged(eng)
}

func (m *Model) clearQuery(eng *query.Engine) {
	m.Query = ""
	m.Cursor = 0
	m.queryChanged(eng)
}

func (m *Model) hide(cfg *config.Config) {
	m.Visible = false
	if cfg.Buffer.ClearOnHide {
		m.Query = ""
		m.Cursor = 0
		m.Results = nil
		m.Focus = 0
	}
	m.Page = action.PageMain
	m.Notice = ""
}
