// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tile/tile.go
// Summary: Terminal runtime for the tile: screen setup, event loop,
// and effect execution.

package tile

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"tilecast/action"
	"tilecast/appindex"
	"tilecast/clipboard"
	"tilecast/config"
	"tilecast/emoji"
	"tilecast/query"
)

// reloadMsg is posted by the action runner's Reload callback and
// handled by the runtime rather than the model.
type reloadMsg struct{}

func (reloadMsg) isMsg() {}

// Tile owns the terminal screen and drives the message loop.
type Tile struct {
	screen  tcell.Screen
	cfg     *config.Config
	engine  *query.Engine
	runner  *action.Runner
	model   Model
	version string

	msgs chan Msg
	quit chan struct{}
}

// New initializes the terminal and builds the search indexes. verbose
// turns on per-evaluation logging in the query engine.
func New(cfg *config.Config, store *clipboard.Store, version string, verbose bool) (*Tile, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(cfg.Theme.Style())
	screen.HideCursor()

	t := &Tile{
		screen:  screen,
		cfg:     cfg,
		version: version,
		msgs:    make(chan Msg, 16),
		quit:    make(chan struct{}),
		model:   NewModel(),
	}
	t.engine = &query.Engine{
		Config:  cfg,
		Main:    appindex.Build(cfg, version),
		Emoji:   emoji.BuildIndex(),
		History: store,
		Verbose: verbose,
	}
	t.runner = &action.Runner{
		Config:     cfg,
		Clipboard:  &clipboard.System{},
		Version:    version,
		Quit:       func() { t.Post(QuitRequested{}) },
		SwitchPage: func(page string) { t.Post(SwitchTo{Page: page}) },
		Reload:     func() { t.Post(reloadMsg{}) },
		Notify:     func(line string) { t.Post(Notice{Line: line}) },
	}

	w, h := screen.Size()
	t.model.Width, t.model.Height = w, h
	return t, nil
}

// Post delivers a message to the loop from another goroutine. It never
// blocks; messages are dropped once the tile is shutting down.
func (t *Tile) Post(msg Msg) {
	select {
	case t.msgs <- msg:
	case <-t.quit:
	}
}

// RequestReload asks the loop to reload config and rebuild indexes.
func (t *Tile) RequestReload() {
	t.Post(reloadMsg{})
}

// Run drives the event loop until ctx is cancelled or the user quits.
// startPage selects the initial page; "" means the main page.
func (t *Tile) Run(ctx context.Context, startPage string) error {
	defer t.screen.Fini()

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			select {
			case <-t.quit:
				return
			default:
				events <- t.screen.PollEvent()
			}
		}
	}()

	// Start visible: the binary was just launched on purpose.
	t.step(Toggle{Page: startPage})

	for {
		select {
		case <-ctx.Done():
			close(t.quit)
			return ctx.Err()
		case ev := <-events:
			if msg, ok := translateEvent(ev); ok {
				if done := t.step(msg); done {
					return nil
				}
			}
		case msg := <-t.msgs:
			if _, ok := msg.(reloadMsg); ok {
				t.reload()
				continue
			}
			if done := t.step(msg); done {
				return nil
			}
		}
	}
}

// step applies one message, executes its effect, and redraws. Returns
// true when the loop should exit.
func (t *Tile) step(msg Msg) bool {
	effect, res := t.model.Update(msg, t.engine, t.cfg)

	switch effect {
	case EffectQuit:
		close(t.quit)
		return true

	case EffectActivate:
		submitted := t.model.SubmittedQuery
		go func() {
			if err := res.Action.Execute(context.Background(), t.runner, submitted); err != nil {
				log.Printf("Tile: action failed: %v", err)
				t.Post(Notice{Line: err.Error()})
			}
		}()
		// Launchers get out of the way once something was activated.
		t.model.hide(t.cfg)

	case EffectReload:
		t.reload()
	}

	t.draw()
	return false
}

// reload re-reads the config and rebuilds the main index in place.
func (t *Tile) reload() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Tile: config reload failed: %v", err)
		t.model.Update(Notice{Line: "Reload failed: " + err.Error()}, t.engine, t.cfg)
		t.draw()
		return
	}
	*t.cfg = cfg
	t.engine.Main = appindex.Build(t.cfg, t.version)
	t.model.Update(ConfigReloaded{}, t.engine, t.cfg)
	t.draw()
}

func (t *Tile) draw() {
	t.screen.Clear()
	View(t.screen, &t.model, t.cfg.Theme, t.cfg.Placeholder)
	t.screen.Show()
}

// translateEvent maps terminal events to tile messages.
func translateEvent(ev tcell.Event) (Msg, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return Resize{W: w, H: h}, true

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlQ:
			return QuitRequested{}, true
		case tcell.KeyEscape:
			return Escape{}, true
		case tcell.KeyEnter:
			return Submit{}, true
		case tcell.KeyUp, tcell.KeyCtrlP, tcell.KeyBacktab:
			return MoveFocus{Delta: -1}, true
		case tcell.KeyDown, tcell.KeyCtrlN, tcell.KeyTab:
			return MoveFocus{Delta: 1}, true
		case tcell.KeyLeft:
			return MoveCursor{Delta: -1}, true
		case tcell.KeyRight:
			return MoveCursor{Delta: 1}, true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return Backspace{}, true
		case tcell.KeyDelete:
			return DeleteForward{}, true
		case tcell.KeyRune:
			return TypeRune{R: ev.Rune()}, true
		}
	}
	return nil, false
}
