// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tilecast/main.go
// Summary: Tilecast launcher binary.
// Usage: Run `tilecast` in a terminal. A second invocation toggles the
// running instance through its control socket instead of starting anew.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"tilecast/action"
	"tilecast/clipboard"
	"tilecast/config"
	"tilecast/ipc"
	"tilecast/tile"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("tilecast", flag.ContinueOnError)

	configPath := fs.String("config", "", "Config file path (default: XDG config dir)")
	dbPath := fs.String("db", "", "Clipboard history database path")
	socketPath := fs.String("socket", "", "Control socket path")
	cbhist := fs.Bool("cbhist", false, "Open on the clipboard history page")
	showVersion := fs.Bool("version", false, "Print version and exit")
	verboseLogs := fs.Bool("verbose-logs", false, "Log every query evaluation")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("tilecast %s\n", version)
		return nil
	}

	if *socketPath == "" {
		*socketPath = config.SocketPath()
	}

	// A running instance owns the socket; this invocation is then just
	// a toggle request.
	if toggleRunning(*socketPath, *cbhist) {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("tilecast needs a terminal (stdin is not a tty)")
	}

	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := config.CreateIfMissing(); err != nil {
		log.Printf("Main: could not write default config: %v", err)
	}

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cleanup := setupLogging(cfg.LogPath, *verboseLogs)
	defer cleanup()
	log.Printf("Main: tilecast %s starting", version)

	if *dbPath == "" {
		*dbPath, err = config.HistoryDBPath()
		if err != nil {
			return fmt.Errorf("resolve history db path: %w", err)
		}
	}
	store, err := clipboard.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("open clipboard history: %w", err)
	}
	defer store.Close()
	if err := store.Trim(cfg.HistoryMax); err != nil {
		log.Printf("Main: history trim failed: %v", err)
	}

	t, err := tile.New(&cfg, store, version, *verboseLogs)
	if err != nil {
		return fmt.Errorf("init tile: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	if provider := clipboard.DetectProvider(); provider != nil {
		w := &clipboard.Watcher{
			Provider: provider,
			Store:    store,
			OnChange: func(e clipboard.Entry) { t.Post(tile.ClipboardAdded{Entry: e}) },
		}
		go w.Run(ctx)
	} else {
		log.Printf("Main: no clipboard tool found, history capture disabled")
	}

	srv, err := ipc.Listen(*socketPath, func(cmd string) {
		switch cmd {
		case ipc.CmdToggle:
			t.Post(tile.Toggle{})
		case ipc.CmdClipboard:
			t.Post(tile.SwitchTo{Page: action.PageClipboardHistory})
		case ipc.CmdReload:
			t.RequestReload()
		case ipc.CmdQuit:
			t.Post(tile.QuitRequested{})
		}
	})
	if err != nil {
		return err
	}
	defer srv.Close()
	go srv.Run(ctx)

	startPage := ""
	if *cbhist {
		startPage = action.PageClipboardHistory
	}

	if err := t.Run(ctx, startPage); err != nil && err != context.Canceled {
		return err
	}
	log.Printf("Main: tilecast exiting")
	return nil
}

// setupLogging sends the standard logger to the configured file. The
// tile owns the terminal, so logs never go to stdout.
func setupLogging(path string, verbose bool) func() {
	if verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

// toggleRunning contacts an already-running instance. Reports whether
// one handled the request.
func toggleRunning(socketPath string, cbhist bool) bool {
	if _, err := os.Stat(socketPath); err != nil {
		return false
	}
	cmd := ipc.CmdToggle
	if cbhist {
		cmd = ipc.CmdClipboard
	}
	if err := ipc.Send(socketPath, cmd); err != nil {
		// Stale socket; fall through to starting fresh.
		return false
	}
	return true
}
