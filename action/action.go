// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: action/action.go
// Summary: Actions dispatched when a search result is activated.

package action

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"tilecast/config"
)

// Clipboard is the system clipboard writer used by copy actions.
type Clipboard interface {
	SetText(text string) error
}

// Runner carries the dependencies actions need to execute.
type Runner struct {
	Config    *config.Config
	Clipboard Clipboard
	Version   string

	// Quit is invoked by the Quit action; the tile wires this to its
	// shutdown path.
	Quit func()

	// SwitchPage and Reload are wired to the tile's message loop.
	SwitchPage func(page string)
	Reload     func()

	// Notify receives short feedback lines (captured command output,
	// execution errors) for display in the tile.
	Notify func(line string)
}

func (r *Runner) notify(format string, args ...interface{}) {
	if r.Notify != nil {
		r.Notify(fmt.Sprintf(format, args...))
	}
}

// Action is something the launcher can do on behalf of the user.
type Action interface {
	// Execute performs the action. query is the live query text at
	// activation time, used by actions that consume trailing input.
	Execute(ctx context.Context, r *Runner, query string) error
}

// OpenApp launches an application binary or desktop Exec line, detached
// from the launcher process.
type OpenApp struct {
	Exec     string
	Terminal bool
}

func (a OpenApp) Execute(ctx context.Context, r *Runner, query string) error {
	line := a.Exec
	if a.Terminal {
		line = "x-terminal-emulator -e " + line
	}
	log.Printf("Action: opening app %q", line)
	cmd := exec.Command("sh", "-c", line)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open app: %w", err)
	}
	// Reap without blocking dispatch.
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenWebsite opens a URL in the default browser.
type OpenWebsite struct {
	URL string
}

func (a OpenWebsite) Execute(ctx context.Context, r *Runner, query string) error {
	url := a.URL
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	log.Printf("Action: opening website %s", url)
	return openURL(url)
}

// WebSearch opens the configured search engine with the query filled in.
type WebSearch struct {
	Query string
}

// SearchURL substitutes the query into a search_url template. The
// trailing "?" trigger character is stripped before substitution.
func SearchURL(template, query string) string {
	query = strings.TrimSuffix(strings.TrimSpace(query), "?")
	args := strings.ReplaceAll(query, " ", "+")
	return strings.ReplaceAll(template, "%s", args)
}

func (a WebSearch) Execute(ctx context.Context, r *Runner, query string) error {
	url := SearchURL(r.Config.SearchURL, a.Query)
	log.Printf("Action: web search %s", url)
	return openURL(url)
}

// CopyText puts text on the system clipboard.
type CopyText struct {
	Text string
}

func (a CopyText) Execute(ctx context.Context, r *Runner, query string) error {
	if r.Clipboard == nil {
		return fmt.Errorf("no clipboard available")
	}
	return r.Clipboard.SetText(a.Text)
}

// Quit terminates the launcher.
type Quit struct{}

func (a Quit) Execute(ctx context.Context, r *Runner, query string) error {
	if r.Quit != nil {
		r.Quit()
	}
	return nil
}

// ShowVersion copies the running version to the clipboard; it mainly
// exists so the version entry has something to do when activated.
type ShowVersion struct{}

func (a ShowVersion) Execute(ctx context.Context, r *Runner, query string) error {
	if r.Clipboard == nil {
		return nil
	}
	return r.Clipboard.SetText(r.Version)
}

// OpenConfig opens the config file in the default editor.
type OpenConfig struct{}

func (a OpenConfig) Execute(ctx context.Context, r *Runner, query string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	return openURL(path)
}

func openURL(target string) error {
	cmd := exec.Command("xdg-open", target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("xdg-open: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
