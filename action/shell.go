// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: action/shell.go
// Summary: User-defined shell command execution with query substitution.

package action

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	captureLines   = 8
	captureTimeout = 5 * time.Second
)

// RunShell executes a user-defined command from the config. The alias
// prefix is stripped from the live query and the remainder appended to
// the command line, so "vol 50%" with alias "vol" runs
// "<command> 50%".
type RunShell struct {
	Command string
	Alias   string
	// Capture runs the command on a pty and feeds its first output
	// lines back to the tile instead of detaching.
	Capture bool
}

// CommandLine builds the final shell command for a live query. The
// alias match is case-insensitive; a query that does not start with
// the alias contributes nothing to the command line.
func (a RunShell) CommandLine(query string) string {
	q := strings.TrimSpace(query)
	remainder := ""
	if len(q) >= len(a.Alias) && strings.EqualFold(q[:len(a.Alias)], a.Alias) {
		remainder = strings.TrimSpace(q[len(a.Alias):])
	}
	if remainder == "" {
		return a.Command
	}
	return a.Command + " " + remainder
}

func (a RunShell) Execute(ctx context.Context, r *Runner, query string) error {
	line := a.CommandLine(query)
	log.Printf("Action: running shell command %q", line)

	cmd := exec.Command("sh", "-c", line)
	if !a.Capture {
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("run command: %w", err)
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}

	// Captured commands run on a pty so children that check for a
	// terminal still produce their usual output.
	f, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}

	go func() {
		defer f.Close()
		defer func() { _ = cmd.Wait() }()

		done := make(chan struct{})
		go func() {
			defer close(done)
			scanner := bufio.NewScanner(f)
			for n := 0; n < captureLines && scanner.Scan(); n++ {
				r.notify("%s", scanner.Text())
			}
			// Drain the rest so the child never blocks on a full pty.
			_, _ = io.Copy(io.Discard, f)
		}()

		select {
		case <-done:
		case <-time.After(captureTimeout):
			_ = cmd.Process.Kill()
		}
	}()
	return nil
}
