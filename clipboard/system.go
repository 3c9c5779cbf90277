// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/system.go
// Summary: Writes text to the system clipboard via the available tool.

package clipboard

import (
	"fmt"
	"os/exec"
	"strings"
)

type writerCandidate struct {
	name string
	args []string
}

var writerCandidates = []writerCandidate{
	{"wl-copy", nil},
	{"xclip", []string{"-selection", "clipboard", "-i"}},
	{"xsel", []string{"-b", "-i"}},
}

// System is an action.Clipboard backed by whichever clipboard tool is
// installed. The zero value detects the tool on first use.
type System struct {
	writer *writerCandidate
}

// SetText copies text to the system clipboard.
func (s *System) SetText(text string) error {
	if s.writer == nil {
		for i := range writerCandidates {
			if _, err := exec.LookPath(writerCandidates[i].name); err == nil {
				s.writer = &writerCandidates[i]
				break
			}
		}
		if s.writer == nil {
			return fmt.Errorf("no clipboard tool found (need wl-copy, xclip or xsel)")
		}
	}

	cmd := exec.Command(s.writer.name, s.writer.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", s.writer.name, err)
	}
	return nil
}
