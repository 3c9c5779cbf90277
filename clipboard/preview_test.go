// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDetectLanguage_Go(t *testing.T) {
	src := strings.Join([]string{
		"package main",
		`import "fmt"`,
		"func main() {",
		`	fmt.Println("hello")`,
		"}",
	}, "\n")
	if lang := DetectLanguage(src); lang != "go" {
		t.Errorf("expected 'go', got %q", lang)
	}
}

func TestDetectLanguage_Shebang(t *testing.T) {
	src := "#!/usr/bin/env python3\nimport os\nprint('hi')"
	if lang := DetectLanguage(src); lang != "python" {
		t.Errorf("expected 'python', got %q", lang)
	}
}

func TestDetectLanguage_ShortContent(t *testing.T) {
	if lang := DetectLanguage("hello world"); lang != "" {
		t.Errorf("expected no language for a short snippet, got %q", lang)
	}
}

func TestPreviewLinesPlainText(t *testing.T) {
	base := tcell.StyleDefault
	e := Entry{Kind: KindText, Content: "just a note\nsecond line"}

	lines := PreviewLines(e, "", base)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[0]) != 1 || lines[0][0].Text != "just a note" {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
}

func TestPreviewLinesHighlightsCode(t *testing.T) {
	base := tcell.StyleDefault
	src := strings.Join([]string{
		"package main",
		"func main() {}",
	}, "\n")
	e := Entry{Kind: KindText, Content: src, Language: "go"}

	lines := PreviewLines(e, "", base)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// The keyword token should carry a foreground different from base.
	styled := false
	for _, span := range lines[0] {
		if span.Style != base {
			styled = true
		}
	}
	if !styled {
		t.Fatalf("expected highlighted spans on %+v", lines[0])
	}
}

func TestPreviewLinesTruncates(t *testing.T) {
	e := Entry{Kind: KindText, Content: strings.Repeat("line\n", previewMaxLines*2)}
	lines := PreviewLines(e, "", tcell.StyleDefault)
	if len(lines) > previewMaxLines {
		t.Fatalf("expected at most %d lines, got %d", previewMaxLines, len(lines))
	}
}
