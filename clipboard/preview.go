// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/preview.go
// Summary: Language detection and syntax-highlighted previews for
// clipboard entries.

package clipboard

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const (
	defaultStyleName = "catppuccin-mocha"
	previewMaxLines  = 40
	previewMaxBytes  = 16 * 1024

	// Below this the classifier guesses wildly on prose snippets.
	classifyMinLines = 3
)

// DetectLanguage guesses what language a snippet is written in.
// Returns "" for plain text or content too short to classify.
func DetectLanguage(content string) string {
	lines := strings.Split(content, "\n")

	// Shebangs are unambiguous.
	if strings.HasPrefix(content, "#!") {
		if lang, ok := enry.GetLanguageByShebang([]byte(lines[0])); ok {
			return strings.ToLower(lang)
		}
	}

	if len(lines) < classifyMinLines {
		return ""
	}
	snippet := content
	if len(snippet) > previewMaxBytes {
		snippet = snippet[:previewMaxBytes]
	}

	lang, _ := enry.GetLanguageByClassifier([]byte(snippet), nil)
	if lang == "" || lang == "Text" {
		return ""
	}
	return strings.ToLower(lang)
}

// Span is a run of text in one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// PreviewLines highlights a clipboard entry's content for display in
// the tile's detail pane. Each returned slice is one display line. base
// is the style for unhighlighted text; styleName selects the Chroma
// style ("" means the default).
func PreviewLines(e Entry, styleName string, base tcell.Style) [][]Span {
	content := e.Content
	if len(content) > previewMaxBytes {
		content = content[:previewMaxBytes]
	}

	style := styles.Get(styleName)
	if style == styles.Fallback {
		style = styles.Get(defaultStyleName)
	}

	lexer := lookupLexer(e.Language, content)
	if lexer == nil {
		return plainLines(content, base)
	}
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, content)
	if err != nil {
		return plainLines(content, base)
	}

	baseColour := style.Get(chroma.Text).Colour

	var out [][]Span
	var line []Span
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), baseColour, base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, line)
				line = nil
				if len(out) >= previewMaxLines {
					return out
				}
			}
			if part != "" {
				line = append(line, Span{Text: part, Style: st})
			}
		}
	}
	if len(line) > 0 {
		out = append(out, line)
	}
	return out
}

func plainLines(content string, base tcell.Style) [][]Span {
	raw := strings.Split(content, "\n")
	if len(raw) > previewMaxLines {
		raw = raw[:previewMaxLines]
	}
	out := make([][]Span, len(raw))
	for i, l := range raw {
		if l != "" {
			out[i] = []Span{{Text: l, Style: base}}
		}
	}
	return out
}

// lookupLexer resolves a detected language to a lexer, falling back to
// content analysis. Returns nil when nothing matches so the caller can
// render plain text instead of misfiring highlights.
func lookupLexer(language, content string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	return lexers.Analyse(content)
}

// tokenStyle maps a Chroma style entry onto the base tcell style.
// Tokens matching the style's base text color keep the tile's own
// foreground so themed backgrounds stay readable.
func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
