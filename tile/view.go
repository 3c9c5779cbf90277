// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tile/view.go
// Summary: Renders the tile model onto a screen surface.

package tile

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tilecast/action"
	"tilecast/clipboard"
	"tilecast/config"
	"tilecast/query"
)

// Surface is the drawing target. tcell.Screen satisfies it; tests use
// an in-memory stub.
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
}

// layout constants
const (
	padX       = 2
	queryRow   = 1
	resultsTop = 3
)

// View draws the model. The caller clears and shows the screen.
func View(s Surface, m *Model, theme config.Theme, placeholder string) {
	w, h := s.Size()
	if !m.Visible || w == 0 || h == 0 {
		s.HideCursor()
		return
	}

	base := theme.Style()
	fill(s, 0, 0, w, h, base)

	drawQueryRow(s, m, theme, placeholder, w)
	resultRows := drawResults(s, m, theme, w, h)
	drawPreview(s, m, theme, w, h, resultRows)
	drawFooter(s, m, theme, w, h)
}

func drawQueryRow(s Surface, m *Model, theme config.Theme, placeholder string, w int) {
	style := theme.Style().Bold(true)
	prompt := "> "
	x := drawText(s, padX, queryRow, prompt, style, w-padX)

	if m.Query == "" {
		drawText(s, x, queryRow, placeholderFor(m.Page, placeholder), theme.DimStyle(0.45), w-x-padX)
		s.ShowCursor(x, queryRow)
		return
	}

	drawText(s, x, queryRow, m.Query, style, w-x-padX)

	// Cursor position accounts for wide runes before it.
	cursorX := x
	for i, r := range []rune(m.Query) {
		if i >= m.Cursor {
			break
		}
		cursorX += runewidth.RuneWidth(r)
	}
	s.ShowCursor(cursorX, queryRow)
}

func placeholderFor(page, configured string) string {
	switch page {
	case action.PageClipboardHistory:
		return "Search clipboard history..."
	case action.PageEmojiSearch:
		return "Search emojis..."
	}
	if configured != "" {
		return configured
	}
	return "Search..."
}

// drawResults renders the result list and returns the number of rows
// it used.
func drawResults(s Surface, m *Model, theme config.Theme, w, h int) int {
	maxRows := h - resultsTop - 2
	if maxRows < 0 {
		maxRows = 0
	}
	n := len(m.Results)
	if n > maxRows {
		n = maxRows
	}

	listW := w - 2*padX
	if theme.ShowScrollBar && len(m.Results) > n {
		listW--
	}

	for i := 0; i < n; i++ {
		res := m.Results[i]
		style := theme.Style()
		if i == m.Focus {
			style = theme.FocusStyle()
			fill(s, padX-1, resultsTop+i, listW+2, 1, style)
		}

		x := padX
		if theme.ShowIcons {
			x = drawText(s, x, resultsTop+i, resultIcon(res)+" ", style, listW)
		}
		x = drawText(s, x, resultsTop+i, res.Title, style, listW-(x-padX))
		if res.Desc != "" {
			desc := "  " + res.Desc
			descW := runewidth.StringWidth(desc)
			if dx := padX + listW - descW; dx > x {
				drawText(s, dx, resultsTop+i, desc, theme.DimStyle(0.55), descW)
			}
		}
	}

	if theme.ShowScrollBar && len(m.Results) > n && n > 0 {
		drawScrollbar(s, m, theme, w-padX, n)
	}
	return n
}

// resultIcon picks a marker glyph for a result row by its action type.
func resultIcon(res query.Result) string {
	switch res.Action.(type) {
	case action.OpenApp:
		return "▶"
	case action.RunShell:
		return "$"
	case action.OpenWebsite, action.WebSearch:
		return "@"
	case action.CopyText:
		return "⧉"
	case action.SwitchPage:
		return "›"
	default:
		return "•"
	}
}

func drawScrollbar(s Surface, m *Model, theme config.Theme, x, rows int) {
	total := len(m.Results)
	thumb := m.Focus * (rows - 1) / (total - 1)
	for i := 0; i < rows; i++ {
		r := '│'
		if i == thumb {
			r = '█'
		}
		s.SetContent(x, resultsTop+i, r, nil, theme.DimStyle(0.4))
	}
}

// drawPreview renders the highlighted preview of the focused clipboard
// entry below the result list.
func drawPreview(s Surface, m *Model, theme config.Theme, w, h, resultRows int) {
	if m.Page != action.PageClipboardHistory || m.Focus >= len(m.Results) {
		return
	}
	entry := m.Results[m.Focus].HistoryEntry
	if entry == nil {
		return
	}

	top := resultsTop + resultRows + 1
	maxRows := h - top - 2
	if maxRows <= 0 {
		return
	}

	lines := clipboard.PreviewLines(*entry, theme.HighlightStyle, theme.DimStyle(0.85))
	if len(lines) > maxRows {
		lines = lines[:maxRows]
	}
	for i, line := range lines {
		x := padX
		for _, span := range line {
			if x >= w-padX {
				break
			}
			x = drawText(s, x, top+i, span.Text, span.Style, w-x-padX)
		}
	}
}

func drawFooter(s Surface, m *Model, theme config.Theme, w, h int) {
	row := h - 1
	fill(s, 0, row, w, 1, theme.FooterStyle())

	line := m.Notice
	if line == "" {
		line = fmt.Sprintf("%d results found", len(m.Results))
	}
	drawText(s, padX, row, line, theme.FooterStyle(), w-2*padX)
}

// drawText writes a string clipped to maxWidth cells and returns the x
// position after the last cell written.
func drawText(s Surface, x, y int, text string, style tcell.Style, maxWidth int) int {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if maxWidth < rw {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += rw
		maxWidth -= rw
	}
	return x
}

func fill(s Surface, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}
