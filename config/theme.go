// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/theme.go
// Summary: Theme colors and tcell style derivation.

package config

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the tile's colors as 0..1 RGB triplets plus display toggles.
type Theme struct {
	TextColor       [3]float64 `toml:"text_color"`
	BackgroundColor [3]float64 `toml:"background_color"`
	ShowIcons       bool       `toml:"show_icons"`
	ShowScrollBar   bool       `toml:"show_scroll_bar"`
	// HighlightStyle names the chroma style used for clipboard previews.
	HighlightStyle string `toml:"highlight_style"`
}

func defaultTheme() Theme {
	return Theme{
		TextColor:       [3]float64{0.95, 0.95, 0.96},
		BackgroundColor: [3]float64{0.09, 0.09, 0.09},
		ShowIcons:       true,
		ShowScrollBar:   true,
		HighlightStyle:  "catppuccin-mocha",
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t Theme) text() colorful.Color {
	return colorful.Color{R: t.TextColor[0], G: t.TextColor[1], B: t.TextColor[2]}
}

func (t Theme) background() colorful.Color {
	return colorful.Color{R: t.BackgroundColor[0], G: t.BackgroundColor[1], B: t.BackgroundColor[2]}
}

// Style is the base style for the tile.
func (t Theme) Style() tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcell(t.text())).
		Background(toTcell(t.background()))
}

// DimStyle fades the text toward the background, used for detail lines
// and the footer. opacity 1 is full text color, 0 is invisible.
func (t Theme) DimStyle(opacity float64) tcell.Style {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	blended := t.background().BlendRgb(t.text(), opacity)
	return tcell.StyleDefault.
		Foreground(toTcell(blended)).
		Background(toTcell(t.background()))
}

// FocusStyle tints the background for the focused result row.
func (t Theme) FocusStyle() tcell.Style {
	tinted := t.background().BlendRgb(t.text(), 0.12)
	return tcell.StyleDefault.
		Foreground(toTcell(t.text())).
		Background(toTcell(tinted))
}

// FooterStyle shades the footer strip slightly above the background.
func (t Theme) FooterStyle() tcell.Style {
	tinted := t.background().BlendRgb(t.text(), 0.04)
	return tcell.StyleDefault.
		Foreground(toTcell(t.background().BlendRgb(t.text(), 0.7))).
		Background(toTcell(tinted))
}
