// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: query/query.go
// Summary: Turns raw tile input into ranked, actionable results.
//
// Classification order on the main page: explicit web search (trailing
// "?"), page trigger words, indexed entries, calculator, unit
// conversion, URL heuristic, then web search for multi-word input.

package query

import (
	"fmt"
	"log"
	"strings"

	"tilecast/action"
	"tilecast/appindex"
	"tilecast/calc"
	"tilecast/clipboard"
	"tilecast/config"
	"tilecast/units"
)

// Result is one row the tile can display and activate.
type Result struct {
	Title string
	Desc  string

	Action action.Action

	// HistoryEntry is set for clipboard history results so the tile
	// can render a highlighted preview.
	HistoryEntry *clipboard.Entry
}

// Engine evaluates queries against the launcher's data sources.
type Engine struct {
	Config  *config.Config
	Main    *appindex.Index
	Emoji   *appindex.Index
	History *clipboard.Store

	// Verbose logs every evaluation with its result count.
	Verbose bool
}

// page trigger words switch the tile without pressing Enter
var pageTriggers = map[string]string{
	"cbhist": action.PageClipboardHistory,
	"main":   action.PageMain,
}

// Trigger reports the page a bare trigger word switches to, if any.
func Trigger(raw string) (string, bool) {
	page, ok := pageTriggers[strings.ToLower(strings.TrimSpace(raw))]
	return page, ok
}

// Evaluate classifies raw input on the given page and returns results,
// best first, capped at the configured maximum.
func (e *Engine) Evaluate(raw, page string) []Result {
	trimmed := strings.TrimSpace(raw)

	var results []Result
	switch page {
	case action.PageClipboardHistory:
		results = e.historyResults(trimmed)
	case action.PageEmojiSearch:
		results = e.cap(indexResults(e.Emoji, trimmed))
	default:
		results = e.mainResults(trimmed)
	}

	if e.Verbose {
		log.Printf("Query: evaluated %q on page %s: %d results", trimmed, page, len(results))
	}
	return results
}

func (e *Engine) mainResults(trimmed string) []Result {
	if trimmed == "" {
		return nil
	}

	if strings.HasSuffix(trimmed, "?") {
		term := strings.TrimSpace(strings.TrimSuffix(trimmed, "?"))
		if term == "" {
			return nil
		}
		return []Result{webSearchResult(term)}
	}

	if matches := indexResults(e.Main, trimmed); len(matches) > 0 {
		return e.cap(matches)
	}

	if expr, err := calc.Parse(trimmed); err == nil {
		if v, err := expr.Eval(); err == nil {
			text := calc.Format(v)
			return []Result{{
				Title:  "= " + text,
				Desc:   "Copy to clipboard",
				Action: action.CopyText{Text: text},
			}}
		}
	}

	if convs, err := units.Convert(trimmed); err == nil && len(convs) > 0 {
		results := make([]Result, 0, len(convs))
		for _, c := range convs {
			text := units.FormatNumber(c.TargetValue) + " " + c.TargetUnit.Name
			results = append(results, Result{
				Title:  "= " + text,
				Desc:   "Copy to clipboard",
				Action: action.CopyText{Text: text},
			})
		}
		return e.cap(results)
	}

	if looksLikeURL(trimmed) {
		return []Result{{
			Title:  "Open " + trimmed,
			Desc:   "Website",
			Action: action.OpenWebsite{URL: trimmed},
		}}
	}

	if strings.ContainsRune(trimmed, ' ') {
		return []Result{webSearchResult(trimmed)}
	}
	return nil
}

func webSearchResult(term string) Result {
	return Result{
		Title:  fmt.Sprintf("Search the web for %q", term),
		Desc:   "Web Search",
		Action: action.WebSearch{Query: term},
	}
}

func indexResults(ix *appindex.Index, trimmed string) []Result {
	if ix == nil || trimmed == "" {
		return nil
	}
	entries := ix.SearchPrefix(trimmed)
	results := make([]Result, 0, len(entries))
	for _, en := range entries {
		results = append(results, Result{
			Title:  en.Name,
			Desc:   en.Desc,
			Action: en.Action,
		})
	}
	return results
}

func (e *Engine) historyResults(trimmed string) []Result {
	if e.History == nil {
		return nil
	}
	entries, err := e.History.Search(trimmed, e.maxResults())
	if err != nil {
		return nil
	}
	results := make([]Result, 0, len(entries))
	for _, en := range entries {
		en := en
		results = append(results, Result{
			Title:        en.FirstLine(),
			Desc:         en.Time.Format("Jan 2 15:04"),
			Action:       action.CopyText{Text: en.Content},
			HistoryEntry: &en,
		})
	}
	return results
}

func (e *Engine) maxResults() int {
	if e.Config != nil && e.Config.MaxResults > 0 {
		return e.Config.MaxResults
	}
	return 5
}

func (e *Engine) cap(results []Result) []Result {
	if max := e.maxResults(); len(results) > max {
		return results[:max]
	}
	return results
}

// TLDs accepted by the bare-URL heuristic.
var urlSuffixes = []string{
	".com", ".net", ".org", ".edu", ".gov", ".io", ".co", ".me", ".app", ".dev",
}

// looksLikeURL reports whether a single token reads as a website
// address. Schemes always qualify; otherwise the token must end in a
// recognized TLD (optionally followed by a path).
func looksLikeURL(s string) bool {
	if strings.ContainsRune(s, ' ') {
		return false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return true
	}
	host, _, _ := strings.Cut(s, "/")
	if !strings.ContainsRune(host, '.') {
		return false
	}
	for _, suffix := range urlSuffixes {
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}
