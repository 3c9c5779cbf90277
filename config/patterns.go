// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/patterns.go
// Summary: Parser for index directory patterns.

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Pattern is a directory to index with a maximum walk depth.
// The textual form is "path" or "path:depth"; depth defaults to 1.
type Pattern struct {
	Path     string
	MaxDepth int
}

// ParsePattern parses a single "path[:depth]" spec.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pattern{}, fmt.Errorf("empty pattern")
	}

	path := s
	depth := 1
	if idx := strings.LastIndex(s, ":"); idx > 0 {
		if n, err := strconv.Atoi(s[idx+1:]); err == nil {
			if n < 1 {
				return Pattern{}, fmt.Errorf("invalid depth in pattern %q", s)
			}
			path = s[:idx]
			depth = n
		}
	}
	if path == "" {
		return Pattern{}, fmt.Errorf("invalid pattern syntax: %q", s)
	}
	return Pattern{Path: path, MaxDepth: depth}, nil
}

// Patterns parses the configured index_dirs. Invalid entries are
// returned as errors alongside the valid patterns.
func (c Config) Patterns() ([]Pattern, []error) {
	var patterns []Pattern
	var errs []error
	for _, raw := range c.IndexDirs {
		p, err := ParsePattern(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns, errs
}
