// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "testing"

func TestParsePattern(t *testing.T) {
	cases := []struct {
		in      string
		path    string
		depth   int
		wantErr bool
	}{
		{in: "/usr/share/applications", path: "/usr/share/applications", depth: 1},
		{in: "/opt/tools:3", path: "/opt/tools", depth: 3},
		{in: "~/bin:2", path: "~/bin", depth: 2},
		{in: "/data/apps:abc", path: "/data/apps:abc", depth: 1},
		{in: "/data/apps:0", wantErr: true},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParsePattern(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePattern(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePattern(%q): %v", tc.in, err)
		}
		if got.Path != tc.path || got.MaxDepth != tc.depth {
			t.Fatalf("ParsePattern(%q) = %+v, expected path %q depth %d", tc.in, got, tc.path, tc.depth)
		}
	}
}

func TestPatternsCollectsErrors(t *testing.T) {
	cfg := Config{IndexDirs: []string{"/ok", "", "/deep:4"}}
	patterns, errs := cfg.Patterns()
	if len(patterns) != 2 {
		t.Fatalf("expected 2 valid patterns, got %d", len(patterns))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if patterns[1].MaxDepth != 4 {
		t.Fatalf("expected depth 4, got %d", patterns[1].MaxDepth)
	}
}
