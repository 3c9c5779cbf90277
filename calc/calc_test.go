// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"math"
	"testing"
)

func eval(t *testing.T, input string) float64 {
	t.Helper()
	expr, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	v, err := expr.Eval()
	if err != nil {
		t.Fatalf("Eval(%q): %v", input, err)
	}
	return v
}

func TestEvalPrecedence(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2 + 3*4", 14},
		{"2*3 + 4", 10},
		{"10 - 4 - 3", 3},
		{"2^(1+2)", 8},
		{"2^3^2", 512}, // right associative
		{"-(3 + 4)", -7},
		{"--5", 5},
		{"+-+3", -3},
		{"8 / 4 / 2", 1},
		{"1.5e2 + 1", 151},
		{"log(100)", 2},
		{"log(2, 8)", 3},
	}
	for _, tc := range cases {
		if got := eval(t, tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("eval(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestEvalLn(t *testing.T) {
	if got := eval(t, "ln(2.718281828459045)"); math.Abs(got-1) > 1e-9 {
		t.Fatalf("ln(e) = %v, expected 1", got)
	}
}

func TestParseRejectsNonExpressions(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"firefox",
		"2 +",
		"(1 + 2",
		"ln()",
		"ln(1, 2)",
		"log(1, 2, 3)",
		"sin(1)",
		"2 3",
		"hello world",
		"1.2.3 + $",
	}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{14, "14"},
		{-7, "-7"},
		{0.5, "0.5"},
		{512, "512"},
	}
	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Fatalf("Format(%v) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
