// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: units/units.go
// Summary: Unit conversion tables and query parsing.
//
// Queries look like "12 kg", "12 kg lb" or "12 kg to lb". With no target
// unit every other unit in the same category is produced.

package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category groups convertible units.
type Category int

const (
	Length Category = iota
	Mass
	Volume
	Temperature
)

// Unit describes one convertible unit. Values convert through the
// category's base unit: base = (value + offset) * scale.
type Unit struct {
	Name     string
	Aliases  []string
	Category Category
	Scale    float64
	Offset   float64
}

// Conversion is a single converted result.
type Conversion struct {
	SourceValue float64
	SourceUnit  *Unit
	TargetValue float64
	TargetUnit  *Unit
}

var units = []Unit{
	// Length (base: meter)
	{Name: "mm", Aliases: []string{"mm", "millimeter", "millimetre", "millimeters", "millimetres"}, Category: Length, Scale: 0.001},
	{Name: "cm", Aliases: []string{"cm", "centimeter", "centimetre", "centimeters", "centimetres"}, Category: Length, Scale: 0.01},
	{Name: "m", Aliases: []string{"m", "meter", "metre", "meters", "metres"}, Category: Length, Scale: 1},
	{Name: "km", Aliases: []string{"km", "kilometer", "kilometre", "kilometers", "kilometres"}, Category: Length, Scale: 1000},
	{Name: "in", Aliases: []string{"in", "inch", "inches"}, Category: Length, Scale: 0.0254},
	{Name: "ft", Aliases: []string{"ft", "foot", "feet"}, Category: Length, Scale: 0.3048},
	{Name: "yd", Aliases: []string{"yd", "yard", "yards"}, Category: Length, Scale: 0.9144},
	{Name: "mi", Aliases: []string{"mi", "mile", "miles"}, Category: Length, Scale: 1609.344},
	// Mass (base: gram)
	{Name: "mg", Aliases: []string{"mg", "milligram", "milligrams"}, Category: Mass, Scale: 0.001},
	{Name: "g", Aliases: []string{"g", "gram", "grams"}, Category: Mass, Scale: 1},
	{Name: "kg", Aliases: []string{"kg", "kilogram", "kilograms"}, Category: Mass, Scale: 1000},
	{Name: "oz", Aliases: []string{"oz", "ounce", "ounces"}, Category: Mass, Scale: 28.349523125},
	{Name: "lb", Aliases: []string{"lb", "lbs", "pound", "pounds"}, Category: Mass, Scale: 453.59237},
	// Volume (base: liter)
	{Name: "ml", Aliases: []string{"ml", "milliliter", "millilitre", "milliliters", "millilitres"}, Category: Volume, Scale: 0.001},
	{Name: "l", Aliases: []string{"l", "liter", "litre", "liters", "litres"}, Category: Volume, Scale: 1},
	{Name: "tsp", Aliases: []string{"tsp", "teaspoon", "teaspoons"}, Category: Volume, Scale: 0.00492892159375},
	{Name: "tbsp", Aliases: []string{"tbsp", "tablespoon", "tablespoons"}, Category: Volume, Scale: 0.01478676478125},
	{Name: "floz", Aliases: []string{"floz", "fl-oz", "fl_oz", "fluidounce", "fluidounces"}, Category: Volume, Scale: 0.0295735295625},
	{Name: "cup", Aliases: []string{"cup", "cups"}, Category: Volume, Scale: 0.2365882365},
	{Name: "pt", Aliases: []string{"pt", "pint", "pints"}, Category: Volume, Scale: 0.473176473},
	{Name: "qt", Aliases: []string{"qt", "quart", "quarts"}, Category: Volume, Scale: 0.946352946},
	{Name: "gal", Aliases: []string{"gal", "gallon", "gallons"}, Category: Volume, Scale: 3.785411784},
	// Temperature (base: celsius)
	{Name: "c", Aliases: []string{"c", "celsius", "centigrade"}, Category: Temperature, Scale: 1},
	{Name: "f", Aliases: []string{"f", "fahrenheit"}, Category: Temperature, Scale: 5.0 / 9.0, Offset: -32},
	{Name: "k", Aliases: []string{"k", "kelvin", "kelvins"}, Category: Temperature, Scale: 1, Offset: -273.15},
}

type parsedQuery struct {
	value  float64
	source *Unit
	target *Unit
}

// Convert parses a conversion query and returns the resulting
// conversions, or an error when the text is not a conversion.
func Convert(query string) ([]Conversion, error) {
	parsed, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	base := toBase(parsed.value, parsed.source)

	var targets []*Unit
	if parsed.target != nil {
		targets = []*Unit{parsed.target}
	} else {
		for i := range units {
			if units[i].Category == parsed.source.Category {
				targets = append(targets, &units[i])
			}
		}
	}

	var results []Conversion
	for _, target := range targets {
		if target.Name == parsed.source.Name {
			continue
		}
		results = append(results, Conversion{
			SourceValue: parsed.value,
			SourceUnit:  parsed.source,
			TargetValue: fromBase(base, target),
			TargetUnit:  target,
		})
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no conversion targets for %q", query)
	}
	return results, nil
}

// FormatNumber trims a value to at most six decimals with trailing
// zeros removed. Values below 1e-9 in magnitude collapse to 0.
func FormatNumber(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func parseQuery(query string) (parsedQuery, error) {
	numStr, rest, ok := splitNumberPrefix(query)
	if !ok {
		return parsedQuery{}, fmt.Errorf("no leading number in %q", query)
	}
	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return parsedQuery{}, fmt.Errorf("invalid number %q", numStr)
	}

	tokens := strings.Fields(strings.ToLower(rest))
	if len(tokens) == 0 {
		return parsedQuery{}, fmt.Errorf("no unit in %q", query)
	}

	source := findUnit(tokens[0])
	if source == nil {
		return parsedQuery{}, fmt.Errorf("unknown unit %q", tokens[0])
	}

	switch len(tokens) {
	case 1:
		return parsedQuery{value: value, source: source}, nil
	case 2:
		target := findUnit(tokens[1])
		if target == nil {
			return parsedQuery{}, fmt.Errorf("unknown unit %q", tokens[1])
		}
		if target.Category != source.Category {
			return parsedQuery{}, fmt.Errorf("cannot convert %s to %s", source.Name, target.Name)
		}
		return parsedQuery{value: value, source: source, target: target}, nil
	case 3:
		if tokens[1] != "to" && tokens[1] != "in" {
			return parsedQuery{}, fmt.Errorf("unexpected token %q", tokens[1])
		}
		target := findUnit(tokens[2])
		if target == nil {
			return parsedQuery{}, fmt.Errorf("unknown unit %q", tokens[2])
		}
		if target.Category != source.Category {
			return parsedQuery{}, fmt.Errorf("cannot convert %s to %s", source.Name, target.Name)
		}
		return parsedQuery{value: value, source: source, target: target}, nil
	}
	return parsedQuery{}, fmt.Errorf("too many tokens in %q", query)
}

// splitNumberPrefix splits "12.5kg ..." into its number prefix and the
// remainder. An optional sign is allowed; at least one digit required.
func splitNumberPrefix(s string) (num, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", "", false
	}

	end := 0
	hasDigit := false
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			hasDigit = true
			end++
		} else if c == '.' {
			end++
		} else {
			break
		}
	}
	if !hasDigit {
		return "", "", false
	}
	return s[:end], s[end:], true
}

func findUnit(token string) *Unit {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	for i := range units {
		if units[i].Name == token {
			return &units[i]
		}
		for _, alias := range units[i].Aliases {
			if alias == token {
				return &units[i]
			}
		}
	}
	return nil
}

func toBase(v float64, u *Unit) float64 {
	return (v + u.Offset) * u.Scale
}

func fromBase(v float64, u *Unit) float64 {
	return v/u.Scale - u.Offset
}
