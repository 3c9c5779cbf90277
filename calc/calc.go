// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: calc/calc.go
// Summary: Expression tree and evaluator for the inline calculator.
//
// Supports + - * / ^ with precedence, parentheses, stacked unary +/-,
// ln(x), log(x) (base 10) and log(base, x).

package calc

import (
	"fmt"
	"math"
)

// Expr is a parsed arithmetic expression.
type Expr interface {
	// Eval computes the value of the expression. Evaluation only
	// fails for bad function arity, which Parse already rejects;
	// division by zero follows IEEE float semantics.
	Eval() (float64, error)
}

// Number is a literal value.
type Number float64

// Unary applies a sign to its operand.
type Unary struct {
	Op  UnaryOp
	Rhs Expr
}

// Binary combines two operands.
type Binary struct {
	Op  BinOp
	Lhs Expr
	Rhs Expr
}

// Call is a named function application.
type Call struct {
	Name string
	Args []Expr
}

type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (n Number) Eval() (float64, error) { return float64(n), nil }

func (u Unary) Eval() (float64, error) {
	v, err := u.Rhs.Eval()
	if err != nil {
		return 0, err
	}
	if u.Op == UnaryMinus {
		return -v, nil
	}
	return v, nil
}

func (b Binary) Eval() (float64, error) {
	a, err := b.Lhs.Eval()
	if err != nil {
		return 0, err
	}
	c, err := b.Rhs.Eval()
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case OpAdd:
		return a + c, nil
	case OpSub:
		return a - c, nil
	case OpMul:
		return a * c, nil
	case OpDiv:
		return a / c, nil
	case OpPow:
		return math.Pow(a, c), nil
	}
	return 0, fmt.Errorf("unknown operator %d", b.Op)
}

func (c Call) Eval() (float64, error) {
	switch c.Name {
	case "ln":
		if len(c.Args) != 1 {
			return 0, fmt.Errorf("ln takes one argument")
		}
		v, err := c.Args[0].Eval()
		if err != nil {
			return 0, err
		}
		return math.Log(v), nil
	case "log":
		switch len(c.Args) {
		case 1:
			v, err := c.Args[0].Eval()
			if err != nil {
				return 0, err
			}
			return math.Log10(v), nil
		case 2:
			base, err := c.Args[0].Eval()
			if err != nil {
				return 0, err
			}
			x, err := c.Args[1].Eval()
			if err != nil {
				return 0, err
			}
			return math.Log(x) / math.Log(base), nil
		default:
			return 0, fmt.Errorf("log takes one or two arguments")
		}
	}
	return 0, fmt.Errorf("unknown function %q", c.Name)
}

// Format renders a result the way the tile displays it: integral values
// without a decimal point, everything else with minimal digits.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
