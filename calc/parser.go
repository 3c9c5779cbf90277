// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: calc/parser.go
// Summary: Tokenizer and recursive descent parser for calculator input.

package calc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEnd tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind  tokenKind
	num   float64
	ident string
}

func (t token) String() string {
	switch t.kind {
	case tokEnd:
		return "end of input"
	case tokNumber:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case tokIdent:
		return t.ident
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokSlash:
		return "/"
	case tokCaret:
		return "^"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokComma:
		return ","
	}
	return "?"
}

type lexer struct {
	input []rune
	pos   int
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) next() (token, error) {
	for {
		c, ok := l.peek()
		if !ok {
			return token{kind: tokEnd}, nil
		}
		if !unicode.IsSpace(c) {
			break
		}
		l.pos++
	}

	c := l.input[l.pos]
	switch c {
	case '+':
		l.pos++
		return token{kind: tokPlus}, nil
	case '-':
		l.pos++
		return token{kind: tokMinus}, nil
	case '*':
		l.pos++
		return token{kind: tokStar}, nil
	case '/':
		l.pos++
		return token{kind: tokSlash}, nil
	case '^':
		l.pos++
		return token{kind: tokCaret}, nil
	case '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	}

	if c >= '0' && c <= '9' || c == '.' {
		return l.lexNumber()
	}
	if isIdentStart(c) {
		return l.lexIdent(), nil
	}
	return token{}, fmt.Errorf("unexpected character %q", c)
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	seenExp := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c >= '0' && c <= '9' || c == '.' {
			l.pos++
			continue
		}
		if (c == 'e' || c == 'E') && !seenExp {
			seenExp = true
			l.pos++
			if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
				l.pos++
			}
			continue
		}
		break
	}
	s := string(l.input[start:l.pos])
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return token{}, fmt.Errorf("invalid number %q", s)
	}
	return token{kind: tokNumber, num: n}, nil
}

func (l *lexer) lexIdent() token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, ident: string(l.input[start:l.pos])}
}

func isIdentStart(c rune) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

type parser struct {
	lex lexer
	cur token
}

// Parse parses an expression, rejecting trailing input and unknown
// functions so that non-arithmetic queries fall through to the other
// query classifiers.
func Parse(input string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	p := parser{lex: lexer{input: []rune(input)}}
	if err := p.bump(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEnd {
		return nil, fmt.Errorf("unexpected trailing token %s", p.cur)
	}
	if err := checkCalls(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

// checkCalls validates function names and arity at parse time.
func checkCalls(e Expr) error {
	switch v := e.(type) {
	case Number:
		return nil
	case Unary:
		return checkCalls(v.Rhs)
	case Binary:
		if err := checkCalls(v.Lhs); err != nil {
			return err
		}
		return checkCalls(v.Rhs)
	case Call:
		switch v.Name {
		case "ln":
			if len(v.Args) != 1 {
				return fmt.Errorf("ln takes one argument")
			}
		case "log":
			if len(v.Args) != 1 && len(v.Args) != 2 {
				return fmt.Errorf("log takes one or two arguments")
			}
		default:
			return fmt.Errorf("unknown function %q", v.Name)
		}
		for _, arg := range v.Args {
			if err := checkCalls(arg); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown expression node %T", e)
}

func (p *parser) bump() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expect(kind tokenKind) error {
	if p.cur.kind != kind {
		return fmt.Errorf("expected %s, found %s", token{kind: kind}, p.cur)
	}
	return p.bump()
}

// expr = term (('+'|'-') term)*
func (p *parser) parseExpr() (Expr, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.cur.kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return node, nil
		}
		if err := p.bump(); err != nil {
			return nil, err
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = Binary{Op: op, Lhs: node, Rhs: rhs}
	}
}

// term = power (('*'|'/') power)*
func (p *parser) parseTerm() (Expr, error) {
	node, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.cur.kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		default:
			return node, nil
		}
		if err := p.bump(); err != nil {
			return nil, err
		}
		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		node = Binary{Op: op, Lhs: node, Rhs: rhs}
	}
}

// power = unary ('^' power)?  (right associative)
func (p *parser) parsePower() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return lhs, nil
	}
	if err := p.bump(); err != nil {
		return nil, err
	}
	rhs, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return Binary{Op: OpPow, Lhs: lhs, Rhs: rhs}, nil
}

// unary = ('+'|'-')* primary
func (p *parser) parseUnary() (Expr, error) {
	switch p.cur.kind {
	case tokPlus:
		if err := p.bump(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: UnaryPlus, Rhs: rhs}, nil
	case tokMinus:
		if err := p.bump(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: UnaryMinus, Rhs: rhs}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.cur.kind {
	case tokNumber:
		v := Number(p.cur.num)
		if err := p.bump(); err != nil {
			return nil, err
		}
		return v, nil

	case tokLParen:
		if err := p.bump(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil

	case tokIdent:
		name := p.cur.ident
		if err := p.bump(); err != nil {
			return nil, err
		}
		// A bare identifier is not an expression; only calls allowed.
		if err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		var args []Expr
		if p.cur.kind != tokRParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur.kind != tokComma {
					break
				}
				if err := p.bump(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return Call{Name: name, Args: args}, nil
	}
	return nil, fmt.Errorf("unexpected token %s", p.cur)
}
