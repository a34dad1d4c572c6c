// Package grammar implements a small parsing expression grammar (PEG)
// engine. A Grammar is a list of named rules; Compile checks it and
// returns an Engine that turns input text into a tree of labeled spans.
//
// Matching is deterministic: a Choice commits to the first alternative
// that matches, and repetition is greedy without backtracking into earlier
// iterations. On failure the engine reports the furthest position it
// reached together with the rules it expected there.
package grammar

import (
	"fmt"
	"unicode/utf8"
)

// Grammar is an ordered list of rules.
type Grammar []Rule

// Rule binds a name to an expression. A silent rule matches like any
// other but produces no node of its own; its children are attached to the
// enclosing rule and it never shows up in the expected set of an error.
type Rule struct {
	Name   string
	Expr   Expr
	Silent bool
}

// Expr is a parsing expression. The set of expressions is closed; build
// them with the constructors in this package.
type Expr interface {
	match(s *state, pos int) (int, []*Node, bool)
}

type literal struct {
	text  string
	label string
}

// Lit matches the exact string s.
func Lit(s string) Expr {
	return &literal{text: s, label: fmt.Sprintf("%q", s)}
}

func (e *literal) match(s *state, pos int) (int, []*Node, bool) {
	end := pos + len(e.text)
	if end <= len(s.input) && s.input[pos:end] == e.text {
		return end, nil, true
	}
	s.fail(e.label, pos)
	return pos, nil, false
}

type class struct {
	label string
	fn    func(rune) bool
}

// Class matches a single rune accepted by fn. The label names the class
// in syntax errors.
func Class(label string, fn func(rune) bool) Expr {
	return &class{label: label, fn: fn}
}

func (e *class) match(s *state, pos int) (int, []*Node, bool) {
	if pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[pos:])
		if r != utf8.RuneError || size > 1 {
			if e.fn(r) {
				return pos + size, nil, true
			}
		}
	}
	s.fail(e.label, pos)
	return pos, nil, false
}

// Any matches a single rune.
func Any() Expr {
	return Class("any character", func(rune) bool { return true })
}

type eoi struct{}

// EOI matches only at the end of the input.
func EOI() Expr { return eoi{} }

func (eoi) match(s *state, pos int) (int, []*Node, bool) {
	if pos == len(s.input) {
		return pos, nil, true
	}
	s.fail("end of input", pos)
	return pos, nil, false
}

type ref struct {
	name string
}

// Ref matches the rule called name.
func Ref(name string) Expr { return &ref{name: name} }

func (e *ref) match(s *state, pos int) (int, []*Node, bool) {
	return s.call(s.engine.rules[e.name], pos)
}

type sequence struct {
	exprs []Expr
}

// Seq matches every expression in order.
func Seq(exprs ...Expr) Expr { return &sequence{exprs: exprs} }

func (e *sequence) match(s *state, pos int) (int, []*Node, bool) {
	var nodes []*Node
	cur := pos
	for _, sub := range e.exprs {
		end, kids, ok := sub.match(s, cur)
		if !ok {
			return pos, nil, false
		}
		nodes = append(nodes, kids...)
		cur = end
	}
	return cur, nodes, true
}

type choice struct {
	alts []Expr
}

// Choice tries each alternative in order and commits to the first one
// that matches.
func Choice(alts ...Expr) Expr { return &choice{alts: alts} }

func (e *choice) match(s *state, pos int) (int, []*Node, bool) {
	for _, alt := range e.alts {
		if end, kids, ok := alt.match(s, pos); ok {
			return end, kids, true
		}
	}
	return pos, nil, false
}

type repeat struct {
	expr     Expr
	min, max int
}

// Repeat matches expr at least min and at most max times. A negative max
// means no upper bound. Repetition stops as soon as an iteration matches
// without consuming input.
func Repeat(expr Expr, min, max int) Expr {
	return &repeat{expr: expr, min: min, max: max}
}

// Opt matches expr zero or one time.
func Opt(expr Expr) Expr { return Repeat(expr, 0, 1) }

// Star matches expr zero or more times.
func Star(expr Expr) Expr { return Repeat(expr, 0, -1) }

// Plus matches expr one or more times.
func Plus(expr Expr) Expr { return Repeat(expr, 1, -1) }

func (e *repeat) match(s *state, pos int) (int, []*Node, bool) {
	var nodes []*Node
	cur := pos
	count := 0
	for e.max < 0 || count < e.max {
		end, kids, ok := e.expr.match(s, cur)
		if !ok {
			break
		}
		nodes = append(nodes, kids...)
		count++
		if end == cur {
			break
		}
		cur = end
	}
	if count < e.min {
		return pos, nil, false
	}
	return cur, nodes, true
}

type lookahead struct {
	expr   Expr
	negate bool
}

// Not succeeds without consuming input when expr does not match.
func Not(expr Expr) Expr { return &lookahead{expr: expr, negate: true} }

// And succeeds without consuming input when expr matches.
func And(expr Expr) Expr { return &lookahead{expr: expr} }

func (e *lookahead) match(s *state, pos int) (int, []*Node, bool) {
	s.quiet++
	_, _, ok := e.expr.match(s, pos)
	s.quiet--
	return pos, nil, ok != e.negate
}

// walk visits expr and every sub-expression.
func walk(expr Expr, fn func(Expr)) {
	fn(expr)
	switch e := expr.(type) {
	case *sequence:
		for _, sub := range e.exprs {
			walk(sub, fn)
		}
	case *choice:
		for _, sub := range e.alts {
			walk(sub, fn)
		}
	case *repeat:
		walk(e.expr, fn)
	case *lookahead:
		walk(e.expr, fn)
	}
}
