package grammar

import (
	"errors"
	"fmt"
	"sort"
)

// Engine is a compiled grammar. It holds no per-parse state and may be
// used from several goroutines at once.
type Engine struct {
	rules map[string]*Rule
}

// Compile checks g and returns an engine for it. Every rule needs a
// unique, non-empty name and every Ref must name a rule of g.
func Compile(g Grammar) (*Engine, error) {
	e := &Engine{rules: make(map[string]*Rule, len(g))}
	for i := range g {
		r := g[i]
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d has no name", i)
		}
		if r.Expr == nil {
			return nil, fmt.Errorf("rule %q has no expression", r.Name)
		}
		if _, dup := e.rules[r.Name]; dup {
			return nil, fmt.Errorf("duplicate rule %q", r.Name)
		}
		e.rules[r.Name] = &r
	}

	var errs []error
	for _, r := range g {
		walk(r.Expr, func(expr Expr) {
			if rf, ok := expr.(*ref); ok {
				if _, found := e.rules[rf.name]; !found {
					errs = append(errs, fmt.Errorf("rule %q references unknown rule %q", r.Name, rf.name))
				}
			}
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return e, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// grammars declared at package level.
func MustCompile(g Grammar) *Engine {
	e, err := Compile(g)
	if err != nil {
		panic(fmt.Sprintf("grammar: %v", err))
	}
	return e
}

// HasRule reports whether the engine knows a rule called name.
func (e *Engine) HasRule(name string) bool {
	_, ok := e.rules[name]
	return ok
}

// Parse matches rule against a prefix of input and returns the node for
// it. Anchoring to the end of the input is up to the rule itself. When the
// rule does not match, the error is a *SyntaxError.
func (e *Engine) Parse(rule, input string) (*Node, error) {
	r, ok := e.rules[rule]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", rule)
	}

	s := &state{engine: e, input: input}
	end, kids, matched := s.call(r, 0)
	if !matched {
		return nil, s.syntaxError(rule)
	}

	if r.Silent {
		return &Node{Rule: r.Name, Start: 0, End: end, Children: kids, input: input}, nil
	}
	return kids[0], nil
}

// state is the bookkeeping of a single Parse call.
type state struct {
	engine *Engine
	input  string

	// quiet is non-zero inside lookahead, where failures are not
	// reported.
	quiet int
	depth int

	// attemptPos is the furthest position at which something failed and
	// attempts are the labels that failed there.
	attemptPos int
	attempts   []string
}

func (s *state) call(r *Rule, pos int) (int, []*Node, bool) {
	prevPos, prevLen := s.attemptPos, len(s.attempts)

	s.depth++
	end, kids, ok := r.Expr.match(s, pos)
	s.depth--
	if ok {
		if r.Silent {
			return end, kids, true
		}
		node := &Node{Rule: r.Name, Start: pos, End: end, Children: kids, input: s.input}
		return end, []*Node{node}, true
	}

	// The start rule never hides what went wrong inside it.
	if s.depth == 0 {
		return pos, nil, false
	}

	if !r.Silent && s.quiet == 0 && pos == s.attemptPos {
		// The outermost rule that starts at the failure position
		// replaces whatever its own sub-expressions recorded there.
		if prevPos == pos {
			s.attempts = s.attempts[:prevLen]
		} else {
			s.attempts = s.attempts[:0]
		}
		s.attempts = append(s.attempts, r.Name)
	} else if !r.Silent {
		s.fail(r.Name, pos)
	}
	return pos, nil, false
}

func (s *state) fail(label string, pos int) {
	if s.quiet > 0 {
		return
	}
	switch {
	case pos > s.attemptPos:
		s.attemptPos = pos
		s.attempts = append(s.attempts[:0], label)
	case pos == s.attemptPos:
		s.attempts = append(s.attempts, label)
	}
}

func (s *state) syntaxError(rule string) *SyntaxError {
	if len(s.attempts) == 0 {
		s.attempts = append(s.attempts, rule)
	}
	seen := make(map[string]bool, len(s.attempts))
	expected := make([]string, 0, len(s.attempts))
	for _, a := range s.attempts {
		if !seen[a] {
			seen[a] = true
			expected = append(expected, a)
		}
	}
	sort.Strings(expected)

	err := &SyntaxError{Rule: rule, Pos: s.attemptPos, Expected: expected}
	err.Line, err.Column, err.LineText = locate(s.input, s.attemptPos)
	return err
}
