package grammar

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"unicode"
)

// listGrammar accepts comma separated lists of words and numbers,
// e.g. "[abc, 12, de]".
func listGrammar() Grammar {
	return Grammar{
		{Name: "list", Expr: Seq(Lit("["), Opt(Seq(Ref("item"), Star(Seq(Ref("sep"), Ref("item"))))), Lit("]"), EOI())},
		{Name: "item", Expr: Choice(Ref("number"), Ref("word"))},
		{Name: "number", Expr: Plus(Class("digit", unicode.IsDigit))},
		{Name: "word", Expr: Plus(Class("letter", unicode.IsLetter))},
		{Name: "sep", Expr: Seq(Lit(","), Star(Lit(" "))), Silent: true},
	}
}

func mustEngine(t *testing.T, g Grammar) *Engine {
	t.Helper()
	e, err := Compile(g)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return e
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar Grammar
		wantErr string
	}{
		{
			name:    "unnamed rule",
			grammar: Grammar{{Expr: Lit("a")}},
			wantErr: "has no name",
		},
		{
			name:    "missing expression",
			grammar: Grammar{{Name: "a"}},
			wantErr: "has no expression",
		},
		{
			name:    "duplicate rule",
			grammar: Grammar{{Name: "a", Expr: Lit("a")}, {Name: "a", Expr: Lit("b")}},
			wantErr: `duplicate rule "a"`,
		},
		{
			name:    "unknown reference",
			grammar: Grammar{{Name: "a", Expr: Seq(Lit("a"), Opt(Ref("b")))}},
			wantErr: `unknown rule "b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.grammar)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error mismatch: got %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on an invalid grammar")
		}
	}()
	MustCompile(Grammar{{Name: "a", Expr: Ref("missing")}})
}

func TestParseTree(t *testing.T) {
	e := mustEngine(t, listGrammar())

	root, err := e.Parse("list", "[abc, 12,de]")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if root.Rule != "list" || root.Start != 0 || root.End != 12 {
		t.Errorf("Root mismatch: got %s %d..%d", root.Rule, root.Start, root.End)
	}

	var got []string
	for _, item := range root.Children {
		if item.Rule != "item" {
			t.Fatalf("Unexpected child rule %q", item.Rule)
		}
		if len(item.Children) != 1 {
			t.Fatalf("Item %q has %d children, want 1", item.Text(), len(item.Children))
		}
		inner := item.Children[0]
		got = append(got, inner.Rule+":"+inner.Text())
	}

	want := []string{"word:abc", "number:12", "word:de"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Items mismatch: got %v, want %v", got, want)
	}
}

func TestParsePrefix(t *testing.T) {
	e := mustEngine(t, listGrammar())

	node, err := e.Parse("number", "123abc")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if node.Text() != "123" {
		t.Errorf("Text mismatch: got %q, want %q", node.Text(), "123")
	}
	if node.Len() != 3 {
		t.Errorf("Len mismatch: got %d, want 3", node.Len())
	}
}

func TestParseUnknownRule(t *testing.T) {
	e := mustEngine(t, listGrammar())

	_, err := e.Parse("nope", "x")
	if err == nil {
		t.Fatal("Expected error for unknown rule")
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		t.Error("Unknown rule should not be a syntax error")
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	e := mustEngine(t, listGrammar())

	tests := []struct {
		name     string
		input    string
		pos      int
		line     int
		column   int
		expected []string
	}{
		{
			name:     "missing opening bracket",
			input:    "abc]",
			pos:      0,
			line:     1,
			column:   1,
			expected: []string{`"["`},
		},
		{
			name:     "bad item after separator",
			input:    "[abc, !]",
			pos:      6,
			line:     1,
			column:   7,
			expected: []string{`" "`, "item"},
		},
		{
			name:     "trailing input",
			input:    "[abc]x",
			pos:      5,
			line:     1,
			column:   6,
			expected: []string{"end of input"},
		},
		{
			name:     "deepest failure wins",
			input:    "[ab1]",
			pos:      3,
			line:     1,
			column:   4,
			expected: []string{`","`, `"]"`, "letter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Parse("list", tt.input)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Expected *SyntaxError, got %v", err)
			}

			if syntaxErr.Pos != tt.pos {
				t.Errorf("Pos mismatch: got %d, want %d", syntaxErr.Pos, tt.pos)
			}
			if syntaxErr.Line != tt.line || syntaxErr.Column != tt.column {
				t.Errorf("Location mismatch: got %d:%d, want %d:%d", syntaxErr.Line, syntaxErr.Column, tt.line, tt.column)
			}
			if !reflect.DeepEqual(syntaxErr.Expected, tt.expected) {
				t.Errorf("Expected set mismatch: got %v, want %v", syntaxErr.Expected, tt.expected)
			}
		})
	}
}

func TestSyntaxErrorMultiline(t *testing.T) {
	g := Grammar{
		{Name: "lines", Expr: Seq(Star(Ref("line")), EOI())},
		{Name: "line", Expr: Seq(Plus(Class("letter", unicode.IsLetter)), Choice(Lit("\r\n"), Lit("\n")))},
	}
	e := mustEngine(t, g)

	_, err := e.Parse("lines", "ab\r\nцвіт\nx1\n")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}

	if syntaxErr.Line != 3 || syntaxErr.Column != 2 {
		t.Errorf("Location mismatch: got %d:%d, want 3:2", syntaxErr.Line, syntaxErr.Column)
	}
	if syntaxErr.LineText != "x1" {
		t.Errorf("LineText mismatch: got %q, want %q", syntaxErr.LineText, "x1")
	}
	if syntaxErr.Pointer() != "x1\n ^" {
		t.Errorf("Pointer mismatch: got %q", syntaxErr.Pointer())
	}
	if !strings.HasPrefix(syntaxErr.Error(), "line 3, column 2: expected ") {
		t.Errorf("Error text mismatch: got %q", syntaxErr.Error())
	}
}

func TestOrderedChoiceCommits(t *testing.T) {
	// "a" wins over "ab" because it is declared first; the rest of the
	// sequence then fails and there is no retry with the longer branch.
	g := Grammar{
		{Name: "short_first", Expr: Seq(Choice(Lit("a"), Lit("ab")), Lit("c"))},
		{Name: "long_first", Expr: Seq(Choice(Lit("ab"), Lit("a")), Lit("c"))},
	}
	e := mustEngine(t, g)

	if _, err := e.Parse("short_first", "abc"); err == nil {
		t.Error("short_first should not match \"abc\"")
	}
	if _, err := e.Parse("long_first", "abc"); err != nil {
		t.Errorf("long_first should match \"abc\": %v", err)
	}
}

func TestRepeatBounds(t *testing.T) {
	g := Grammar{
		{Name: "stars", Expr: Repeat(Lit("*"), 1, 3)},
		{Name: "empty_loop", Expr: Seq(Star(Opt(Lit("x"))), EOI())},
	}
	e := mustEngine(t, g)

	tests := []struct {
		input   string
		text    string
		wantErr bool
	}{
		{input: "*", text: "*"},
		{input: "***", text: "***"},
		{input: "*****", text: "***"},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := e.Parse("stars", tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if node.Text() != tt.text {
				t.Errorf("Text mismatch: got %q, want %q", node.Text(), tt.text)
			}
		})
	}

	// A repeated expression that can match empty must not loop forever.
	if _, err := e.Parse("empty_loop", "xxx"); err != nil {
		t.Errorf("empty_loop failed: %v", err)
	}
}

func TestLookahead(t *testing.T) {
	g := Grammar{
		{Name: "keyword", Expr: Seq(Lit("if"), Not(Class("letter", unicode.IsLetter)))},
		{Name: "before_digit", Expr: Seq(Lit("a"), And(Class("digit", unicode.IsDigit)))},
	}
	e := mustEngine(t, g)

	if _, err := e.Parse("keyword", "if x"); err != nil {
		t.Errorf("keyword should match \"if x\": %v", err)
	}

	_, err := e.Parse("keyword", "iffy")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	// Failures inside lookahead are not reported.
	if reflect.DeepEqual(syntaxErr.Expected, []string{"letter"}) {
		t.Errorf("Lookahead leaked into expected set: %v", syntaxErr.Expected)
	}

	node, err := e.Parse("before_digit", "a1")
	if err != nil {
		t.Fatalf("before_digit failed: %v", err)
	}
	if node.Text() != "a" {
		t.Errorf("Lookahead consumed input: got %q", node.Text())
	}
}

func TestSilentRuleInlinesChildren(t *testing.T) {
	g := Grammar{
		{Name: "pair", Expr: Seq(Ref("wrap"), Ref("wrap"))},
		{Name: "wrap", Expr: Seq(Lit("("), Ref("x"), Lit(")")), Silent: true},
		{Name: "x", Expr: Lit("x")},
	}
	e := mustEngine(t, g)

	node, err := e.Parse("pair", "(x)(x)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(node.Children) != 2 {
		t.Fatalf("Children mismatch: got %d, want 2\n%s", len(node.Children), node)
	}
	for _, c := range node.Children {
		if c.Rule != "x" {
			t.Errorf("Child rule mismatch: got %q, want %q", c.Rule, "x")
		}
	}
	if node.Child("x") != node.Children[0] {
		t.Error("Child should return the first matching child")
	}
	if node.Child("wrap") != nil {
		t.Error("Silent rules must not produce nodes")
	}
}

func TestConcurrentParse(t *testing.T) {
	e := mustEngine(t, listGrammar())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := "[a, 1, b]"
			if i%2 == 1 {
				input = "[a, ?]"
			}
			_, err := e.Parse("list", input)
			if (err != nil) != (i%2 == 1) {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected result: %v", err)
	}
}
