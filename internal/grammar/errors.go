package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports where the input stopped matching the grammar.
type SyntaxError struct {
	Rule     string   // start rule of the parse
	Pos      int      // byte offset of the furthest failure
	Line     int      // 1-based line of Pos
	Column   int      // 1-based column of Pos, in runes
	LineText string   // the line containing Pos, without its terminator
	Expected []string // sorted labels of what could have matched at Pos
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: expected %s", e.Line, e.Column, joinExpected(e.Expected))
}

// Pointer returns the offending line followed by a caret under the
// failing column.
func (e *SyntaxError) Pointer() string {
	return e.LineText + "\n" + strings.Repeat(" ", e.Column-1) + "^"
}

func joinExpected(labels []string) string {
	switch len(labels) {
	case 0:
		return "nothing"
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " or " + labels[1]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + ", or " + labels[len(labels)-1]
}

// locate turns a byte offset into a line and rune column and returns the
// text of that line. "\r\n", "\n" and "\r" all end a line.
func locate(input string, pos int) (line, col int, text string) {
	line = 1
	start := 0
	for i := 0; i < pos && i < len(input); i++ {
		switch input[i] {
		case '\n':
			line++
			start = i + 1
		case '\r':
			if i+1 < len(input) && input[i+1] == '\n' {
				continue
			}
			line++
			start = i + 1
		}
	}

	end := start
	for end < len(input) && input[end] != '\n' && input[end] != '\r' {
		end++
	}

	if pos > len(input) {
		pos = len(input)
	}
	col = utf8.RuneCountInString(input[start:pos]) + 1
	return line, col, input[start:end]
}
