// Package render draws tasks for the terminal with lipgloss styles and
// wraps long descriptions to a fixed width.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/mytec0l/ToDoListParser/internal/todo"
)

// DefaultColors maps style names to lipgloss colors. Any value accepted by
// lipgloss.Color works: ANSI numbers or hex strings.
func DefaultColors() map[string]string {
	return map[string]string{
		"todo":       "7",
		"doing":      "11",
		"done":       "8",
		"priority":   "9",
		"tag":        "12",
		"due_date":   "13",
		"start_date": "14",
		"header":     "10",
		"selected":   "62",
		"error":      "196",
		"help":       "241",
	}
}

type Styles struct {
	Todo      lipgloss.Style
	Doing     lipgloss.Style
	Done      lipgloss.Style
	Priority  lipgloss.Style
	Tag       lipgloss.Style
	DueDate   lipgloss.Style
	StartDate lipgloss.Style
	Text      lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds styles bound to r. Colors missing from colors fall back
// to DefaultColors.
func NewStyles(r *lipgloss.Renderer, colors map[string]string) Styles {
	color := func(name string) lipgloss.Color {
		if c, ok := colors[name]; ok && c != "" {
			return lipgloss.Color(c)
		}
		return lipgloss.Color(DefaultColors()[name])
	}

	return Styles{
		Todo:      r.NewStyle().Foreground(color("todo")).Bold(true),
		Doing:     r.NewStyle().Foreground(color("doing")).Bold(true),
		Done:      r.NewStyle().Foreground(color("done")),
		Priority:  r.NewStyle().Foreground(color("priority")).Bold(true),
		Tag:       r.NewStyle().Foreground(color("tag")),
		DueDate:   r.NewStyle().Foreground(color("due_date")).Underline(true),
		StartDate: r.NewStyle().Foreground(color("start_date")),
		Text:      r.NewStyle(),
		Header:    r.NewStyle().Foreground(color("header")).Bold(true),
		Selected:  r.NewStyle().Background(color("selected")).Bold(true),
		Error:     r.NewStyle().Foreground(color("error")).Bold(true),
		Help:      r.NewStyle().Foreground(color("help")),
	}
}

// Status returns the style of a status marker.
func (s Styles) Status(status todo.Status) lipgloss.Style {
	switch status {
	case todo.StatusDoing:
		return s.Doing
	case todo.StatusDone:
		return s.Done
	}
	return s.Todo
}

// Part returns the style of a description part.
func (s Styles) Part(kind todo.PartKind) lipgloss.Style {
	switch kind {
	case todo.PartTag:
		return s.Tag
	case todo.PartDueDate:
		return s.DueDate
	case todo.PartStartDate:
		return s.StartDate
	}
	return s.Text
}

// Printer writes styled task listings.
type Printer struct {
	w      io.Writer
	styles Styles
	width  int
}

// NewRenderer returns a lipgloss renderer for w that detects the color
// profile of w, or emits plain text when noColor is set.
func NewRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewPrinter returns a printer for w. A width of zero disables wrapping.
func NewPrinter(w io.Writer, colors map[string]string, width int, noColor bool) *Printer {
	return &Printer{w: w, styles: NewStyles(NewRenderer(w, noColor), colors), width: width}
}

func (p *Printer) Styles() Styles {
	return p.styles
}

// Task renders t on one line, wrapped to the printer width with
// continuation lines aligned under the description.
func (p *Printer) Task(t todo.Task) string {
	return Task(p.styles, t, p.width)
}

// Task renders t with styles s. See Printer.Task.
func Task(s Styles, t todo.Task, width int) string {
	prefix := s.Status(t.Status).Render(t.Status.Marker())
	if t.Priority != todo.PriorityNone {
		prefix = s.Priority.Render("("+t.Priority.Marker()+")") + " " + prefix
	}

	words := make([]string, 0, len(t.Description))
	for _, part := range t.Description {
		text := todo.DisplayText(part)
		if text == "" {
			continue
		}
		style := s.Part(part.Kind)
		if t.Status == todo.StatusDone && part.Kind == todo.PartText {
			style = s.Done
		}
		words = append(words, style.Render(text))
	}
	if len(words) == 0 {
		return prefix
	}

	desc := strings.Join(words, " ")
	offset := lipgloss.Width(prefix) + 1
	if width <= 0 || offset+lipgloss.Width(desc) <= width || width-offset < 10 {
		return prefix + " " + desc
	}

	lines := strings.Split(wordwrap.String(desc, width-offset), "\n")
	out := prefix + " " + lines[0]
	if len(lines) > 1 {
		out += "\n" + indent.String(strings.Join(lines[1:], "\n"), uint(offset))
	}
	return out
}

// Header renders the line printed above a listing.
func (p *Printer) Header(count int, mode todo.SortMode) string {
	return p.styles.Header.Render(todo.Header(count, mode))
}

// Summary renders per-status counts.
func (p *Printer) Summary(s todo.Summary) string {
	return p.styles.Help.Render(fmt.Sprintf("%d todo, %d doing, %d done", s.Todo, s.Doing, s.Done))
}

// List writes a header, every task and optionally a summary line.
func (p *Printer) List(tasks []todo.Task, mode todo.SortMode, summary bool) error {
	var b strings.Builder
	b.WriteString(p.Header(len(tasks), mode))
	b.WriteByte('\n')
	for _, t := range tasks {
		b.WriteString(p.Task(t))
		b.WriteByte('\n')
	}
	if summary && len(tasks) > 0 {
		b.WriteString(p.Summary(todo.Summarize(tasks)))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Error renders a parse failure of the file at path. Syntax errors show
// the offending line with a caret under the failing column.
func (p *Printer) Error(path string, err error) string {
	return ErrorText(p.styles, path, err)
}

// ErrorText renders err with styles s. See Printer.Error.
func ErrorText(s Styles, path string, err error) string {
	var parseErr *todo.ParseError
	if !errors.As(err, &parseErr) {
		return s.Error.Render(path+":") + " " + err.Error()
	}

	switch parseErr.Kind {
	case todo.KindSyntax:
		se := parseErr.Syntax
		loc := fmt.Sprintf("%s:%d:%d:", path, se.Line, se.Column)
		pointer := strings.SplitN(se.Pointer(), "\n", 2)
		return fmt.Sprintf("%s syntax error\n%s\n%s\n%s",
			s.Error.Render(loc),
			"  "+pointer[0],
			"  "+s.Error.Render(pointer[1]),
			s.Help.Render("  expected "+strings.Join(se.Expected, ", ")),
		)
	case todo.KindMissingStatus:
		return s.Error.Render(fmt.Sprintf("%s:%d:", path, parseErr.Line)) + " " + todo.ErrMissingStatus.Error()
	}
	return s.Error.Render(path+":") + " " + parseErr.Error()
}
