package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mytec0l/ToDoListParser/internal/render"
	"github.com/mytec0l/ToDoListParser/internal/todo"
)

func (m *Model) viewList() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderTasks()...)

	if m.mode == ViewFilter {
		sections = append(sections, m.filter.View())
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	header := todo.Header(len(m.visible), m.sortMode)
	if m.tag != "" {
		header += " | tagged +" + m.tag
	}
	return m.styles.Header.Render(truncateLine(header, m.width))
}

// renderTasks returns exactly listHeight rows so the status bar stays at
// the bottom of the screen.
func (m *Model) renderTasks() []string {
	rows := m.listHeight()
	lines := make([]string, 0, rows)

	switch {
	case m.loadErr != nil:
		for _, line := range strings.Split(render.ErrorText(m.styles, m.path, m.loadErr), "\n") {
			lines = append(lines, truncateLine(line, m.width))
		}
	case !m.loaded:
		lines = append(lines, m.styles.Help.Render("Loading "+m.path+"..."))
	case len(m.visible) == 0 && m.tag != "":
		lines = append(lines, m.styles.Help.Render("No tasks tagged +"+m.tag))
	case len(m.visible) == 0:
		lines = append(lines, m.styles.Help.Render("No tasks"))
	default:
		end := min(m.top+rows, len(m.visible))
		for i := m.top; i < end; i++ {
			lines = append(lines, m.renderTask(i))
		}
	}

	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) renderTask(i int) string {
	if i == m.selected {
		line := truncateLine(todo.Format(m.visible[i]), m.width-2)
		return m.styles.Selected.Render("> " + line)
	}
	return "  " + truncateLine(render.Task(m.styles, m.visible[i], 0), m.width-2)
}

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("Task Browser Help"),
		"",
		m.styles.Text.Render("Navigation:"),
		m.styles.Help.Render("  j/↓     - Next task"),
		m.styles.Help.Render("  k/↑     - Previous task"),
		m.styles.Help.Render("  g       - First task"),
		m.styles.Help.Render("  G       - Last task"),
		"",
		m.styles.Text.Render("Sorting:"),
		m.styles.Help.Render("  0       - File order"),
		m.styles.Help.Render("  1       - By priority"),
		m.styles.Help.Render("  2       - By status"),
		m.styles.Help.Render("  3       - By start date"),
		m.styles.Help.Render("  4       - By due date"),
		"",
		m.styles.Text.Render("Actions:"),
		m.styles.Help.Render("  /       - Filter by tag"),
		m.styles.Help.Render("  esc     - Clear filter"),
		m.styles.Help.Render("  e       - Edit file in $EDITOR"),
		m.styles.Help.Render("  r       - Reload file"),
		m.styles.Help.Render("  ?       - Toggle help"),
		m.styles.Help.Render("  q       - Quit"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) renderStatusBar() string {
	s := todo.Summarize(m.visible)
	left := fmt.Sprintf(" %s | %d todo, %d doing, %d done", m.path, s.Todo, s.Doing, s.Done)

	right := "? for help | q to quit"
	if m.message != "" {
		right = m.message
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 1 {
		width = 1
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(truncateLine(left+middle+right, m.width))
}
