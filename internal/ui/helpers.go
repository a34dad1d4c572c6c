package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/mytec0l/ToDoListParser/internal/todo"
)

// truncateLine cuts s to width visible cells, ending with an ellipsis
// when anything was cut. A non-positive width leaves s alone.
func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// knownTags returns the distinct tags of tasks without their markers,
// sorted, for filter suggestions.
func knownTags(tasks []todo.Task) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, t := range tasks {
		for _, tag := range t.Tags() {
			name := strings.TrimPrefix(tag, todo.TagMarker)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			tags = append(tags, name)
		}
	}
	slices.Sort(tags)
	return tags
}

func trimTag(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), todo.TagMarker)
}
