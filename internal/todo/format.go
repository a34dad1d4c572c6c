package todo

import (
	"fmt"
	"strings"
)

// Format renders a task on one line: the priority in parentheses when
// there is one, the status marker, then each description part in source
// order. Text parts are trimmed; the other parts are written as parsed.
func Format(t Task) string {
	fields := make([]string, 0, len(t.Description)+2)
	if t.Priority != PriorityNone {
		fields = append(fields, "("+t.Priority.Marker()+")")
	}
	fields = append(fields, t.Status.Marker())
	for _, part := range t.Description {
		if v := DisplayText(part); v != "" {
			fields = append(fields, v)
		}
	}
	return strings.Join(fields, " ")
}

// DisplayText is the display form of a description part.
func DisplayText(part DescriptionPart) string {
	if part.Kind == PartText {
		return strings.TrimSpace(part.Value)
	}
	return part.Value
}

// Header is the line printed above a listing.
func Header(count int, mode SortMode) string {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	return fmt.Sprintf("There are %d %s | sorting by %s", count, noun, mode.Label())
}
