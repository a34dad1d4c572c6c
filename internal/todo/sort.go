package todo

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortMode int

const (
	SortNone SortMode = iota
	SortPriority
	SortStatus
	SortStart
	SortDue
)

// SortModes lists every mode in menu order.
var SortModes = []SortMode{SortNone, SortPriority, SortStatus, SortStart, SortDue}

func (m SortMode) String() string {
	switch m {
	case SortPriority:
		return "priority"
	case SortStatus:
		return "status"
	case SortStart:
		return "start"
	case SortDue:
		return "due"
	}
	return "none"
}

// Label is the human wording used in listing headers.
func (m SortMode) Label() string {
	switch m {
	case SortPriority:
		return "priority"
	case SortStatus:
		return "status"
	case SortStart:
		return "start date"
	case SortDue:
		return "due date"
	}
	return "just list"
}

// ParseSortMode accepts the names returned by SortMode.String.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "file":
		return SortNone, nil
	case "priority":
		return SortPriority, nil
	case "status":
		return SortStatus, nil
	case "start", "start_date":
		return SortStart, nil
	case "due", "due_date":
		return SortDue, nil
	}
	return SortNone, fmt.Errorf("unknown sort mode %q", s)
}

// missingDate sorts after every real YYYY-MM-DD date.
const missingDate = "9999-99-99"

// SortTasks sorts tasks in place. The sort is stable, so tasks with equal
// keys keep their file order.
func SortTasks(tasks []Task, mode SortMode) {
	var key func(Task) string
	switch mode {
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return cmp.Compare(priorityRank(a.Priority), priorityRank(b.Priority))
		})
		return
	case SortStatus:
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return cmp.Compare(a.Status, b.Status)
		})
		return
	case SortStart:
		key = startKey
	case SortDue:
		key = dueKey
	default:
		return
	}

	slices.SortStableFunc(tasks, func(a, b Task) int {
		return strings.Compare(key(a), key(b))
	})
}

// priorityRank orders P1 first and tasks without priority last.
func priorityRank(p Priority) int {
	switch p {
	case PriorityP1:
		return 0
	case PriorityP2:
		return 1
	case PriorityP3:
		return 2
	}
	return 3
}

func startKey(t Task) string {
	if d, ok := t.StartDate(); ok {
		return d
	}
	return missingDate
}

func dueKey(t Task) string {
	if d, ok := t.DueDate(); ok {
		return d
	}
	return missingDate
}

// FilterByTag returns the tasks carrying tag. The leading "+" is
// optional and the comparison ignores case.
func FilterByTag(tasks []Task, tag string) []Task {
	want := strings.TrimPrefix(tag, TagMarker)
	var filtered []Task
	for _, task := range tasks {
		for _, t := range task.Tags() {
			if strings.EqualFold(strings.TrimPrefix(t, TagMarker), want) {
				filtered = append(filtered, task)
				break
			}
		}
	}
	return filtered
}

// Summary counts tasks per status.
type Summary struct {
	Total int
	Todo  int
	Doing int
	Done  int
}

func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusDoing:
			s.Doing++
		case StatusDone:
			s.Done++
		}
	}
	return s
}
