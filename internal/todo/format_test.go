package todo

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "no priority",
			task: Task{Status: StatusTodo, Description: []DescriptionPart{Text("Buy milk")}},
			want: "[TODO] Buy milk",
		},
		{
			name: "priority and mixed parts",
			task: Task{
				Priority:    PriorityP2,
				Status:      StatusDoing,
				Description: []DescriptionPart{Text("Ship "), DueDate("@2025-11-15"), Tag("+release")},
			},
			want: "(**) [DOING] Ship @2025-11-15 +release",
		},
		{
			name: "empty description",
			task: Task{Priority: PriorityP1, Status: StatusDone},
			want: "(***) [DONE]",
		},
		{
			name: "blank text part is dropped",
			task: Task{Status: StatusTodo, Description: []DescriptionPart{Text("  "), StartDate(">2025-01-01")}},
			want: "[TODO] >2025-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.task); got != tt.want {
				t.Errorf("Format mismatch: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatReparses(t *testing.T) {
	input := "* [DOING] Write notes +docs >2025-11-01 @2025-11-15"
	tasks := mustParse(t, input)
	if got := Format(tasks[0]); got != "(*) [DOING] Write notes +docs >2025-11-01 @2025-11-15" {
		t.Errorf("Format mismatch: %q", got)
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		count int
		mode  SortMode
		want  string
	}{
		{count: 0, mode: SortNone, want: "There are 0 tasks | sorting by just list"},
		{count: 1, mode: SortDue, want: "There are 1 task | sorting by due date"},
		{count: 7, mode: SortPriority, want: "There are 7 tasks | sorting by priority"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Header(tt.count, tt.mode); got != tt.want {
				t.Errorf("Header mismatch: got %q, want %q", got, tt.want)
			}
		})
	}
}
