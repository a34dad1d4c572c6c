package todo

type Status int

const (
	StatusTodo Status = iota
	StatusDoing
	StatusDone
)

// Marker returns the bracketed form used in task files.
func (s Status) Marker() string {
	switch s {
	case StatusTodo:
		return "[TODO]"
	case StatusDoing:
		return "[DOING]"
	case StatusDone:
		return "[DONE]"
	}
	return "[?]"
}

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusDoing:
		return "doing"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// Priority of a task. PriorityNone means the task has no priority marker.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityP3
	PriorityP2
	PriorityP1
)

// Marker returns the run of stars used in task files, or "" for
// PriorityNone.
func (p Priority) Marker() string {
	switch p {
	case PriorityP3:
		return "*"
	case PriorityP2:
		return "**"
	case PriorityP1:
		return "***"
	}
	return ""
}

func (p Priority) String() string {
	switch p {
	case PriorityP3:
		return "P3"
	case PriorityP2:
		return "P2"
	case PriorityP1:
		return "P1"
	}
	return ""
}

type PartKind int

const (
	PartText PartKind = iota
	PartTag
	PartDueDate
	PartStartDate
)

func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartTag:
		return "tag"
	case PartDueDate:
		return "due_date"
	case PartStartDate:
		return "start_date"
	}
	return "unknown"
}

// DescriptionPart is one fragment of a task description. Value is the
// matched source text: tags and dates keep their leading marker and text
// is left untrimmed.
type DescriptionPart struct {
	Kind  PartKind
	Value string
}

func Text(s string) DescriptionPart      { return DescriptionPart{Kind: PartText, Value: s} }
func Tag(s string) DescriptionPart       { return DescriptionPart{Kind: PartTag, Value: s} }
func DueDate(s string) DescriptionPart   { return DescriptionPart{Kind: PartDueDate, Value: s} }
func StartDate(s string) DescriptionPart { return DescriptionPart{Kind: PartStartDate, Value: s} }

type Task struct {
	Priority    Priority
	Status      Status
	Description []DescriptionPart
}

// Tags returns the tags of the task in source order, markers included.
func (t Task) Tags() []string {
	var tags []string
	for _, part := range t.Description {
		if part.Kind == PartTag {
			tags = append(tags, part.Value)
		}
	}
	return tags
}

// DueDate returns the first due date of the task without its marker.
func (t Task) DueDate() (string, bool) {
	return t.firstDate(PartDueDate)
}

// StartDate returns the first start date of the task without its marker.
func (t Task) StartDate() (string, bool) {
	return t.firstDate(PartStartDate)
}

func (t Task) firstDate(kind PartKind) (string, bool) {
	for _, part := range t.Description {
		if part.Kind == kind {
			return part.Value[1:], true
		}
	}
	return "", false
}
