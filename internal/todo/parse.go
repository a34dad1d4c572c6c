// Package todo turns task files into Task values and provides the sort,
// format and export helpers built on top of them.
//
// A task file holds one task per line:
//
//	*** [DOING] Write release notes +docs >2025-11-01 @2025-11-15
//
// An optional run of one to three stars sets the priority (*** is the
// highest), a bracketed marker sets the status ([TODO], [DOING] or
// [DONE]) and the rest of the line is the description: free text mixed
// with +tags, @due dates and >start dates. Blank lines are ignored.
package todo

import (
	"errors"
	"fmt"

	"github.com/mytec0l/ToDoListParser/internal/grammar"
)

// ParseFile parses the content of a task file. Tasks are returned in file
// order. The error, if any, is a *ParseError; no tasks are returned with
// it.
//
// Zero-byte content is ErrEmptyFile. Content made only of blank lines is
// a valid file with no tasks.
func ParseFile(content string) ([]Task, error) {
	root, err := engine.Parse(RuleFile, content)
	if err != nil {
		var syntaxErr *grammar.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{Kind: KindSyntax, Syntax: syntaxErr, Line: syntaxErr.Line}
		}
		panic(fmt.Sprintf("todo: grammar has no %q rule: %v", RuleFile, err))
	}
	return buildFile(root)
}

func buildFile(root *grammar.Node) ([]Task, error) {
	if root == nil || root.Len() == 0 {
		return nil, &ParseError{Kind: KindEmptyFile}
	}

	tasks := make([]Task, 0, len(root.Children))
	for _, node := range root.Children {
		switch node.Rule {
		case RuleTask:
			task, err := buildTask(node)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		case RuleEmptyLine, RuleEOI:
		default:
			panic(fmt.Sprintf("todo: unexpected rule %q in file", node.Rule))
		}
	}

	return tasks, nil
}

func buildTask(node *grammar.Node) (Task, error) {
	priority := PriorityNone
	var status *Status
	description := make([]DescriptionPart, 0)

	for _, child := range node.Children {
		switch child.Rule {
		case RulePriority:
			priority = buildPriority(child)
		case RuleStatus:
			s := buildStatus(child)
			status = &s
		case RuleDescription:
			description = buildDescription(child)
		default:
			panic(fmt.Sprintf("todo: unexpected rule %q in task", child.Rule))
		}
	}

	if status == nil {
		line, _ := node.Position()
		return Task{}, &ParseError{Kind: KindMissingStatus, Line: line}
	}

	return Task{
		Priority:    priority,
		Status:      *status,
		Description: description,
	}, nil
}

func buildPriority(node *grammar.Node) Priority {
	switch node.Len() {
	case 1:
		return PriorityP3
	case 2:
		return PriorityP2
	case 3:
		return PriorityP1
	}
	panic(fmt.Sprintf("todo: priority %q is not 1 to 3 stars", node.Text()))
}

func buildStatus(node *grammar.Node) Status {
	if len(node.Children) != 1 {
		panic(fmt.Sprintf("todo: status %q has %d markers", node.Text(), len(node.Children)))
	}
	switch marker := node.Children[0]; marker.Rule {
	case RuleComplete:
		return StatusDone
	case RuleIncomplete:
		return StatusTodo
	case RuleInProgress:
		return StatusDoing
	default:
		panic(fmt.Sprintf("todo: unexpected rule %q in status", marker.Rule))
	}
}

func buildDescription(node *grammar.Node) []DescriptionPart {
	parts := make([]DescriptionPart, 0, len(node.Children))
	for _, child := range node.Children {
		if child.Rule != RuleDescriptionPart || len(child.Children) != 1 {
			panic(fmt.Sprintf("todo: malformed description part %q", child.Text()))
		}

		inner := child.Children[0]
		switch inner.Rule {
		case RuleText:
			parts = append(parts, Text(inner.Text()))
		case RuleTag:
			parts = append(parts, Tag(inner.Text()))
		case RuleDueDate:
			parts = append(parts, DueDate(inner.Text()))
		case RuleStartDate:
			parts = append(parts, StartDate(inner.Text()))
		default:
			panic(fmt.Sprintf("todo: unexpected rule %q in description", inner.Rule))
		}
	}
	return parts
}
