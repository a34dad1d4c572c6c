package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed task-list.schema.json
var listSchemaJSON string

const listSchemaURL = "task-list.schema.json"

var (
	listSchemaOnce sync.Once
	listSchema     *jsonschema.Schema
	listSchemaErr  error
)

func compiledListSchema() (*jsonschema.Schema, error) {
	listSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(listSchemaURL, bytes.NewReader([]byte(listSchemaJSON))); err != nil {
			listSchemaErr = fmt.Errorf("load task list schema: %w", err)
			return
		}
		listSchema, listSchemaErr = compiler.Compile(listSchemaURL)
	})
	return listSchema, listSchemaErr
}

type jsonList struct {
	Count int        `json:"count"`
	Sort  string     `json:"sort"`
	Tasks []jsonTask `json:"tasks"`
}

type jsonTask struct {
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags,omitempty"`
	Due         string     `json:"due,omitempty"`
	Start       string     `json:"start,omitempty"`
	Description []jsonPart `json:"description"`
}

type jsonPart struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func toJSONList(tasks []Task, mode SortMode) jsonList {
	list := jsonList{Count: len(tasks), Sort: mode.String(), Tasks: make([]jsonTask, 0, len(tasks))}
	for _, t := range tasks {
		jt := jsonTask{
			Priority:    t.Priority.String(),
			Status:      t.Status.String(),
			Tags:        t.Tags(),
			Description: make([]jsonPart, 0, len(t.Description)),
		}
		jt.Due, _ = t.DueDate()
		jt.Start, _ = t.StartDate()
		for _, p := range t.Description {
			jt.Description = append(jt.Description, jsonPart{Kind: p.Kind.String(), Value: p.Value})
		}
		list.Tasks = append(list.Tasks, jt)
	}
	return list
}

// ValidationError reports a JSON document that does not match the task
// list schema.
type ValidationError struct {
	Path string // JSON pointer of the failing value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateJSON checks data against the task list schema.
func ValidateJSON(data []byte) error {
	schema, err := compiledListSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return &ValidationError{Path: ve.InstanceLocation, Err: ve}
		}
		return &ValidationError{Err: err}
	}
	return nil
}

// WriteJSON writes tasks as an indented JSON document after checking it
// against the task list schema.
func WriteJSON(w io.Writer, tasks []Task, mode SortMode) error {
	data, err := json.MarshalIndent(toJSONList(tasks, mode), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := ValidateJSON(data); err != nil {
		return fmt.Errorf("exported tasks do not match schema: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
