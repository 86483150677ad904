package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("invalid task document")

// FormatError reports a structurally invalid task document. Index is the
// offending record, or -1 when the document itself is malformed.
type FormatError struct {
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid task document: %v", e.Err)
	}
	return fmt.Sprintf("invalid task document: record %d: %v", e.Index, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// record is the persisted form of a Task. Field order fixes the key order
// of the encoded document.
type record struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	DueDate     *Date      `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	IsCompleted bool       `json:"isCompleted" yaml:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Tags        []string   `json:"tags" yaml:"tags"`
}

// wireRecord is used on decode so missing required fields can be told apart
// from zero values.
type wireRecord struct {
	ID          *string    `json:"id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"createdAt"`
	DueDate     *Date      `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
	Priority    *Priority  `json:"priority"`
	Tags        []string   `json:"tags"`
}

func toRecord(t Task) record {
	r := record{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.UTC(),
		DueDate:     t.DueDate,
		IsCompleted: t.Completed,
		Priority:    t.Priority,
		Tags:        t.Tags,
	}
	if t.CompletedAt != nil {
		at := t.CompletedAt.UTC()
		r.CompletedAt = &at
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}

func (w wireRecord) toTask() (Task, error) {
	if w.ID == nil {
		return Task{}, errors.New("missing field id")
	}
	id, err := uuid.Parse(*w.ID)
	if err != nil {
		return Task{}, fmt.Errorf("field id: %w", err)
	}
	if w.Title == nil {
		return Task{}, errors.New("missing field title")
	}
	if w.CreatedAt == nil {
		return Task{}, errors.New("missing field createdAt")
	}

	t := Task{
		ID:          id,
		Title:       *w.Title,
		CreatedAt:   w.CreatedAt.UTC(),
		DueDate:     w.DueDate,
		Priority:    DefaultPriority,
		CompletedAt: w.CompletedAt,
	}
	if w.Description != nil {
		t.Description = *w.Description
	}
	if w.IsCompleted != nil {
		t.Completed = *w.IsCompleted
	}
	if t.CompletedAt != nil {
		at := t.CompletedAt.UTC()
		t.CompletedAt = &at
	}
	if w.Priority != nil {
		t.Priority = *w.Priority
	}
	if len(w.Tags) > 0 {
		t.Tags = w.Tags
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// MarshalJSON encodes the task in its persisted form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(toRecord(t))
}

// MarshalYAML renders the task with the same keys as the JSON form.
func (t Task) MarshalYAML() (interface{}, error) {
	return toRecord(t), nil
}

// Encode renders the collection as a pretty-printed JSON array with 2-space
// indentation and a trailing newline. Record order is preserved.
func Encode(list []Task) ([]byte, error) {
	records := make([]record, len(list))
	for i := range list {
		records[i] = toRecord(list[i])
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses a task document. Unknown fields are ignored and missing
// optional fields take their defaults. An empty tags array decodes to nil
// tags, the same as a missing one. Any structural problem is returned as a
// *FormatError.
func Decode(data []byte) ([]Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &FormatError{Index: -1, Err: errors.New("empty document")}
	}
	if trimmed[0] != '[' {
		return nil, &FormatError{Index: -1, Err: errors.New("document must be a JSON array")}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &FormatError{Index: -1, Err: err}
	}

	list := make([]Task, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for i, msg := range raw {
		var w wireRecord
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, &FormatError{Index: i, Err: err}
		}
		t, err := w.toTask()
		if err != nil {
			return nil, &FormatError{Index: i, Err: err}
		}
		if seen[t.ID] {
			return nil, &FormatError{Index: i, Err: fmt.Errorf("duplicate id %s", t.ID)}
		}
		seen[t.ID] = true
		list = append(list, t)
	}
	return list, nil
}
