package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyComplete is returned when completing a task that is already complete.
var ErrAlreadyComplete = errors.New("task is already complete")

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when none is given.
const DefaultPriority = PriorityMedium

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Rule: "must be one of low, medium, high", Value: s}
	}
	return p, nil
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities by importance; higher is more important.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is a single to-do record.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	DueDate     *Date
	Completed   bool
	CompletedAt *time.Time
	Priority    Priority
	Tags        []string
}

// Complete marks the task complete at now. Completion is one-way: a task that
// is already complete is left untouched and ErrAlreadyComplete is returned.
func (t *Task) Complete(now time.Time) error {
	if t.Completed {
		return ErrAlreadyComplete
	}
	now = now.UTC()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.Completed = true
	t.CompletedAt = &now
	return nil
}

// Elapsed returns how long the task took from creation to completion, or zero
// if it is not complete.
func (t *Task) Elapsed() time.Duration {
	if !t.Completed || t.CompletedAt == nil {
		return 0
	}
	return t.CompletedAt.Sub(t.CreatedAt)
}

// HasTag reports whether the task carries tag (case-insensitive).
func (t *Task) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// ShortID returns the first 8 characters of the canonical id.
func (t *Task) ShortID() string {
	return t.ID.String()[:8]
}

// Clone returns a deep copy so callers cannot alias the stored record.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return c
}

func (t Task) String() string {
	return fmt.Sprintf("%s %q", t.ShortID(), t.Title)
}
