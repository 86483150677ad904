package service

import (
	"time"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// Optional distinguishes "not supplied" from "supplied as the zero value".
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsSet reports whether a value was supplied.
func (o Optional[T]) IsSet() bool { return o.present }

// AddRequest holds the fields of a new task. Empty Priority means the default.
type AddRequest struct {
	Title       string
	Description string
	DueDate     *tasks.Date
	Priority    tasks.Priority
	Tags        []string
}

// Changes is a partial update. Only supplied fields are applied.
// A supplied nil DueDate clears the due date and a supplied empty
// Description clears the description. ID, CreatedAt and CompletedAt exist so
// callers decoding free-form input can pass them through; supplying any of
// them is rejected.
type Changes struct {
	Title       Optional[string]
	Description Optional[string]
	DueDate     Optional[*tasks.Date]
	Priority    Optional[tasks.Priority]
	AddTags     []string
	RemoveTags  []string

	ID          Optional[string]
	CreatedAt   Optional[time.Time]
	CompletedAt Optional[time.Time]
}

// Empty reports whether no change was supplied.
func (c Changes) Empty() bool {
	return !c.Title.IsSet() && !c.Description.IsSet() && !c.DueDate.IsSet() &&
		!c.Priority.IsSet() && len(c.AddTags) == 0 && len(c.RemoveTags) == 0 &&
		!c.ID.IsSet() && !c.CreatedAt.IsSet() && !c.CompletedAt.IsSet()
}

func (c Changes) checkImmutable() error {
	switch {
	case c.ID.IsSet():
		return &tasks.ValidationError{Field: "id", Rule: "cannot be changed"}
	case c.CreatedAt.IsSet():
		return &tasks.ValidationError{Field: "createdAt", Rule: "cannot be changed"}
	case c.CompletedAt.IsSet():
		return &tasks.ValidationError{Field: "completedAt", Rule: "is set by completing the task"}
	}
	return nil
}
