package tasks

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxTags              = 10
	MaxTagLength         = 20
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

var tagPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidationError reports the field and rule an input violated.
type ValidationError struct {
	Field string
	Rule  string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q %s", e.Field, e.Value, e.Rule)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Rule)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NormalizeTitle trims s and checks the length rules.
func NormalizeTitle(s string) (string, error) {
	title := strings.TrimSpace(s)
	if title == "" {
		return "", &ValidationError{Field: "title", Rule: "must not be blank"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", &ValidationError{Field: "title", Rule: fmt.Sprintf("must be at most %d characters", MaxTitleLength)}
	}
	return title, nil
}

// ValidateDescription checks the description length.
func ValidateDescription(s string) error {
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Rule: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)}
	}
	return nil
}

// ValidateTag checks a single, already lowercased tag.
func ValidateTag(tag string) error {
	n := utf8.RuneCountInString(tag)
	if n == 0 || n > MaxTagLength {
		return &ValidationError{Field: "tag", Rule: fmt.Sprintf("must be 1-%d characters", MaxTagLength), Value: tag}
	}
	if !tagPattern.MatchString(tag) {
		return &ValidationError{Field: "tag", Rule: "may only contain lowercase letters, digits, '-' and '_'", Value: tag}
	}
	return nil
}

// NormalizeTags lowercases and trims each tag, drops case-insensitive
// duplicates keeping the first occurrence, and validates the result.
// An empty result is returned as nil.
func NormalizeTags(in []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, raw := range in {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if err := ValidateTag(tag); err != nil {
			return nil, err
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) > MaxTags {
		return nil, &ValidationError{Field: "tags", Rule: fmt.Sprintf("must have at most %d entries", MaxTags)}
	}
	return out, nil
}

// ValidateDueDate rejects dates before today. It is only applied when a due
// date is set or changed.
func ValidateDueDate(due, today Date) error {
	if due.Before(today) {
		return &ValidationError{Field: "due date", Rule: "must be today or later", Value: due.String()}
	}
	return nil
}

// Validate checks the record invariants of a single task.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return &ValidationError{Field: "id", Rule: "must be set"}
	}
	if t.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Rule: "must be set"}
	}
	title, err := NormalizeTitle(t.Title)
	if err != nil {
		return err
	}
	if title != t.Title {
		return &ValidationError{Field: "title", Rule: "must not have leading or trailing whitespace"}
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if !t.Priority.Valid() {
		return &ValidationError{Field: "priority", Rule: "must be one of low, medium, high", Value: string(t.Priority)}
	}
	if t.Completed != (t.CompletedAt != nil) {
		return &ValidationError{Field: "completedAt", Rule: "must be present exactly when the task is complete"}
	}
	if t.CompletedAt != nil && t.CompletedAt.Before(t.CreatedAt) {
		return &ValidationError{Field: "completedAt", Rule: "must not be earlier than createdAt"}
	}
	if len(t.Tags) > MaxTags {
		return &ValidationError{Field: "tags", Rule: fmt.Sprintf("must have at most %d entries", MaxTags)}
	}
	seen := make(map[string]bool, len(t.Tags))
	for _, tag := range t.Tags {
		if err := ValidateTag(tag); err != nil {
			return err
		}
		if seen[tag] {
			return &ValidationError{Field: "tags", Rule: "must not contain duplicates", Value: tag}
		}
		seen[tag] = true
	}
	return nil
}

// ValidateCollection checks every record and that ids are unique.
func ValidateCollection(list []Task) error {
	ids := make(map[uuid.UUID]bool, len(list))
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		if ids[list[i].ID] {
			return fmt.Errorf("task %d: %w", i, &ValidationError{Field: "id", Rule: "must be unique", Value: list[i].ID.String()})
		}
		ids[list[i].ID] = true
	}
	return nil
}
