package query

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// MinPrefixLength is the shortest identifier prefix Resolve accepts.
const MinPrefixLength = 4

var (
	ErrTooShort  = fmt.Errorf("task id must be at least %d characters", MinPrefixLength)
	ErrNotFound  = errors.New("no task matches that id")
	ErrAmbiguous = errors.New("task id matches more than one task")
)

// Match identifies one candidate of an ambiguous lookup.
type Match struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// AmbiguousError lists every task whose id starts with Input.
type AmbiguousError struct {
	Input   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q matches %d tasks", e.Input, len(e.Matches))
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguous }

// Resolve maps a full or partial id to the index of exactly one task in list.
// Matching is a case-sensitive prefix match against the canonical id string.
func Resolve(list []tasks.Task, input string) (int, error) {
	if utf8.RuneCountInString(input) < MinPrefixLength {
		return -1, ErrTooShort
	}

	found := -1
	var matches []Match
	for i := range list {
		if !strings.HasPrefix(list[i].ID.String(), input) {
			continue
		}
		if found < 0 {
			found = i
		}
		matches = append(matches, Match{ID: list[i].ID, Title: list[i].Title})
	}

	switch len(matches) {
	case 0:
		return -1, ErrNotFound
	case 1:
		return found, nil
	default:
		return -1, &AmbiguousError{Input: input, Matches: matches}
	}
}
