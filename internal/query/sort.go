package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// SortKey orders query results. Ties break by created time, then id.
type SortKey int

const (
	SortCreatedAt SortKey = iota
	SortDueDate
	SortPriority
)

// ParseSortKey parses created, due or priority.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "created", "created_at", "createdat":
		return SortCreatedAt, nil
	case "due", "due_date", "duedate":
		return SortDueDate, nil
	case "priority":
		return SortPriority, nil
	}
	return SortCreatedAt, fmt.Errorf("unknown sort key %q: use created, due or priority", s)
}

func (k SortKey) String() string {
	switch k {
	case SortDueDate:
		return "due"
	case SortPriority:
		return "priority"
	}
	return "created"
}

// Apply returns pointers to the tasks of list that match f, ordered by key.
// list is not modified.
func Apply(list []tasks.Task, f Filter, key SortKey) []*tasks.Task {
	out := make([]*tasks.Task, 0, len(list))
	for i := range list {
		if f.Match(&list[i]) {
			out = append(out, &list[i])
		}
	}
	slices.SortFunc(out, comparator(key))
	return out
}

func comparator(key SortKey) func(a, b *tasks.Task) int {
	return func(a, b *tasks.Task) int {
		var c int
		switch key {
		case SortDueDate:
			c = compareDue(a.DueDate, b.DueDate)
		case SortPriority:
			// Most important first.
			c = cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
		}
		if c != 0 {
			return c
		}
		if c = a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	}
}

// compareDue puts dated tasks first, earliest first.
func compareDue(a, b *tasks.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
