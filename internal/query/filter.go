package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// Status selects tasks by completion.
type Status int

const (
	StatusAll Status = iota
	StatusComplete
	StatusIncomplete
)

// ParseStatus parses all, complete or incomplete (also done and pending).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "complete", "completed", "done":
		return StatusComplete, nil
	case "incomplete", "pending", "open":
		return StatusIncomplete, nil
	}
	return StatusAll, fmt.Errorf("unknown status %q: use all, complete or incomplete", s)
}

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusIncomplete:
		return "incomplete"
	}
	return "all"
}

// DueBucket selects tasks by due date relative to today.
type DueBucket int

const (
	DueAny DueBucket = iota
	DueOverdue
	DueToday
	DueWithin
	DueNone
)

// ParseDueBucket parses any, overdue, today, week (within 7 days), none or
// within:N.
func ParseDueBucket(s string) (DueFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "any":
		return DueFilter{Bucket: DueAny}, nil
	case "overdue":
		return DueFilter{Bucket: DueOverdue}, nil
	case "today":
		return DueFilter{Bucket: DueToday}, nil
	case "week":
		return DueFilter{Bucket: DueWithin, Days: 7}, nil
	case "none":
		return DueFilter{Bucket: DueNone}, nil
	}
	if rest, ok := strings.CutPrefix(v, "within:"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 {
			return DueFilter{Bucket: DueWithin, Days: n}, nil
		}
	}
	return DueFilter{}, fmt.Errorf("unknown due filter %q: use any, overdue, today, week, none or within:N", s)
}

// DueFilter is the due-date clause. IncludeUndated keeps tasks without a due
// date when Bucket is Overdue, Today or Within.
type DueFilter struct {
	Bucket         DueBucket
	Days           int
	IncludeUndated bool
}

// Filter is a conjunction of optional clauses. Zero values match everything.
type Filter struct {
	Status   Status
	Priority tasks.Priority // empty means any
	Tags     []string       // any-of; empty means any
	Due      DueFilter
	Today    tasks.Date // reference day for Due
}

// Match reports whether t satisfies every clause of f.
func (f Filter) Match(t *tasks.Task) bool {
	switch f.Status {
	case StatusComplete:
		if !t.Completed {
			return false
		}
	case StatusIncomplete:
		if t.Completed {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}

	if len(f.Tags) > 0 && !hasAnyTag(t, f.Tags) {
		return false
	}

	return f.matchDue(t)
}

func hasAnyTag(t *tasks.Task, tags []string) bool {
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

func (f Filter) matchDue(t *tasks.Task) bool {
	if f.Due.Bucket == DueAny {
		return true
	}
	if f.Due.Bucket == DueNone {
		return t.DueDate == nil
	}
	if t.DueDate == nil {
		return f.Due.IncludeUndated
	}

	due := *t.DueDate
	switch f.Due.Bucket {
	case DueOverdue:
		return due.Before(f.Today)
	case DueToday:
		return due == f.Today
	case DueWithin:
		return !due.Before(f.Today) && !due.After(f.Today.AddDays(f.Due.Days))
	}
	return true
}
