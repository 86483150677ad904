package cli

import (
	"strconv"
	"strings"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// parseDue accepts YYYY-MM-DD, today, tomorrow or +Nd relative to today.
// "none" yields nil.
func parseDue(s string, today tasks.Date) (*tasks.Date, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "":
		return nil, nil
	case "today":
		return &today, nil
	case "tomorrow":
		d := today.AddDays(1)
		return &d, nil
	}

	if rest, ok := strings.CutPrefix(v, "+"); ok {
		if n, err := strconv.Atoi(strings.TrimSuffix(rest, "d")); err == nil && n >= 0 {
			d := today.AddDays(n)
			return &d, nil
		}
	}

	d, err := tasks.ParseDate(v)
	if err != nil {
		return nil, &tasks.ValidationError{Field: "dueDate", Rule: "must be YYYY-MM-DD, today, tomorrow or +Nd", Value: s}
	}
	return &d, nil
}
