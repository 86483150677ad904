package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"

	"github.com/jacobusmeintjes/todo/internal/query"
	"github.com/jacobusmeintjes/todo/internal/service"
	"github.com/jacobusmeintjes/todo/internal/storage"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// userMessage turns an error into a short, actionable message. OS error text
// is never passed through.
func userMessage(err error) string {
	var (
		verr  *tasks.ValidationError
		amb   *query.AmbiguousError
		perr  *fs.PathError
		lerr  *os.LinkError
		errno syscall.Errno
	)

	switch {
	case errors.As(err, &verr):
		return "invalid input: " + verr.Error()
	case errors.Is(err, query.ErrTooShort):
		return fmt.Sprintf("task id must be at least %d characters; copy more of the id from 'todo list'", query.MinPrefixLength)
	case errors.Is(err, query.ErrNotFound):
		return "no task matches that id; run 'todo list' to see ids"
	case errors.As(err, &amb):
		return ambiguousMessage(amb)
	case errors.Is(err, service.ErrAlreadyComplete):
		return err.Error()
	case errors.Is(err, storage.ErrUnrecoverable), errors.Is(err, tasks.ErrFormat):
		return "the task file and its backup are both damaged; repair or move them aside to start fresh"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied while accessing the task file; check its owner and mode (expected 0600)"
	case errors.Is(err, syscall.ENOSPC):
		return "not enough disk space to save tasks"
	case errors.As(err, &perr):
		return fmt.Sprintf("could not access %s; run with --verbose for details", perr.Path)
	case errors.As(err, &lerr):
		return fmt.Sprintf("could not replace %s; run with --verbose for details", lerr.New)
	case errors.As(err, &errno):
		return "the task file could not be read or written; run with --verbose for details"
	}
	return err.Error()
}

func ambiguousMessage(amb *query.AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q matches %d tasks; use a longer prefix:", amb.Input, len(amb.Matches))
	for _, m := range amb.Matches {
		fmt.Fprintf(&b, "\n  %s  %s", m.ID, m.Title)
	}
	return b.String()
}
