package service

import (
	"errors"

	"github.com/jacobusmeintjes/todo/internal/query"
	"github.com/jacobusmeintjes/todo/internal/storage"
	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// ErrAlreadyComplete is returned by Complete for a task that is already complete.
var ErrAlreadyComplete = tasks.ErrAlreadyComplete

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindResolve
	KindState
	KindFormat
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindResolve:
		return "resolve"
	case KindState:
		return "state"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	}
	return "unknown"
}

// KindOf classifies an error returned by the Service. Anything not otherwise
// recognized comes from the filesystem and is reported as KindIO.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, tasks.ErrValidation):
		return KindValidation
	case errors.Is(err, query.ErrTooShort), errors.Is(err, query.ErrNotFound), errors.Is(err, query.ErrAmbiguous):
		return KindResolve
	case errors.Is(err, ErrAlreadyComplete):
		return KindState
	case errors.Is(err, storage.ErrUnrecoverable), errors.Is(err, tasks.ErrFormat):
		return KindFormat
	}
	return KindIO
}
