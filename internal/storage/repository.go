package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// ErrUnrecoverable is returned by Load when neither the task file nor its
// backup can be decoded.
var ErrUnrecoverable = errors.New("task file and backup are both unreadable")

// State tracks what the repository has done with the task file.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateRecovered
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateRecovered:
		return "recovered"
	}
	return "uninitialized"
}

// LoadResult is the collection read by Load. When Recovered is set the
// primary file failed to decode (Cause) and Tasks came from the backup.
type LoadResult struct {
	Tasks     []tasks.Task
	Recovered bool
	Cause     error
}

// Repository is the only component that touches the task file. Every Load
// returns a freshly decoded collection owned by the caller.
type Repository struct {
	fs     afero.Fs
	path   string
	writer *AtomicWriter
	logger *slog.Logger

	state State
}

// Open prepares a repository for the task file at path, creating its parent
// directory (owner-only) if needed. It does not read the file.
func Open(fs afero.Fs, path string, logger *slog.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("task file path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create task directory: %w", err)
	}
	return &Repository{
		fs:     fs,
		path:   path,
		writer: NewAtomicWriter(fs),
		logger: logger.With("path", path),
	}, nil
}

// Path returns the task file path.
func (r *Repository) Path() string { return r.path }

// BackupPath returns the backup file path.
func (r *Repository) BackupPath() string { return r.path + BackupSuffix }

// State reports the outcome of the most recent Load or Save.
func (r *Repository) State() State { return r.state }

// Load reads the task file. A missing file is an empty collection. If the
// file fails to decode the backup is tried; a readable backup becomes the
// collection and the result is flagged Recovered. The corrupt file is left
// in place until the next Save.
func (r *Repository) Load() (LoadResult, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug("task file not found, starting empty")
			r.state = StateLoaded
			return LoadResult{Tasks: []tasks.Task{}}, nil
		}
		return LoadResult{}, fmt.Errorf("failed to read task file: %w", err)
	}

	list, decodeErr := tasks.Decode(data)
	if decodeErr == nil {
		r.state = StateLoaded
		return LoadResult{Tasks: list}, nil
	}
	if !errors.Is(decodeErr, tasks.ErrFormat) {
		return LoadResult{}, decodeErr
	}

	r.logger.Warn("task file is corrupt, trying backup", "error", decodeErr)
	backup, err := afero.ReadFile(r.fs, r.BackupPath())
	if err != nil {
		if os.IsNotExist(err) {
			return LoadResult{}, fmt.Errorf("%w: %v (no backup)", ErrUnrecoverable, decodeErr)
		}
		return LoadResult{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	list, err = tasks.Decode(backup)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: %v; backup: %v", ErrUnrecoverable, decodeErr, err)
	}

	r.logger.Warn("recovered tasks from backup", "count", len(list))
	r.state = StateRecovered
	return LoadResult{Tasks: list, Recovered: true, Cause: decodeErr}, nil
}

// Save validates the collection and writes it atomically, rotating the
// previous file into the backup.
func (r *Repository) Save(list []tasks.Task) error {
	if err := tasks.ValidateCollection(list); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}
	data, err := tasks.Encode(list)
	if err != nil {
		return err
	}
	if err := r.writer.Write(r.path, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	r.logger.Debug("saved tasks", "count", len(list))
	r.state = StateLoaded
	return nil
}
