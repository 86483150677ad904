package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// BackupSuffix is appended to the target path to name the single backup copy.
const BackupSuffix = ".bak"

// FileMode is the permission applied to the task file and its backup.
const FileMode os.FileMode = 0o600

// AtomicWriter replaces files so readers only ever see the old or the new
// content. The previous content is kept as <path>.bak.
type AtomicWriter struct {
	fs   afero.Fs
	perm os.FileMode
}

// NewAtomicWriter returns a writer over fs using FileMode permissions.
func NewAtomicWriter(fs afero.Fs) *AtomicWriter {
	return &AtomicWriter{fs: fs, perm: FileMode}
}

// Write stores data at path. The bytes go to a temp file in the same
// directory; once that is flushed the current file (if any) is copied to
// path+BackupSuffix and the temp file is renamed over path. On any failure
// before the rename the temp file is removed and path is left untouched.
// The parent directory must already exist.
func (w *AtomicWriter) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = w.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to flush temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := w.fs.Chmod(tmpPath, w.perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := w.backup(path); err != nil {
		return err
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	committed = true
	return nil
}

// backup copies the current file to path+BackupSuffix, replacing any older
// backup. A missing file means there is nothing to back up.
func (w *AtomicWriter) backup(path string) error {
	current, err := afero.ReadFile(w.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read current file for backup: %w", err)
	}
	if err := afero.WriteFile(w.fs, path+BackupSuffix, current, w.perm); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	// WriteFile only applies perm on create.
	if err := w.fs.Chmod(path+BackupSuffix, w.perm); err != nil {
		return fmt.Errorf("failed to set backup permissions: %w", err)
	}
	return nil
}
