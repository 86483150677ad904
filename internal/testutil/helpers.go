// Package testutil provides reusable test utilities for todo integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnv provides access to isolated test directories
type TestEnv struct {
	Home       string // Mocked HOME directory
	ConfigHome string // XDG_CONFIG_HOME
	ProjectDir string // Working directory during the test
	GlobalDir  string // <config dir>/todo
	TaskFile   string // Default task file location
	t          *testing.T
}

// SetupTestEnv creates an isolated test environment with mocked HOME and
// XDG_CONFIG_HOME, clears TODO_* overrides and changes into a fresh project
// directory. Tests using it must not run in parallel.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpHome := t.TempDir()
	tmpProject := t.TempDir()
	configHome := filepath.Join(tmpHome, ".config")

	t.Setenv("HOME", tmpHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	for _, key := range []string{
		"TODO_STORAGE_PATH", "TODO_LIST_SORT", "TODO_LIST_STATUS",
		"TODO_DISPLAY_DATE_FORMAT", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_SERVE_ADDR",
	} {
		t.Setenv(key, "")
	}

	globalDir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("Failed to resolve config dir: %v", err)
	}
	globalDir = filepath.Join(globalDir, "todo")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpProject); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return &TestEnv{
		Home:       tmpHome,
		ConfigHome: configHome,
		ProjectDir: tmpProject,
		GlobalDir:  globalDir,
		TaskFile:   filepath.Join(globalDir, "tasks.json"),
		t:          t,
	}
}

// CreateFile creates a file with the given content in the test environment.
// Relative paths are resolved against the project directory.
func (e *TestEnv) CreateFile(path, content string) {
	e.t.Helper()

	fullPath := e.abs(path)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
}

// CreateGlobalFile creates a file relative to the global todo directory.
func (e *TestEnv) CreateGlobalFile(relPath, content string) {
	e.t.Helper()
	e.CreateFile(filepath.Join(e.GlobalDir, relPath), content)
}

// ReadFile reads a file from the test environment.
func (e *TestEnv) ReadFile(path string) string {
	e.t.Helper()

	fullPath := e.abs(path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		e.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(data)
}

// FileExists checks if a file exists in the test environment.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()

	_, err := os.Stat(e.abs(path))
	return err == nil
}

func (e *TestEnv) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.ProjectDir, path)
}
