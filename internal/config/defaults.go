package config

import (
	"github.com/spf13/afero"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Storage: StorageConfig{
			Path: DefaultTaskPath(),
		},
		List: ListConfig{
			Sort:   "created",
			Status: "all",
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
		},
		Log: LogConfig{
			Level:  "error",
			Format: "text",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:7070",
		},
	}
}

const defaultContent = `# todo configuration
version: "1"

# Task file (defaults to tasks.json next to this file)
storage:
  # path: ~/.config/todo/tasks.json

# Defaults for "todo list"
list:
  sort: created     # created, due or priority
  status: all       # all, complete or incomplete

display:
  date_format: "2006-01-02"

# Diagnostics go to stderr
log:
  level: error      # debug, info, warn or error
  format: text      # text or json

# Local JSON API started by "todo serve"
serve:
  addr: 127.0.0.1:7070
`

// WriteDefault writes the default configuration to path
func WriteDefault(fs afero.Fs, path string) error {
	return afero.WriteFile(fs, path, []byte(defaultContent), 0o600)
}
