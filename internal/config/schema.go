package config

// Config represents the full todo configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Task file location
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Defaults for `todo list`
	List ListConfig `yaml:"list" mapstructure:"list"`

	// Output formatting
	Display DisplayConfig `yaml:"display" mapstructure:"display"`

	// Diagnostic logging
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Local JSON API (`todo serve`)
	Serve ServeConfig `yaml:"serve" mapstructure:"serve"`
}

// StorageConfig locates the task file
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ListConfig holds list defaults
type ListConfig struct {
	Sort   string `yaml:"sort" mapstructure:"sort"`
	Status string `yaml:"status" mapstructure:"status"`
}

// DisplayConfig configures rendering
type DisplayConfig struct {
	DateFormat string `yaml:"date_format" mapstructure:"date_format"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServeConfig configures the local API server
type ServeConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}
