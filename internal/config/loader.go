package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	appDir     = "todo"
	configName = "config.yaml"
	taskFile   = "tasks.json"
	envPrefix  = "TODO"
)

// envKeys are the settings that may be overridden by TODO_* variables,
// e.g. TODO_STORAGE_PATH or TODO_LOG_LEVEL.
var envKeys = []string{
	"storage.path",
	"list.sort",
	"list.status",
	"display.date_format",
	"log.level",
	"log.format",
	"serve.addr",
}

// Load loads and merges configuration from global and project sources
func Load() (*Config, error) {
	return LoadFrom(afero.NewOsFs(), GlobalConfigPath(), ProjectConfigPath())
}

// LoadFrom merges defaults, the global file, the project file and TODO_*
// environment variables, later sources winning. Missing files are skipped.
func LoadFrom(fs afero.Fs, globalPath, projectPath string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{globalPath, projectPath} {
		if path == "" {
			continue
		}
		if err := loadFile(fs, path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return cfg, err
	}

	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	return cfg, nil
}

func loadFile(fs afero.Fs, path string, cfg *Config) error {
	if _, err := fs.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func loadEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}

	// Unset variables are skipped, so only overridden keys reach cfg.
	return v.Unmarshal(cfg)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// GlobalDir returns the per-user todo directory following OS convention
func GlobalDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), configName)
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".todo", configName)
}

// DefaultTaskPath returns the default task file path
func DefaultTaskPath() string {
	return filepath.Join(GlobalDir(), taskFile)
}
