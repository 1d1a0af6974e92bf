package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPath is consulted when CONFIG_PATH is not set.
const defaultPath = "./.env"

// Load reads configuration from the file named by CONFIG_PATH (fallback
// "./.env") and the environment. See LoadFrom.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return LoadFrom(defaultPath, false)
	}
	return LoadFrom(path, true)
}

// LoadFrom reads configuration with priority ENV > file > env-default
// tags. cleanenv picks the parser by extension, so both key=value .env
// files and YAML work. A missing file is an error only when required;
// otherwise configuration comes from the environment alone.
func LoadFrom(path string, required bool) (*Config, error) {
	var cfg Config
	if err := read(path, required, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// JobConfig is the subset of Config the maintenance commands need. It
// reads the same file and variables but does not demand server-only
// settings such as PDF_TOKEN_SECRET.
type JobConfig struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	Storage   StorageConfig   `yaml:"storage"`
	Retention RetentionConfig `yaml:"retention"`
}

// LoadJob is Load for cmd/cleanup and cmd/cleanup-sessions.
func LoadJob() (*JobConfig, error) {
	path, required := os.Getenv("CONFIG_PATH"), true
	if path == "" {
		path, required = defaultPath, false
	}

	var cfg JobConfig
	if err := read(path, required, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the maintenance commands act on.
func (c *JobConfig) Validate() error {
	if c.Session.Lifetime <= 0 {
		return fmt.Errorf("session.lifetime must be > 0 (got %s)", c.Session.Lifetime)
	}
	if c.Retention.HardDeleteAfterDays < 0 {
		return fmt.Errorf("retention.hard_delete_after_days must be >= 0 (got %d)", c.Retention.HardDeleteAfterDays)
	}
	return nil
}

func read(path string, required bool, dst any) error {
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, dst); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(dst); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
	}
	return nil
}

// Usage writes the list of recognised environment variables with their
// defaults and descriptions to w.
func Usage(w io.Writer, header string) {
	var cfg Config
	cleanenv.FUsage(w, &cfg, &header)()
}
