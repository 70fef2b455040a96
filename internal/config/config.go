package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	// DefaultBackLimit bounds the back navigation stack.
	DefaultBackLimit = 25

	// DefaultChangeLimit bounds the change navigation list.
	DefaultChangeLimit = 25

	// DefaultRecentFilesLimit bounds the recently-changed-files list.
	DefaultRecentFilesLimit = 50

	// DefaultStateFile is where the recently-changed-files state is
	// persisted, relative to the working directory.
	DefaultStateFile = ".docnav/recent.yaml"
)

// Config is the engine configuration.
type Config struct {
	// History configures the navigation stacks.
	History HistoryConfig `yaml:"history"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`

	// Merge configures the place merge rule.
	Merge MergeConfig `yaml:"merge"`

	// StateFile is the path the recently-changed-files list is
	// persisted to.
	StateFile string `yaml:"state_file"`
}

// HistoryConfig configures the navigation stacks.
type HistoryConfig struct {
	// BackLimit bounds the back stack.
	BackLimit int `yaml:"back_limit"`

	// ChangeLimit bounds the change list.
	ChangeLimit int `yaml:"change_limit"`

	// RecentFilesLimit bounds the recently-changed-files list.
	RecentFilesLimit int `yaml:"recent_files_limit"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum level to log: debug, info, warn, error.
	Level string `yaml:"level"`
}

// MergeConfig configures the place merge rule.
type MergeConfig struct {
	// Script is an optional Lua script path defining can_merge(a, b) to
	// extend the built-in merge rule.
	Script string `yaml:"script"`

	// Proximity is the line distance within which two caret positions
	// merge into one history entry.
	Proximity int `yaml:"proximity"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			BackLimit:        DefaultBackLimit,
			ChangeLimit:      DefaultChangeLimit,
			RecentFilesLimit: DefaultRecentFilesLimit,
		},
		Logging:   LoggingConfig{Level: "info"},
		StateFile: DefaultStateFile,
	}
}

// Load reads the yaml config at path, layered over defaults. A missing
// file is not an error; the defaults are returned. The DOCNAV_LOG_LEVEL
// environment variable overrides the configured log level.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if lvl := os.Getenv("DOCNAV_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// normalize fills unset values with defaults.
func (c *Config) normalize() {
	if c.History.BackLimit == 0 {
		c.History.BackLimit = DefaultBackLimit
	}
	if c.History.ChangeLimit == 0 {
		c.History.ChangeLimit = DefaultChangeLimit
	}
	if c.History.RecentFilesLimit == 0 {
		c.History.RecentFilesLimit = DefaultRecentFilesLimit
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.StateFile == "" {
		c.StateFile = DefaultStateFile
	}
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	if c.History.BackLimit < 0 {
		return fmt.Errorf("config: history.back_limit must not be negative, got %d", c.History.BackLimit)
	}
	if c.History.ChangeLimit < 0 {
		return fmt.Errorf("config: history.change_limit must not be negative, got %d", c.History.ChangeLimit)
	}
	if c.History.RecentFilesLimit < 0 {
		return fmt.Errorf("config: history.recent_files_limit must not be negative, got %d", c.History.RecentFilesLimit)
	}
	if c.Merge.Proximity < 0 {
		return fmt.Errorf("config: merge.proximity must not be negative, got %d", c.Merge.Proximity)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	return nil
}
