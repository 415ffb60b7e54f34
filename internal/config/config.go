package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/harrison/organizer/internal/organizer"
)

// Config represents organizer configuration options
type Config struct {
	// Workers is the maximum number of concurrent copies (0 = host default)
	Workers int `yaml:"workers" toml:"workers"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogDir is the directory where run logs are written ("" = console only)
	LogDir string `yaml:"log_dir" toml:"log_dir"`

	// Extensions is the ordered allowed-extension list
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// SeedCount is the number of placeholder files created in the source
	SeedCount int `yaml:"seed_count" toml:"seed_count"`

	// KeepSource organizes the existing source contents without cleaning or seeding it
	KeepSource bool `yaml:"keep_source" toml:"keep_source"`

	// ReportPath is where the YAML run report is written ("" = no report)
	ReportPath string `yaml:"report_path" toml:"report_path"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Workers:    0,
		LogLevel:   "info",
		LogDir:     "",
		Extensions: append([]string(nil), organizer.DefaultExtensions...),
		SeedCount:  organizer.DefaultSeedCount,
		KeepSource: false,
		ReportPath: "",
	}
}

// fileConfig mirrors Config with pointer fields so an explicit zero value
// in the file can be told apart from an absent key.
type fileConfig struct {
	Workers    *int     `yaml:"workers" toml:"workers"`
	LogLevel   *string  `yaml:"log_level" toml:"log_level"`
	LogDir     *string  `yaml:"log_dir" toml:"log_dir"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	SeedCount  *int     `yaml:"seed_count" toml:"seed_count"`
	KeepSource *bool    `yaml:"keep_source" toml:"keep_source"`
	ReportPath *string  `yaml:"report_path" toml:"report_path"`
}

// LoadConfig loads configuration from the specified file path.
// Files ending in .toml are parsed as TOML, anything else as YAML.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Values present in the file override defaults
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(*fc.LogLevel)
	}
	if fc.LogDir != nil {
		cfg.LogDir = *fc.LogDir
	}
	if fc.Extensions != nil {
		cfg.Extensions = fc.Extensions
	}
	if fc.SeedCount != nil {
		cfg.SeedCount = *fc.SeedCount
	}
	if fc.KeepSource != nil {
		cfg.KeepSource = *fc.KeepSource
	}
	if fc.ReportPath != nil {
		cfg.ReportPath = *fc.ReportPath
	}

	return cfg, nil
}

// LoadConfigFromDir loads .organizer/config.yaml from dir, falling back to
// .organizer/config.toml. Missing files yield the default configuration.
func LoadConfigFromDir(dir string) (*Config, error) {
	base := filepath.Join(dir, ".organizer")
	yamlPath := filepath.Join(base, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return LoadConfig(yamlPath)
	}
	return LoadConfig(filepath.Join(base, "config.toml"))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(workers *int, logLevel *string, logDir *string, seedCount *int, keepSource *bool, reportPath *string) {
	if workers != nil {
		c.Workers = *workers
	}
	if logLevel != nil {
		c.LogLevel = strings.ToLower(*logLevel)
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if seedCount != nil {
		c.SeedCount = *seedCount
	}
	if keepSource != nil {
		c.KeepSource = *keepSource
	}
	if reportPath != nil {
		c.ReportPath = *reportPath
	}
}

// ExtensionSet builds the allowed extension set from the configuration.
func (c *Config) ExtensionSet() *organizer.ExtensionSet {
	return organizer.NewExtensionSet(c.Extensions)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.SeedCount < 0 {
		return fmt.Errorf("seed_count must be >= 0, got %d", c.SeedCount)
	}

	if c.ExtensionSet().Len() == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if strings.ContainsAny(strings.TrimPrefix(ext, "."), `./\`) {
			return fmt.Errorf("invalid extension %q: must be a single suffix without separators", ext)
		}
	}

	return nil
}
