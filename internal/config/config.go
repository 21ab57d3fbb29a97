// Package config loads vtable settings from ~/.vtable/config.yaml, an
// optional project file and VTABLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Config file layout.
const (
	// CurrentVersion is written by `config init`.
	CurrentVersion = "1.0.0"

	// versionConstraint accepts every config schema this build can read.
	versionConstraint = "^1"

	// HomeEnv overrides the config directory.
	HomeEnv = "VTABLE_HOME"

	dirName      = ".vtable"
	fileName     = "config.yaml"
	logName      = "vtable.log"
	dirPerm      = 0o750
	filePerm     = 0o600
	defaultTheme = "dark"
)

// Environment overrides.
const (
	EnvLogLevel  = "VTABLE_LOG_LEVEL"
	EnvRowHeight = "VTABLE_ROW_HEIGHT"
	EnvOverscan  = "VTABLE_OVERSCAN"
	EnvTheme     = "VTABLE_THEME"
)

// Config errors.
var (
	ErrInvalidConfig      = errors.New("invalid config")
	ErrIncompatibleConfig = errors.New("incompatible config version")
)

// Config is the full vtable configuration.
type Config struct {
	Version string        `yaml:"version"`
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`

	// path is the file the config was loaded from, if any.
	path string
}

// TableConfig holds table presentation defaults.
type TableConfig struct {
	// RowHeight is the fixed row height in terminal lines.
	RowHeight int `yaml:"row_height"`

	// Overscan is the number of extra rows rendered past each window edge.
	Overscan int `yaml:"overscan"`

	// ScrollbarSize is the thickness of both scrollbars in cells.
	ScrollbarSize int `yaml:"scrollbar_size"`

	// Height fixes the frame height when the table is printed instead of
	// shown interactively. 0 uses the terminal height.
	Height int `yaml:"height"`

	Theme  string `yaml:"theme"`
	RowKey string `yaml:"row_key,omitempty"`
}

// LoggingConfig is the logging section.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Dir returns the config directory: $VTABLE_HOME or ~/.vtable.
func Dir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, dirName), nil
}

// DefaultPath returns the path of the user config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	logFile := ""
	if dir, err := Dir(); err == nil {
		logFile = filepath.Join(dir, logName)
	}
	return &Config{
		Version: CurrentVersion,
		Table: TableConfig{
			RowHeight:     1,
			Overscan:      3,
			ScrollbarSize: 1,
			Theme:         defaultTheme,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   logFile,
		},
	}
}

// New returns the defaults overlaid with the user config file, when present,
// and the environment.
func New() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, path, err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv applies VTABLE_* overrides.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Table.Theme = v
	}
	for env, dst := range map[string]*int{
		EnvRowHeight: &c.Table.RowHeight,
		EnvOverscan:  &c.Table.Overscan,
	} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, env, v)
		}
		*dst = n
	}
	return c.Validate()
}

// Validate checks the version constraint and value ranges.
func (c *Config) Validate() error {
	if err := CheckVersion(c.Version); err != nil {
		return err
	}
	switch {
	case c.Table.RowHeight < 1:
		return fmt.Errorf("%w: table.row_height must be at least 1, got %d", ErrInvalidConfig, c.Table.RowHeight)
	case c.Table.Overscan < 0:
		return fmt.Errorf("%w: table.overscan must not be negative, got %d", ErrInvalidConfig, c.Table.Overscan)
	case c.Table.ScrollbarSize < 1:
		return fmt.Errorf("%w: table.scrollbar_size must be at least 1, got %d",
			ErrInvalidConfig, c.Table.ScrollbarSize)
	case c.Table.Height < 0:
		return fmt.Errorf("%w: table.height must not be negative, got %d", ErrInvalidConfig, c.Table.Height)
	}
	return nil
}

// CheckVersion reports whether a config schema version can be read. An empty
// version is treated as current.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrIncompatibleConfig, version)
	}
	constraint, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleConfig, version, versionConstraint)
	}
	return nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// YAML renders the config.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
