package config

import (
	"fmt"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceFile     ConfigSource = "config file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were loaded, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTaskFile  = "tasks.txt"
	DefaultFsync     = true
	DefaultColor     = ColorAuto
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a color mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorAuto, "":
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", s)
	}
}

// Config holds the full configuration for todolist.
type Config struct {
	// Storage
	TaskFile string `toml:"task_file"`
	Fsync    bool   `toml:"fsync"`

	// Output
	Color ColorMode `toml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogFile       string `toml:"log_file"`

	// Explicit config file (-config or TODOLIST_CONFIG)
	ConfigFile string `toml:"-"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"fsync",
		"color",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_file",
	}
}

// Fields returns the configurable field names paired with their current
// values, in a stable order.
func (c *Config) Fields() [][2]string {
	return [][2]string{
		{"task_file", c.TaskFile},
		{"fsync", fmt.Sprint(c.Fsync)},
		{"color", string(c.Color)},
		{"log_level", c.LogLevel},
		{"log_format", c.LogFormat},
		{"log_timestamps", fmt.Sprint(c.LogTimestamps)},
		{"log_file", c.LogFile},
	}
}
