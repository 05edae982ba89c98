package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todolist/todolist.toml or OS-specific config dir)
// 3. Project config file (todolist.toml or .todolist.toml in current directory)
// 4. Explicit config file (-config flag or TODOLIST_CONFIG)
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := cws.loadFile(path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := cws.loadFile(path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Explicit config file, which must exist
	cfg.ConfigFile = explicitConfigFile(args)
	if cfg.ConfigFile != "" {
		path := expandPath(cfg.ConfigFile)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := cws.loadFile(path, SourceFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 5. Override from environment
	loadFromEnv(cfg, cws.Sources)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadFile validates a TOML config file against the config schema, decodes
// it over the current config and records which keys it set.
func (cws *ConfigWithSources) loadFile(path string, source ConfigSource) error {
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return err
	}
	if err := validateRaw(raw); err != nil {
		return err
	}

	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	for _, key := range md.Keys() {
		cws.Sources[key.String()] = source
	}
	cws.Files = append(cws.Files, path)
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.Fsync = DefaultFsync
	cfg.Color = DefaultColor
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogFile = ""
}

// finalizeConfig computes derived values and validates enums and paths.
func finalizeConfig(cfg *Config) error {
	color, err := ParseColorMode(string(cfg.Color))
	if err != nil {
		return err
	}
	cfg.Color = color

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q, must be one of: text, json, logfmt", cfg.LogFormat)
	}

	if strings.TrimSpace(cfg.TaskFile) == "" {
		return fmt.Errorf("task file path is empty")
	}

	// Expand ~ in paths
	cfg.TaskFile = expandPath(cfg.TaskFile)
	cfg.LogFile = expandPath(cfg.LogFile)

	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}

	// Make paths absolute if they're relative
	if !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.WorkDir, cfg.TaskFile)
	}
	if cfg.LogFile != "" && !filepath.IsAbs(cfg.LogFile) {
		cfg.LogFile = filepath.Join(cfg.WorkDir, cfg.LogFile)
	}

	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
