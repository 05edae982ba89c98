package config

import "os"

// loadFromEnv overrides config from environment variables and updates
// source tracking.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODOLIST_FILE"); v != "" {
		cfg.TaskFile = v
		setEnv("task_file")
	}
	if v := os.Getenv("TODOLIST_FSYNC"); v != "" {
		cfg.Fsync = boolFromString(v)
		setEnv("fsync")
	}

	// NO_COLOR (https://no-color.org) disables color unless TODOLIST_COLOR
	// asks for it explicitly.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = ColorNever
		setEnv("color")
	}
	if v := os.Getenv("TODOLIST_COLOR"); v != "" {
		cfg.Color = ColorMode(v)
		setEnv("color")
	}

	if v := os.Getenv("TODOLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TODOLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TODOLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TODOLIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
		setEnv("log_file")
	}
}
