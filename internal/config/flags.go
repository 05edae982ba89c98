package config

import "flag"

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"file":           "task_file",
	"fsync":          "fsync",
	"color":          "color",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-file":       "log_file",
}

// parseFlags defines and parses CLI flags. Flags explicitly set on the
// command line are recorded in sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	// Already applied before the file layers; defined here so it parses.
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to an explicit config file")

	// Storage
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to task file")
	fs.BoolVar(&cfg.Fsync, "fsync", cfg.Fsync, "Fsync the task file on every save")

	// Output
	color := string(cfg.Color)
	fs.StringVar(&color, "color", color, "Colored output (auto|always|never)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log lines")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Color = ColorMode(color)

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
