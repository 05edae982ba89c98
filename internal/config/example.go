package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by environment variables or CLI flags

# Task file (relative paths resolve against the working directory)
task_file = "tasks.txt"

# Fsync the task file before it replaces the previous version
fsync = true

# Colored output: auto, always or never
color = "auto"

# Logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
# log_file = "~/.todolist/todolist.log"
`
}
