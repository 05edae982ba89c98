// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.todolist/todolist.toml or OS-specific config directory)
// 3. Project config file (todolist.toml or .todolist.toml in the working directory)
// 4. Explicit config file (-config flag or TODOLIST_CONFIG)
// 5. Environment variables (TODOLIST_*, NO_COLOR)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.todolist/todolist.toml (preferred)
// - Windows: %APPDATA%\todolist\todolist.toml
// - macOS: ~/Library/Application Support/todolist/todolist.toml
// - Linux/BSD: $XDG_CONFIG_HOME/todolist/todolist.toml or ~/.config/todolist/todolist.toml
//
// Every config file is checked against an embedded JSON Schema before it is
// decoded, so unknown keys and out-of-range values are reported with the
// offending key.
package config
