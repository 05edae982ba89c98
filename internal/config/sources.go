package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appName = "todolist"

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{appName + ".toml", "." + appName + ".toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.todolist/todolist.toml first, then falls back to OS-specific
// config directories if ~/.todolist doesn't exist.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, "."+appName, appName+".toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, appName, appName+".toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// valueFlags are the flags that consume the following argument when given
// without "=".
var valueFlags = map[string]bool{
	"config":     true,
	"file":       true,
	"color":      true,
	"log-level":  true,
	"log-format": true,
	"log-file":   true,
}

// explicitConfigFile returns the -config flag value from args, falling back
// to TODOLIST_CONFIG. The flag has to be known before the remaining flags
// are parsed because the file sits below flags in priority.
func explicitConfigFile(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}
		name := strings.TrimLeft(arg, "-")
		value, hasValue := "", false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}
		if name == "config" {
			if hasValue {
				return value
			}
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		if valueFlags[name] && !hasValue {
			i++
		}
	}
	return os.Getenv("TODOLIST_CONFIG")
}
