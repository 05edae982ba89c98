package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands $VAR references and a leading ~ in p. On Windows
// %VAR% references and a ~\ prefix are expanded as well.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}

	if p != "~" && !strings.HasPrefix(p, "~/") && !(runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// expandPercentVars replaces %NAME% with the value of NAME. Unknown names
// and unmatched percent signs are left as they are.
func expandPercentVars(p string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		b.WriteString(p[:start])
		name := p[start+1 : end]
		if val, ok := os.LookupEnv(name); ok && name != "" {
			b.WriteString(val)
			p = p[end+1:]
			continue
		}
		b.WriteByte('%')
		p = p[start+1:]
		if name == "" {
			// "%%": keep both and move past them.
			b.WriteByte('%')
			p = p[1:]
		}
	}
	b.WriteString(p)
	return b.String()
}
