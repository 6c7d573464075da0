package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/nibzard/taskcli/internal/taskdir"
)

// configFileEnv names an explicit config file, skipping the lookup below.
const configFileEnv = "TASKCLI_CONFIG"

// findUserConfigFile returns the first config file that exists, or "".
// A path named by $TASKCLI_CONFIG is returned even when it is missing.
func findUserConfigFile() string {
	if v := os.Getenv(configFileEnv); v != "" {
		return expandPath(v)
	}
	for _, p := range configCandidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// configCandidates lists config file locations in lookup order:
// ~/.taskcli/taskcli.toml, then <os config dir>/taskcli/taskcli.toml.
func configCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, taskdir.ConfigPath(home))
	}
	if dir := osUserConfigDir(); dir != "" {
		paths = append(paths, taskdir.OSConfigPath(dir))
	}
	return paths
}

// osUserConfigDir returns %APPDATA% on Windows, ~/Library/Application Support
// on macOS and $XDG_CONFIG_HOME (or ~/.config) elsewhere.
func osUserConfigDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	home, err := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// expandPath expands environment variables and a leading ~ in p.
func expandPath(p string) string {
	p = expandEnv(p)
	rest, ok := cutHome(p)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// cutHome reports whether p is ~ or starts with ~/ (or ~\ on Windows) and
// returns what follows.
func cutHome(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return rest, true
	}
	if runtime.GOOS == "windows" {
		return strings.CutPrefix(p, `~\`)
	}
	return "", false
}

var windowsEnvRef = regexp.MustCompile(`%([^%]+)%`)

func expandEnv(p string) string {
	p = os.ExpandEnv(p)
	if runtime.GOOS != "windows" || !strings.Contains(p, "%") {
		return p
	}
	// Unknown %VAR% references are left as written.
	return windowsEnvRef.ReplaceAllStringFunc(p, func(ref string) string {
		if val, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
			return val
		}
		return ref
	})
}
