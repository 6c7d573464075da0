// Package taskdir provides constants and helpers for the ~/.taskcli directory.
package taskdir

import "path/filepath"

const (
	// Dir is the name of the taskcli state directory under the home directory.
	Dir = ".taskcli"

	// AppName is the directory name used under OS config directories.
	AppName = "taskcli"

	// DefaultTaskFile is the default task file name (inside Dir).
	DefaultTaskFile = "tasks.json"

	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "taskcli.toml"
)

// TaskPath returns the full path to the task file within home.
func TaskPath(home string) string {
	return joinPath(home, DefaultTaskFile)
}

// ConfigPath returns the full path to the config file within home.
func ConfigPath(home string) string {
	return joinPath(home, DefaultConfigFile)
}

// OSConfigPath returns the config file path inside an OS config directory
// such as $XDG_CONFIG_HOME.
func OSConfigPath(configDir string) string {
	return filepath.Join(configDir, AppName, DefaultConfigFile)
}

// DirPath returns the full path to the .taskcli directory within home.
func DirPath(home string) string {
	if home == "." || home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

func joinPath(home, file string) string {
	return filepath.Join(DirPath(home), file)
}
