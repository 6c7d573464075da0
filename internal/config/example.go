package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskcli configuration file
# Place at ~/.taskcli/taskcli.toml (or $XDG_CONFIG_HOME/taskcli/taskcli.toml).
# Values can be overridden by environment variables or CLI flags.

# Task file (supports ~ expansion and environment variables)
data_file = "~/.taskcli/tasks.json"

# Diagnostics go to stderr: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# log_timestamps = false
# log_caller = false
`
}
