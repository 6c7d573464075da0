package config

import "github.com/nibzard/taskcli/internal/taskdir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// File is the user config file that was read, if any.
	File string
	// Undecoded lists keys in File that taskcli does not know about.
	Undecoded []string
}

// Default values.
const (
	DefaultDataFile  = "~/" + taskdir.Dir + "/" + taskdir.DefaultTaskFile
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskcli.
type Config struct {
	// Path to the JSON task file.
	DataFile string `toml:"data_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// Field names used for source tracking, in display order.
const (
	FieldDataFile      = "data_file"
	FieldLogLevel      = "log_level"
	FieldLogFormat     = "log_format"
	FieldLogTimestamps = "log_timestamps"
	FieldLogCaller     = "log_caller"
)

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		FieldDataFile,
		FieldLogLevel,
		FieldLogFormat,
		FieldLogTimestamps,
		FieldLogCaller,
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
