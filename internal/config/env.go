package config

import (
	"os"

	"github.com/nibzard/taskcli/internal/utils"
)

// Environment variable names.
const (
	EnvDataFile      = "TASKCLI_FILE"
	EnvLogLevel      = "TASKCLI_LOG_LEVEL"
	EnvLogFormat     = "TASKCLI_LOG_FORMAT"
	EnvLogTimestamps = "TASKCLI_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKCLI_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables and marks each
// value it sets as coming from the environment.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
		setEnv(FieldDataFile)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		setEnv(FieldLogLevel)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		setEnv(FieldLogFormat)
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
		setEnv(FieldLogTimestamps)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
		setEnv(FieldLogCaller)
	}
}
