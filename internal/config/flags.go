package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by BindFlags.
const (
	FlagFile          = "file"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagLogTimestamps = "log-timestamps"
	FlagLogCaller     = "log-caller"
)

// flagToField maps flag names to source field names.
var flagToField = map[string]string{
	FlagFile:          FieldDataFile,
	FlagLogLevel:      FieldLogLevel,
	FlagLogFormat:     FieldLogFormat,
	FlagLogTimestamps: FieldLogTimestamps,
	FlagLogCaller:     FieldLogCaller,
}

// BindFlags registers the configuration flags on fs. Defaults shown in help
// are the built-in ones; only flags the user sets override other sources.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagFile, "f", DefaultDataFile, "Path to the task file")
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format (text, json, logfmt)")
	fs.Bool(FlagLogTimestamps, false, "Show timestamps in logs")
	fs.Bool(FlagLogCaller, false, "Show caller location in logs")
}

// applyFlags copies explicitly set flags from a parsed fs into cfg.
// Flags that fs does not define are ignored.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		field, ok := flagToField[f.Name]
		if !ok {
			return
		}

		switch f.Name {
		case FlagFile:
			cfg.DataFile, err = fs.GetString(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagLogFormat:
			cfg.LogFormat, err = fs.GetString(f.Name)
		case FlagLogTimestamps:
			cfg.LogTimestamps, err = fs.GetBool(f.Name)
		case FlagLogCaller:
			cfg.LogCaller, err = fs.GetBool(f.Name)
		}
		if err == nil && sources != nil {
			sources[field] = SourceFlag
		}
	})
	return err
}
