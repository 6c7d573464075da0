package config

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// GetConfigFile returns the user config file that was read, or "" if none.
func (cws *ConfigWithSources) GetConfigFile() string {
	return cws.File
}

// Value returns the display form of a field's effective value.
func (c *Config) Value(field string) string {
	switch field {
	case FieldDataFile:
		return c.DataFile
	case FieldLogLevel:
		return c.LogLevel
	case FieldLogFormat:
		return c.LogFormat
	case FieldLogTimestamps:
		return strconv.FormatBool(c.LogTimestamps)
	case FieldLogCaller:
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}

// Print writes each field, its effective value, and where it came from.
func (cws *ConfigWithSources) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range configFields() {
		source := cws.Sources[field]
		if source == "" {
			source = SourceDefault
		}
		fmt.Fprintf(tw, "%s\t%s\t(%s)\n", field, cws.Config.Value(field), source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if cws.File != "" {
		fmt.Fprintf(w, "\nConfig file: %s\n", cws.File)
	} else {
		fmt.Fprintln(w, "\nConfig file: none")
	}
	for _, key := range cws.Undecoded {
		fmt.Fprintf(w, "Unknown key ignored: %s\n", key)
	}
	return nil
}
