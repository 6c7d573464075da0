// Package config tests configuration loading.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points every config lookup at an empty temporary home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{configFileEnv, EnvDataFile, EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller} {
		t.Setenv(env, "")
	}
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func parsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DataFile != DefaultDataFile {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, DefaultDataFile)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}

	want := filepath.Join(home, ".taskcli", "tasks.json")
	if cws.Config.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cws.Config.DataFile, want)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("%s: source %q, want default", field, cws.Sources[field])
		}
	}
	if cws.GetConfigFile() != "" {
		t.Errorf("expected no config file, got %q", cws.GetConfigFile())
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "taskcli.toml")
	writeConfig(t, configFile, `data_file = "custom.json"
log_level = "debug"
colour = "blue"
`)

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	undecoded, err := loadConfigFile(cfg, configFile, sources, SourceUserFile)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.DataFile != "custom.json" {
		t.Errorf("DataFile: got %q, want custom.json", cfg.DataFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat should keep its default, got %q", cfg.LogFormat)
	}
	if sources[FieldDataFile] != SourceUserFile || sources[FieldLogLevel] != SourceUserFile {
		t.Errorf("sources: got %v", sources)
	}
	if _, ok := sources[FieldLogFormat]; ok {
		t.Errorf("log_format was not in the file but got source %q", sources[FieldLogFormat])
	}
	if len(undecoded) != 1 || undecoded[0] != "colour" {
		t.Errorf("undecoded: got %v, want [colour]", undecoded)
	}
}

func TestLoadConfigFileSyntaxError(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	writeConfig(t, path, "data_file = \n")
	t.Setenv(configFileEnv, path)

	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestFindUserConfigFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux/BSD only")
	}

	t.Run("home directory first", func(t *testing.T) {
		home := isolate(t)
		primary := filepath.Join(home, ".taskcli", "taskcli.toml")
		writeConfig(t, primary, "")
		writeConfig(t, filepath.Join(home, ".config", "taskcli", "taskcli.toml"), "")

		if got := findUserConfigFile(); got != primary {
			t.Errorf("got %q, want %q", got, primary)
		}
	})

	t.Run("xdg fallback", func(t *testing.T) {
		home := isolate(t)
		xdg := filepath.Join(home, ".config", "taskcli", "taskcli.toml")
		writeConfig(t, xdg, "")

		if got := findUserConfigFile(); got != xdg {
			t.Errorf("got %q, want %q", got, xdg)
		}
	})

	t.Run("explicit env", func(t *testing.T) {
		home := isolate(t)
		explicit := filepath.Join(home, "elsewhere.toml")
		t.Setenv(configFileEnv, explicit)

		if got := findUserConfigFile(); got != explicit {
			t.Errorf("got %q, want %q", got, explicit)
		}
	})

	t.Run("none", func(t *testing.T) {
		isolate(t)
		if got := findUserConfigFile(); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDataFile, "/tmp/env-tasks.json")
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogTimestamps, "yes")
	t.Setenv(EnvLogCaller, "0")

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	loadFromEnv(cfg, sources)

	if cfg.DataFile != "/tmp/env-tasks.json" {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("logging: got level %q format %q", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	if cfg.LogCaller {
		t.Error("LogCaller: got true, want false")
	}
	for _, field := range configFields() {
		if sources[field] != SourceEnv {
			t.Errorf("%s: source %q, want environment", field, sources[field])
		}
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}

	fs := parsedFlags(t, "--file", "flag-tasks.json", "--log-format", "logfmt", "--log-caller")
	if err := applyFlags(cfg, fs, sources); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}

	if cfg.DataFile != "flag-tasks.json" {
		t.Errorf("DataFile: got %q, want flag-tasks.json", cfg.DataFile)
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("unset flag changed LogLevel to %q", cfg.LogLevel)
	}
	if _, ok := sources[FieldLogLevel]; ok {
		t.Error("unset flag should not record a source")
	}
	if sources[FieldDataFile] != SourceFlag {
		t.Errorf("data_file source: got %q, want flag", sources[FieldDataFile])
	}
}

func TestLoadPrecedence(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".taskcli", "taskcli.toml"), `data_file = "~/from-file.json"
log_level = "info"
log_format = "json"
`)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "logfmt")

	cws, err := LoadWithSources(parsedFlags(t, "--log-format", "text"))
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if want := filepath.Join(home, "from-file.json"); cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: env should beat file, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: flag should beat env, got %q", cfg.LogFormat)
	}

	wantSources := map[string]ConfigSource{
		FieldDataFile:      SourceUserFile,
		FieldLogLevel:      SourceEnv,
		FieldLogFormat:     SourceFlag,
		FieldLogTimestamps: SourceDefault,
		FieldLogCaller:     SourceDefault,
	}
	for field, want := range wantSources {
		if cws.Sources[field] != want {
			t.Errorf("%s: source %q, want %q", field, cws.Sources[field], want)
		}
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"level", EnvLogLevel, "loud"},
		{"format", EnvLogFormat, "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.val)
			_, err := Load(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.val) {
				t.Errorf("error should name the value %q: %v", tt.val, err)
			}
		})
	}
}

func TestRelativeDataFileIsAbsolute(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDataFile, "tasks.json")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(cfg.DataFile) {
		t.Errorf("DataFile should be absolute, got %q", cfg.DataFile)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}
	if runtime.GOOS == "windows" {
		t.Setenv("TASKCLI_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `%TASKCLI_TEST_HOME%\tasks`,
			want:  filepath.Join(home, "tasks"),
		})
	} else {
		t.Setenv("TASKCLI_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: "$TASKCLI_TEST_HOME/tasks.json",
			want:  filepath.Join(home, "tasks.json"),
		}, struct {
			input string
			want  string
		}{
			input: `~\test`,
			want:  `~\test`,
		})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "info")

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatal(err)
	}
	cws.Undecoded = []string{"colour"}

	var buf bytes.Buffer
	if err := cws.Print(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"log_level",
		"info",
		"(environment)",
		"(default)",
		"Config file: none",
		"Unknown key ignored: colour",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskcli.toml")
	writeConfig(t, path, ExampleConfig())

	cfg := &Config{}
	undecoded, err := loadConfigFile(cfg, path, map[string]ConfigSource{}, SourceUserFile)
	if err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if len(undecoded) != 0 {
		t.Errorf("example config has unknown keys: %v", undecoded)
	}
	if cfg.DataFile != DefaultDataFile || cfg.LogLevel != DefaultLogLevel {
		t.Errorf("example config disagrees with defaults: %+v", cfg)
	}
}
