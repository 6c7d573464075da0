// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (see below)
// 3. Environment variables (TASKCLI_*)
// 4. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations, first match wins:
// - $TASKCLI_CONFIG
// - ~/.taskcli/taskcli.toml (preferred)
// - Windows: %APPDATA%\taskcli\taskcli.toml
// - macOS: ~/Library/Application Support/taskcli/taskcli.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskcli/taskcli.toml or ~/.config/taskcli/taskcli.toml
package config
