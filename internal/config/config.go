// Package config provides TOML configuration file loading and parsing for
// termcore. The configuration file lives at ~/.config/termcore/config.toml
// by default, but can be overridden with the --config flag. The CLI has no
// flags for individual fields, so file values are overridden by nothing but
// the path itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the termcore configuration file structure.
// Field names use Go camelCase internally but map to snake_case in TOML
// files via struct tags.
type Config struct {
	// Shell is the command run inside the PTY session.
	// If empty, defaults to the user's shell ($SHELL or /bin/sh).
	Shell string `toml:"shell"`

	// TermEnv records the TERM value this installation expects terminfo
	// entries for. internal/pty.Session.Start exports TERM unconditionally
	// on every PTY start (SPEC_FULL.md §4.D), so this field is descriptive
	// rather than plumbed into the PTY environment.
	// Default: xterm-256color
	TermEnv string `toml:"term_env"`

	// Rows is the initial grid row count. Default: 24
	Rows int `toml:"rows"`

	// Cols is the initial grid column count. Default: 80
	Cols int `toml:"cols"`

	// MaxScrollback is the bounded scrollback capacity, in lines.
	// Default: 1000
	MaxScrollback int `toml:"max_scrollback"`

	// LogLevel records a logging verbosity: debug, info, warn, error.
	// Nothing in termcore reads it; the module does no logging.
	// Default: info
	LogLevel string `toml:"log_level"`
}

// DefaultConfigPath returns the default config file location:
// ~/.config/termcore/config.toml.
// Returns an error only if the user's home directory cannot be determined.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "termcore", "config.toml"), nil
}

// Load reads a TOML config file from the given path and returns a Config
// with defaults applied for any field the file left unset.
//
// Behavior:
//   - If path is empty, attempts to load from the default location.
//     Returns a default-filled Config without error if that file is absent.
//   - If path is specified, returns an error if the file doesn't exist.
//   - Returns an error if the file exists but cannot be parsed.
func Load(path string) (*Config, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = DefaultShell
	}
	cfg := &Config{
		Shell:         shell,
		TermEnv:       DefaultTermEnv,
		Rows:          DefaultRows,
		Cols:          DefaultCols,
		MaxScrollback: DefaultMaxScrollback,
		LogLevel:      DefaultLogLevel,
	}

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
			return cfg, nil
		}
		path = defaultPath
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
