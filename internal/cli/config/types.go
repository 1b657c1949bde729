// Package config provides configuration management for the paws CLI.
//
// Values are layered from defaults, an optional paws.yaml file, PAWS_
// environment variables and explicitly set command-line flags, in that
// order of increasing precedence.
package config

import (
	"time"
)

// Config holds all CLI configuration options.
type Config struct {
	Output    string `koanf:"output"`
	Color     string `koanf:"color"`
	StdinName string `koanf:"stdin_name"`
	Verbose   bool   `koanf:"verbose"`
	LogLevel  string `koanf:"log_level"`
	Excerpt   bool   `koanf:"excerpt"`

	Parse ParseConfig `koanf:"parse"`
	Check CheckConfig `koanf:"check"`
	REPL  REPLConfig  `koanf:"repl"`

	// ProjectRoot is the directory holding the config file, or the
	// working directory when none was found. Not loaded from config.
	ProjectRoot string `koanf:"-"`
}

// ParseConfig holds parser limits.
type ParseConfig struct {
	// MaxDepth bounds group nesting. Zero means unlimited.
	MaxDepth int `koanf:"max_depth"`
}

// CheckConfig holds settings for the check command.
type CheckConfig struct {
	Workers    int           `koanf:"workers"`
	Debounce   time.Duration `koanf:"debounce"`
	Extensions []string      `koanf:"extensions"`
}

// REPLConfig holds settings for the interactive shell.
type REPLConfig struct {
	Prompt      string `koanf:"prompt"`
	HistoryFile string `koanf:"history_file"`
}

// Output formats.
const (
	OutputDebug = "debug"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default configuration values.
const (
	DefaultOutput      = OutputDebug
	DefaultColor       = ColorAuto
	DefaultStdinName   = "<stdin>"
	DefaultLogLevel    = "warn"
	DefaultDebounce    = 100 * time.Millisecond
	DefaultPrompt      = "←"
	DefaultHistoryFile = "~/.paws_history"
)

// DefaultExtensions are the file suffixes check collects when walking a
// directory.
var DefaultExtensions = []string{".paws", ".cpaws"}
