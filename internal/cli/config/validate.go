package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputDebug, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q: must be one of debug, json, yaml", c.Output)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: must be one of auto, always, never", c.Color)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.StdinName == "" {
		return fmt.Errorf("stdin_name must not be empty")
	}
	if c.Parse.MaxDepth < 0 {
		return fmt.Errorf("parse.max_depth must be >= 0, got %d", c.Parse.MaxDepth)
	}
	if c.Check.Workers < 1 {
		return fmt.Errorf("check.workers must be >= 1, got %d", c.Check.Workers)
	}
	if c.Check.Debounce < 0 {
		return fmt.Errorf("check.debounce must not be negative, got %s", c.Check.Debounce)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("check.extensions entry %q must start with '.'", ext)
		}
	}
	return nil
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
	return level, nil
}
