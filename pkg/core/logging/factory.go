// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured loggers
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format, "json" or "text" (default: text)
	Format string

	// Verbose forces debug level unless Level is already trace
	Verbose bool

	// Additional outputs besides stderr
	AdditionalOutputs []io.Writer
}

// NewLogger creates a logger from cfg. Invalid level or format values fall
// back to defaults and are returned as error.
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	var output io.Writer = os.Stderr
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	level := cfg.Level
	if cfg.Verbose {
		if l, err := ParseLevel(level); err != nil || l > LevelDebug {
			level = "debug"
		}
	}

	return NewWithConfig(Config{
		Name:   cfg.Name,
		Level:  level,
		Format: cfg.Format,
		Output: output,
	})
}
