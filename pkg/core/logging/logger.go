// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     logging
// Description: Structured leveled logger with contextual fields
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"
)

// Logger is a structured logger. Derived loggers (WithField, WithLevel, ...)
// are independent copies; the original is never modified.
type Logger struct {
	level         Level
	formatter     Formatter
	output        io.Writer
	name          string
	contextFields Fields

	// writeMu serializes writes to output across derived loggers
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Name   string
	Level  string // trace, debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// DefaultConfig returns the configuration used by the CLI
func DefaultConfig(name string) Config {
	return Config{
		Name:   name,
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// New creates a logger with default configuration
func New(name string) *Logger {
	l, _ := NewWithConfig(DefaultConfig(name))
	return l
}

// NewWithConfig creates a logger from cfg. An invalid level or format is
// reported but a usable logger with defaults is still returned.
func NewWithConfig(cfg Config) (*Logger, error) {
	level, levelErr := ParseLevel(cfg.Level)
	format, formatErr := ParseFormat(cfg.Format)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	l := &Logger{
		level:         level,
		formatter:     GetFormatter(format),
		output:        output,
		name:          cfg.Name,
		contextFields: make(Fields),
		writeMu:       &sync.Mutex{},
	}

	if levelErr != nil {
		return l, levelErr
	}
	return l, formatErr
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l, _ := NewWithConfig(Config{Level: "error", Output: io.Discard})
	l.level = LevelError + 1
	return l
}

// WithLevel returns a copy with the minimum level changed
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	return clone
}

// WithName returns a copy with the logger name changed
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy that adds key=value to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy that adds fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// Trace logs a trace message with key-value pairs
func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log(LevelTrace, msg, nil, toFields(keysAndValues...))
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, nil, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, nil, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, nil, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, nil, toFields(keysAndValues...))
}

// WarnWithErr logs a warning carrying err
func (l *Logger) WarnWithErr(msg string, err error, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, err, toFields(keysAndValues...))
}

// ErrorWithErr logs an error carrying err
func (l *Logger) ErrorWithErr(msg string, err error, keysAndValues ...interface{}) {
	l.log(LevelError, msg, err, toFields(keysAndValues...))
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	return l.level
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

func (l *Logger) log(level Level, message string, err error, fields Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.Error = err
	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for k, v := range fields {
		entry.Fields[k] = v
	}

	formatted, formatErr := l.formatter.Format(entry)
	if formatErr != nil {
		return
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	l.output.Write(formatted)
}

func (l *Logger) clone() *Logger {
	clone := &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		contextFields: make(Fields, len(l.contextFields)),
		writeMu:       l.writeMu,
	}
	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}
	return clone
}

var (
	defaultLogger   = New("rspm")
	defaultLoggerMu sync.RWMutex
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}
