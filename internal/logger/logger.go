// Package logger provides a structured logging wrapper using zap.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// L is the global logger instance
	L    *zap.Logger
	once sync.Once
)

// Options configures the global logger. Level is one of debug, info, warn or
// error. An empty Format picks console below info and json otherwise.
type Options struct {
	Level   string
	Format  string
	Service string
}

// ParseLevel parses a level name. An empty name is info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', or 'error')", level)
}

// ValidFormat reports whether format names a supported encoder.
func ValidFormat(format string) bool {
	return format == "" || format == FormatConsole || format == FormatJSON
}

// New builds a logger from opts without touching the global one.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if !ValidFormat(opts.Format) {
		return nil, fmt.Errorf("invalid log format: %s (must be 'console' or 'json')", opts.Format)
	}

	format := opts.Format
	if format == "" {
		format = FormatJSON
		if level < zapcore.InfoLevel {
			format = FormatConsole
		}
	}

	var config zap.Config
	if format == FormatConsole {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.Level = zap.NewAtomicLevelAt(level)
	if opts.Service != "" {
		config.InitialFields = map[string]any{"service": opts.Service}
	}
	return config.Build()
}

// Configure replaces the global logger with one built from opts. The
// current logger is kept when opts are invalid.
func Configure(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	L = l
	return nil
}

// Init initializes the global logger once.
// If debug is true, uses console output at DEBUG level.
// Otherwise uses JSON output at INFO level.
func Init(debug bool) {
	once.Do(func() {
		opts := Options{Level: "info", Format: FormatJSON}
		if debug {
			opts = Options{Level: "debug", Format: FormatConsole}
		}
		if err := Configure(opts); err != nil {
			// Fallback to nop logger if initialization fails
			L = zap.NewNop()
		}
	})
}

// Replace swaps the global logger and returns a function restoring the
// previous one. Tests use it to capture log output.
func Replace(l *zap.Logger) func() {
	Default()
	prev := L
	L = l
	return func() { L = prev }
}

// Named returns a child logger for one component, e.g. "api" or "import".
// Its entries carry the component as a field so JSON output can be
// filtered on it.
func Named(component string) *zap.Logger {
	return Default().Named(component).With(zap.String("component", component))
}

// Sync flushes any buffered log entries.
// Should be called before the application exits.
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}

// Default initializes a default logger if not already initialized.
func Default() *zap.Logger {
	if L == nil {
		Init(os.Getenv("GIN_MODE") != "release")
	}
	return L
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Default().Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Default().Warn(msg, fields...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) {
	Default().Fatal(msg, fields...)
}
