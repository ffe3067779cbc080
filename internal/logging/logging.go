// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Info level)
	InitLogger(LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// ParseLevel maps a level name to a Level. Unknown names map to Info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat maps a format name to a Format. Unknown names map to text.
func ParseFormat(s string) Format {
	if s == "json" {
		return FormatJSON
	}
	return FormatText
}

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// SplitStarted logs the start of a split run with common fields.
func SplitStarted(runID, source, schema string, zoomCount int, limitBytes int64, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"source", source,
		"schema", schema,
		"zoom_count", zoomCount,
		"limit_bytes", limitBytes,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("split_started", allArgs...)
}

// GroupWritten logs one completed output archive.
func GroupWritten(runID, path string, minZoom, maxZoom int, sizeBytes int64, overLimit bool, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"path", path,
		"min_zoom", minZoom,
		"max_zoom", maxZoom,
		"size_bytes", sizeBytes,
		"over_limit", overLimit,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("group_written", allArgs...)
}

// ZoomOversized logs a zoom level whose estimate alone exceeds the limit.
func ZoomOversized(runID string, zoom int, estimateBytes, limitBytes int64, args ...any) {
	allArgs := []any{
		"run_id", runID,
		"zoom", zoom,
		"estimate_bytes", estimateBytes,
		"limit_bytes", limitBytes,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Warn("zoom_oversized", allArgs...)
}
