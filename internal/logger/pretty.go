// Package logger builds the zap loggers used by the CLI and the terminal UI.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorBold   = "\033[1m"
)

// PrettyEncoder creates a user-friendly console encoder
func PrettyEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		CallerKey:      "",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
}

// bufferEncoder writes the JSON lines LogBuffer.Write parses.
func bufferEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(fmt.Sprintf("%s[DEBUG]%s", ColorCyan, ColorReset))
	case zapcore.InfoLevel:
		enc.AppendString(fmt.Sprintf("%s[INFO]%s", ColorGreen, ColorReset))
	case zapcore.WarnLevel:
		enc.AppendString(fmt.Sprintf("%s[WARN]%s", ColorYellow, ColorReset))
	case zapcore.ErrorLevel:
		enc.AppendString(fmt.Sprintf("%s[ERROR]%s", ColorRed, ColorReset))
	case zapcore.FatalLevel:
		enc.AppendString(fmt.Sprintf("%s[FATAL]%s", ColorRed+ColorBold, ColorReset))
	default:
		enc.AppendString(fmt.Sprintf("[%s]", level.CapitalString()))
	}
}

// customTimeEncoder formats time in a readable way
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

// CreatePrettyLogger creates a logger with user-friendly output on stdout
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	return NewPrettyLogger(zapcore.Lock(os.Stdout), debug), nil
}

// NewPrettyLogger writes colored, field-free lines to w.
func NewPrettyLogger(w zapcore.WriteSyncer, debug bool) *zap.Logger {
	core := zapcore.NewCore(PrettyEncoder(), w, levelFor(debug))
	return zap.New(&FieldFilterCore{core: core})
}

// FormatMessage creates user-friendly log messages
func FormatMessage(msg string, fields ...zap.Field) string {
	switch {
	case strings.Contains(msg, "Report exported"):
		file := extractField(fields, "file")
		return fmt.Sprintf("%s✓ Report exported: %s%s", ColorGreen, file, ColorReset)

	case strings.Contains(msg, "Charts exported"):
		count := extractField(fields, "count")
		dir := extractField(fields, "dir")
		return fmt.Sprintf("%s📈 %s charts written to %s%s", ColorBlue, count, dir, ColorReset)

	case strings.Contains(msg, "Server listening"):
		addr := extractField(fields, "addr")
		return fmt.Sprintf("%s🚀 Serving dashboard API on %s%s", ColorGreen, addr, ColorReset)

	case strings.Contains(msg, "Export scheduled"):
		schedule := extractField(fields, "schedule")
		return fmt.Sprintf("%s⏱ Scheduled export every %s%s", ColorCyan, schedule, ColorReset)

	case strings.Contains(msg, "Non-finite values"):
		months := extractField(fields, "months")
		return fmt.Sprintf("%s⚠ Non-finite values replaced in %s%s", ColorYellow, months, ColorReset)

	case strings.Contains(msg, "Dataset inconsistent"):
		return fmt.Sprintf("%s✗ %s%s", ColorRed+ColorBold, msg, ColorReset)

	default:
		return msg
	}
}

// Helper functions
func extractField(fields []zap.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch {
		case field.String != "":
			return field.String
		case field.Interface != nil:
			return fmt.Sprintf("%v", field.Interface)
		default:
			return fmt.Sprintf("%d", field.Integer)
		}
	}
	return ""
}

// FieldFilterCore wraps a zapcore.Core to filter out unwanted fields
type FieldFilterCore struct {
	core zapcore.Core
}

func (c *FieldFilterCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FieldFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &FieldFilterCore{core: c.core.With(fields)}
}

func (c *FieldFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FieldFilterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	// Fields are folded into the message, never printed raw
	cleanEntry := entry
	cleanEntry.Message = FormatMessage(entry.Message, fields...)

	return c.core.Write(cleanEntry, nil)
}

func (c *FieldFilterCore) Sync() error {
	return c.core.Sync()
}

// CreatePrettyLoggerWithBuffer logs pretty lines to stdout and structured
// entries into buffer, which the HTTP API serves.
func CreatePrettyLoggerWithBuffer(debug bool, buffer *LogBuffer) (*zap.Logger, error) {
	level := levelFor(debug)
	cores := []zapcore.Core{
		&FieldFilterCore{core: zapcore.NewCore(PrettyEncoder(), zapcore.Lock(os.Stdout), level)},
	}
	if buffer != nil {
		cores = append(cores, zapcore.NewCore(bufferEncoder(), buffer, level))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// CreateTUILoggerWithBuffer creates a TUI-compatible logger that only writes to buffer
func CreateTUILoggerWithBuffer(debug bool, buffer *LogBuffer) (*zap.Logger, error) {
	if buffer == nil {
		return nil, fmt.Errorf("buffer is required for TUI logger")
	}

	// No console output, it would corrupt the TUI
	core := zapcore.NewCore(bufferEncoder(), buffer, levelFor(debug))
	return zap.New(core), nil
}
