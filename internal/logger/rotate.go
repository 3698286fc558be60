package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig describes a size-rotated log file
type RotationConfig struct {
	Path       string
	MaxSizeMB  int  // megabytes
	MaxAgeDays int  // days
	MaxBackups int  // rotated files kept
	Compress   bool // gzip rotated files
}

// NewRotatingWriter returns the lumberjack writer for cfg.
func NewRotatingWriter(cfg RotationConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// WithRotatingFile tees log into a JSON file rotated per cfg. An empty path
// returns log unchanged and a no-op close.
func WithRotatingFile(log *zap.Logger, cfg RotationConfig, debug bool) (*zap.Logger, func() error) {
	if cfg.Path == "" {
		return log, func() error { return nil }
	}

	rotator := NewRotatingWriter(cfg)
	fileCore := zapcore.NewCore(bufferEncoder(), zapcore.AddSync(rotator), levelFor(debug))
	teed := log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
	return teed, rotator.Close
}
