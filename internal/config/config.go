// Package config loads dashboard settings from an optional file and
// XAU_DASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
)

type Config struct {
	Theme         string    `mapstructure:"theme"`
	Benchmark     Benchmark `mapstructure:"benchmark"`
	Export        Export    `mapstructure:"export"`
	Server        Server    `mapstructure:"server"`
	DebugLogging  bool      `mapstructure:"debug_logging"`
	LogBufferSize int       `mapstructure:"log_buffer_size"`
	LogFile       LogFile   `mapstructure:"log_file"`
}

// Benchmark controls the simulated gold series. Seed 0 draws fresh factors on
// every render.
type Benchmark struct {
	Seed int64 `mapstructure:"seed"`
}

type Export struct {
	Dir      string `mapstructure:"dir"`
	Format   string `mapstructure:"format"`
	Schedule string `mapstructure:"schedule"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

// LogFile enables a rotating JSON log file when Path is set.
type LogFile struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Rotation converts the settings for logger.WithRotatingFile.
func (l LogFile) Rotation() logger.RotationConfig {
	return logger.RotationConfig{
		Path:       l.Path,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

const (
	DefaultTheme         = style.ThemeGoldName
	DefaultExportDir     = "exports"
	DefaultExportFormat  = "json"
	DefaultServerAddr    = "127.0.0.1:8080"
	DefaultLogBufferSize = 1000

	EnvPrefix = "XAU_DASH"
)

var (
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidSchedule  = errors.New("invalid export schedule")
	ErrInvalidAddr      = errors.New("invalid server address")
	ErrInvalidLogBuffer = errors.New("invalid log_buffer_size")
	ErrInvalidLogFile   = errors.New("invalid log_file settings")
)

var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LoadConfig reads path when it is not empty, then applies defaults and
// environment overrides such as XAU_DASH_BENCHMARK_SEED.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"theme":           DefaultTheme,
		"benchmark.seed":  0,
		"export.dir":      DefaultExportDir,
		"export.format":   DefaultExportFormat,
		"export.schedule": "",
		"server.addr":     DefaultServerAddr,
		"debug_logging":   false,
		"log_buffer_size": DefaultLogBufferSize,

		"log_file.path":         "",
		"log_file.max_size_mb":  100,
		"log_file.max_backups":  3,
		"log_file.max_age_days": 7,
		"log_file.compress":     true,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if _, err := style.ThemeByName(cfg.Theme); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, cfg.Theme)
	}
	if _, err := export.ParseFormat(cfg.Export.Format); err != nil {
		return err
	}
	if cfg.Export.Dir == "" {
		return errors.New("export.dir is empty")
	}
	if cfg.Export.Schedule != "" {
		if _, err := cronParser.Parse(cfg.Export.Schedule); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
	}
	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddr, err)
	}
	if cfg.LogBufferSize <= 0 {
		return ErrInvalidLogBuffer
	}
	if lf := cfg.LogFile; lf.Path != "" && (lf.MaxSizeMB <= 0 || lf.MaxBackups < 0 || lf.MaxAgeDays < 0) {
		return ErrInvalidLogFile
	}
	return nil
}
