// Package cli implements the xaureport subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rovshanmuradov/xau-dashboard/internal/config"
	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
)

// App holds the global flags shared by every subcommand.
type App struct {
	ConfigPath string
	Seed       int64
	Debug      bool

	seedSet bool
	stdout  io.Writer
	stderr  io.Writer
}

// NewApp creates an App writing to the process streams.
func NewApp() *App {
	return &App{stdout: os.Stdout, stderr: os.Stderr}
}

// SetFlags registers the global flags on f.
func (a *App) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.ConfigPath, "config", "", "Path to a config file (json, yaml or toml).")
	f.Int64Var(&a.Seed, "seed", 0, "Seed for the gold benchmark; overrides benchmark.seed. 0 is unseeded.")
	f.BoolVar(&a.Debug, "debug", false, "Enable debug logging.")
}

// MarkSeed records whether -seed was given explicitly. Call after parsing.
func (a *App) MarkSeed(f *flag.FlagSet) {
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			a.seedSet = true
		}
	})
}

// Register adds every subcommand to c.
func (a *App) Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&summaryCmd{app: a}, "report")
	c.Register(&viewCmd{app: a}, "report")
	c.Register(&queryCmd{app: a}, "report")
	c.Register(&validateCmd{app: a}, "report")

	c.Register(&exportCmd{app: a}, "output")
	c.Register(&chartsCmd{app: a}, "output")

	c.Register(&serveCmd{app: a}, "server")
}

// runtime is what a command needs after config and logging are set up.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	data    dataset.Dataset
	factors performance.FactorSource
	theme   style.Theme
}

func (a *App) load() (*runtime, error) {
	cfg, err := config.LoadConfig(a.ConfigPath)
	if err != nil {
		return nil, err
	}
	if a.seedSet {
		cfg.Benchmark.Seed = a.Seed
	}

	// stdout carries command output
	log := logger.NewPrettyLogger(zapcore.AddSync(a.stderr), a.Debug || cfg.DebugLogging)

	theme, err := style.ThemeByName(cfg.Theme)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:     cfg,
		logger:  log,
		data:    dataset.Default(),
		factors: performance.SourceForSeed(cfg.Benchmark.Seed),
		theme:   theme,
	}, nil
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(a.stderr, err)
	return subcommands.ExitFailure
}
