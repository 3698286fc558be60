package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/config"
	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/router"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/screen"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
)

// flushInterval is how often the spill file is synced.
const flushInterval = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to config file")
	themeName := flag.String("theme", "", "Theme (gold or navy); overrides the config")
	seed := flag.Int64("seed", 0, "Seed for the gold benchmark; 0 draws fresh values on every render")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Benchmark.Seed = *seed
		case "theme":
			cfg.Theme = *themeName
		}
	})

	theme, err := style.ThemeByName(cfg.Theme)
	if err != nil {
		log.Fatalf("Invalid theme: %v", err)
	}
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		log.Fatalf("Invalid export format: %v", err)
	}

	// Logs go to the ring buffer only; anything pushed out lands in the
	// spill file next to the exports.
	spillPath := filepath.Join(cfg.Export.Dir, "xau-dashboard.log")
	if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}
	buffer, err := logger.NewLogBuffer(cfg.LogBufferSize, spillPath, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to create log buffer: %v", err)
	}
	defer buffer.Close()

	debugLogging := *debug || cfg.DebugLogging
	appLogger, err := logger.CreateTUILoggerWithBuffer(debugLogging, buffer)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	appLogger, closeLogFile := logger.WithRotatingFile(appLogger, cfg.LogFile.Rotation(), debugLogging)
	defer func() {
		_ = appLogger.Sync()
		_ = closeLogFile()
	}()

	data := dataset.Default()
	if err := dataset.Validate(data.Balances); err != nil {
		appLogger.Warn("Dataset inconsistent", zap.Error(err))
	}

	opts := screen.DashboardOptions{
		Dataset: data,
		Factors: performance.SourceForSeed(cfg.Benchmark.Seed),
		Theme:   theme,
		Export:  export.Options{Format: format, OutputDir: cfg.Export.Dir},
		Logger:  appLogger,
	}

	createUI := func() (tea.Model, []tea.ProgramOption) {
		dashboard := screen.NewDashboard(opts)
		r := router.New(dashboard, func(route ui.Route) (router.Screen, bool) {
			switch route {
			case ui.RouteLogs:
				return screen.NewLogsScreen(buffer, dashboard.Theme()), true
			default:
				return nil, false
			}
		})
		return ui.NewSafeUIWrapper(r, appLogger), []tea.ProgramOption{tea.WithAltScreen()}
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flushDone := buffer.StartPeriodicFlush(flushInterval)
	defer close(flushDone)

	handler := ui.NewRecoveryHandler(appLogger, createUI)
	go func() {
		<-rootCtx.Done()
		handler.Stop()
	}()

	appLogger.Info("Starting XAU dashboard",
		zap.String("theme", theme.Name),
		zap.Int64("seed", cfg.Benchmark.Seed))

	if err := handler.RunWithRecovery(); err != nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		_ = buffer.Close()
		log.Fatalf("TUI failed: %v", err)
	}
	appLogger.Info("Shutting down XAU dashboard")
}
