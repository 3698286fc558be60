package cli

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/metrics"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
	"github.com/rovshanmuradov/xau-dashboard/internal/scheduler"
	"github.com/rovshanmuradov/xau-dashboard/internal/server"
)

type serveCmd struct {
	app  *App
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard API and run scheduled exports" }
func (*serveCmd) Usage() string {
	return `xaureport serve [-addr host:port]

  Serves /api/views, /api/report, /api/logs, /metrics and /charts/<view>.png. When
  export.schedule is set the report is also exported on that cron schedule.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address; defaults to server.addr.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	buffer, err := logger.NewLogBuffer(rt.cfg.LogBufferSize, "", rt.logger)
	if err != nil {
		return c.app.fail(err)
	}
	debug := c.app.Debug || rt.cfg.DebugLogging
	log, err := logger.CreatePrettyLoggerWithBuffer(debug, buffer)
	if err != nil {
		return c.app.fail(err)
	}
	log, closeLogFile := logger.WithRotatingFile(log, rt.cfg.LogFile.Rotation(), debug)
	defer closeLogFile()
	defer log.Sync()

	addr := rt.cfg.Server.Addr
	if c.addr != "" {
		addr = c.addr
	}

	collector := metrics.NewCollector()
	srv := server.New(server.Options{
		Addr:    addr,
		Dataset: rt.data,
		Factors: rt.factors,
		Theme:   rt.theme,
		Logger:  log,
		Logs:    buffer,
		Metrics: collector,
	})

	var sched *scheduler.Scheduler
	if spec := rt.cfg.Export.Schedule; spec != "" {
		format, err := export.ParseFormat(rt.cfg.Export.Format)
		if err != nil {
			return c.app.fail(err)
		}
		source := func() report.Report { return report.Build(rt.data, rt.factors, time.Now()) }
		sched = scheduler.New(export.NewExporter(log), source,
			export.Options{Format: format, OutputDir: rt.cfg.Export.Dir}, log).SetMetrics(collector)
		if err := sched.Register(spec); err != nil {
			return c.app.fail(err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	if sched != nil {
		g.Go(func() error { return sched.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		log.Error("Serve failed", zap.Error(err))
		return c.app.fail(fmt.Errorf("serve: %w", err))
	}
	return subcommands.ExitSuccess
}
