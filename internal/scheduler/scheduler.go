// Package scheduler re-exports the report on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/metrics"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
)

// ReportSource builds the report a scheduled run exports.
type ReportSource func() report.Report

// Scheduler owns the cron instance and the export job.
type Scheduler struct {
	cron     *cron.Cron
	exporter *export.Exporter
	source   ReportSource
	options  export.Options
	logger   *zap.Logger
	metrics  *metrics.Collector
	runs     atomic.Int64
}

// New creates a scheduler whose expressions carry a seconds field.
func New(exporter *export.Exporter, source ReportSource, options export.Options, logger *zap.Logger) *Scheduler {
	logger = logger.Named("scheduler")
	cl := cronLogger{logger}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		exporter: exporter,
		source:   source,
		options:  options,
		logger:   logger,
	}
}

// Register adds the export job on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.exportTask); err != nil {
		return fmt.Errorf("register export task: %w", err)
	}
	s.logger.Info("Export scheduled", zap.String("schedule", spec), zap.String("format", string(s.options.Format)))
	return nil
}

// SetMetrics records every export on c
func (s *Scheduler) SetMetrics(c *metrics.Collector) *Scheduler {
	s.metrics = c
	return s
}

// RunNow executes the export job immediately.
func (s *Scheduler) RunNow() (string, error) {
	start := time.Now()
	path, err := s.exporter.Export(s.source(), s.options)
	s.runs.Add(1)
	if s.metrics != nil {
		s.metrics.RecordExport(string(s.options.Format), time.Since(start), err == nil)
	}
	return path, err
}

// Runs returns how many exports have been attempted.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Run starts the cron loop and blocks until ctx is cancelled, then waits for
// a running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) exportTask() {
	path, err := s.RunNow()
	if err != nil {
		s.logger.Error("Scheduled export failed", zap.Error(err))
		return
	}
	s.logger.Info("Scheduled export written", zap.String("file", path))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
