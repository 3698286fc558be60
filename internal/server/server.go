// Package server exposes the dashboard views, the report and PNG charts over
// HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/metrics"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr    string
	Dataset dataset.Dataset
	Factors performance.FactorSource
	Theme   style.Theme
	Logger  *zap.Logger
	Logs    *logger.LogBuffer
	Metrics *metrics.Collector
}

// Server serves the dashboard API.
type Server struct {
	addr     string
	data     dataset.Dataset
	factors  performance.FactorSource
	renderer *view.Renderer
	charts   *export.ChartRenderer
	logs     *logger.LogBuffer
	metrics  *metrics.Collector
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a server; call Handler for tests or Run to listen.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	factors := opts.Factors
	if factors == nil {
		factors = performance.NewRandomFactors()
	}
	collector := opts.Metrics
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Server{
		addr:     opts.Addr,
		data:     opts.Dataset,
		factors:  factors,
		renderer: view.NewRenderer(opts.Dataset, factors),
		charts:   export.NewChartRenderer(log, opts.Theme),
		logs:     opts.Logs,
		metrics:  collector,
		logger:   log.Named("server"),
		now:      time.Now,
	}
}

// Handler builds the chi router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/views", s.listViews)
		r.Get("/views/{id}", s.getView)
		r.Get("/report", s.getReport)
		r.Get("/report/query", s.queryReport)
		if s.logs != nil {
			r.Get("/logs", s.recentLogs)
		}
	})

	r.Get("/charts/{id}.png", s.getChart)

	return r
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		s.metrics.RecordRequest(route, ww.Status(), time.Since(start))
		s.logger.Debug("Request served",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listViews(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"options":  view.Options(),
		"selected": view.Default,
	})
}

// placeholderLabel is the render metric label shared by every unknown id.
const placeholderLabel = "placeholder"

func renderLabel(id view.ID) string {
	if view.Valid(id) {
		return string(id)
	}
	return placeholderLabel
}

// getView answers unknown ids with the placeholder rendering, as the
// terminal dashboard does.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	id := view.ID(chi.URLParam(r, "id"))
	s.metrics.RecordRender(renderLabel(id))

	rendering, nonFinite := view.Sanitized(s.renderer.Render(id))
	if nonFinite {
		s.logger.Warn("Non-finite values replaced with zero", zap.String("view", string(id)))
	}
	s.writeJSON(w, http.StatusOK, rendering)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	rep, nonFinite := report.Sanitized(report.Build(s.data, s.factors, s.now()))
	if len(nonFinite) > 0 {
		s.logger.Warn("Non-finite values replaced with zero", zap.Strings("months", nonFinite))
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) queryReport(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	result, err := report.Query(report.Build(s.data, s.factors, s.now()), path)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"path": path, "result": result})
}

// defaultLogLimit caps /api/logs when no limit is given.
const defaultLogLimit = 100

func (s *Server) recentLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	total, spilled := s.logs.GetStats()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"entries": s.logs.GetRecentLogs(limit),
		"total":   total,
		"spilled": spilled,
	})
}

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	id := view.ID(chi.URLParam(r, "id"))
	if !view.Valid(id) {
		http.NotFound(w, r)
		return
	}

	s.metrics.RecordRender(renderLabel(id))
	var buf bytes.Buffer
	if err := s.charts.Render(s.renderer.Render(id), &buf); err != nil {
		s.logger.Error("Chart render failed", zap.String("view", string(id)), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
