package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/metrics"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

func newTestServer() *Server {
	return New(Options{
		Dataset: dataset.Default(),
		Factors: performance.FixedFactor(0.5),
		Theme:   style.GoldTheme,
		Logger:  zap.NewNop(),
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer().Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListViews(t *testing.T) {
	rec := get(t, newTestServer().Handler(), "/api/views")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Options  []view.Option `json:"options"`
		Selected view.ID       `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, view.Options(), body.Options)
	assert.Equal(t, view.Balances, body.Selected)
}

func TestGetView(t *testing.T) {
	h := newTestServer().Handler()

	rec := get(t, h, "/api/views/monthly")
	require.Equal(t, http.StatusOK, rec.Code)
	var r view.Rendering
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, view.Monthly, r.ID)
	require.NotNil(t, r.Chart)
	assert.Equal(t, view.ChartComposed, r.Chart.Kind)

	rec = get(t, h, "/api/views/volatility")
	require.Equal(t, http.StatusOK, rec.Code)
	r = view.Rendering{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.True(t, r.IsPlaceholder())
	assert.Nil(t, r.Chart)
}

func TestGetReport(t *testing.T) {
	rec := get(t, newTestServer().Handler(), "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"risk_metrics"`)
	assert.Contains(t, rec.Body.String(), `"key_statistics"`)
}

func TestQueryReport(t *testing.T) {
	h := newTestServer().Handler()

	rec := get(t, h, "/api/report/query?path=$.meta.title")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "XAU Trading Strategy Performance Dashboard", body["result"])

	rec = get(t, h, "/api/report/query")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty jsonpath")
}

func TestGetChart(t *testing.T) {
	h := newTestServer().Handler()

	rec := get(t, h, "/charts/cumulative.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)

	rec = get(t, h, "/charts/volatility.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := newTestServer()
	s.addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRecentLogs(t *testing.T) {
	buf, err := logger.NewLogBuffer(10, "", zap.NewNop())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, buf.Add("info", "Report exported", nil))
	}

	h := New(Options{Dataset: dataset.Default(), Factors: performance.FixedFactor(0.5), Logs: buf}).Handler()

	rec := get(t, h, "/api/logs?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Entries []logger.LogEntry `json:"entries"`
		Total   uint64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Entries, 2)
	assert.EqualValues(t, 3, body.Total)

	rec = get(t, h, "/api/logs?limit=many")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, newTestServer().Handler(), "/api/logs")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	collector := metrics.NewCollector()
	h := New(Options{Dataset: dataset.Default(), Factors: performance.FixedFactor(0.5), Metrics: collector}).Handler()

	get(t, h, "/api/views/risk")
	get(t, h, "/api/views/risk")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `xau_dashboard_http_requests_total{route="/api/views/{id}",status="200"} 2`)
	assert.Contains(t, body, `xau_dashboard_view_renders_total{view="risk"} 2`)
}

func TestRenderMetricLabelsStayBounded(t *testing.T) {
	collector := metrics.NewCollector()
	h := New(Options{Dataset: dataset.Default(), Factors: performance.FixedFactor(0.5), Metrics: collector}).Handler()

	for i := 0; i < 50; i++ {
		rec := get(t, h, "/api/views/bogus-"+strconv.Itoa(i))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	get(t, h, "/api/views/monthly")
	get(t, h, "/charts/bogus.png")

	count, err := testutil.GatherAndCount(collector.Registry(), "xau_dashboard_view_renders_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := get(t, h, "/metrics")
	assert.Contains(t, rec.Body.String(), `xau_dashboard_view_renders_total{view="placeholder"} 50`)
	assert.Contains(t, rec.Body.String(), `xau_dashboard_view_renders_total{view="monthly"} 1`)
}

func TestZeroStartBalanceStillEncodes(t *testing.T) {
	ds := dataset.Default()
	ds.Balances[1].Start = decimal.Zero

	core, logs := observer.New(zapcore.WarnLevel)
	h := New(Options{Dataset: ds, Factors: performance.FixedFactor(0.5), Logger: zap.New(core)}).Handler()

	for _, id := range []view.ID{view.Monthly, view.Cumulative, view.Comparison} {
		rec := get(t, h, "/api/views/"+string(id))
		require.Equal(t, http.StatusOK, rec.Code, id)

		var r view.Rendering
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
		require.NotNil(t, r.Chart)
		assert.Equal(t, id, r.ID)
	}

	rec := get(t, h, "/api/views/monthly")
	var r view.Rendering
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, 0.0, r.Chart.Series[0].Values[0])

	rec = get(t, h, "/api/report")
	assert.Equal(t, http.StatusOK, rec.Code)

	warned := logs.FilterMessage("Non-finite values replaced with zero")
	assert.GreaterOrEqual(t, warned.FilterField(zap.String("view", "monthly")).Len(), 1)
	var months []string
	for _, e := range warned.All() {
		if m, ok := e.ContextMap()["months"].([]interface{}); ok {
			for _, v := range m {
				months = append(months, v.(string))
			}
		}
	}
	assert.Contains(t, months, "Feb 2024")
}
