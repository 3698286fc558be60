package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.RecordRender("monthly")
	a.RecordRender("monthly")

	assert.Equal(t, 2.0, testutil.ToFloat64(a.renders.WithLabelValues("monthly")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.renders.WithLabelValues("monthly")))
}

func TestRecordRequestAndExport(t *testing.T) {
	c := NewCollector()

	c.RecordRequest("/api/views/{id}", 200, 5*time.Millisecond)
	c.RecordRequest("", 404, time.Millisecond)
	c.RecordExport("csv", 10*time.Millisecond, true)
	c.RecordExport("pdf", time.Millisecond, false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/views/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exports.WithLabelValues("csv", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exports.WithLabelValues("pdf", "failure")))

	c.Reset()
	assert.Equal(t, 0, testutil.CollectAndCount(c.exports))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordRender("risk")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `xau_dashboard_view_renders_total{view="risk"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
