package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func buildFixed() Report {
	return Build(dataset.Default(), performance.FixedFactor(0.5), fixedNow)
}

func TestBuild(t *testing.T) {
	r := buildFixed()

	assert.Equal(t, fixedNow, r.GeneratedAt)
	assert.Len(t, r.Balances, 14)
	assert.Len(t, r.Monthly, 13)
	assert.Len(t, r.Cumulative, 14)
	assert.Len(t, r.Comparison, 13)
	assert.Len(t, r.Risk, 6)
	assert.Len(t, r.Tables, 4)
	assert.InDelta(t, 152.53, r.Summaries.Balances.TotalReturnPercent, 0.01)
	assert.Equal(t, "Feb 2025", r.Summaries.Monthly.Highest.Month)
	assert.Equal(t, 152.53, r.Summaries.Cumulative.FinalStrategy)
}

func TestRows(t *testing.T) {
	rows := buildFixed().Rows()
	require.Len(t, rows, 14)

	assert.False(t, rows[0].HasReturns)
	assert.Equal(t, "100000.00", rows[0].Start)
	assert.Equal(t, 0.0, rows[0].CumulativeStrategy)

	assert.True(t, rows[1].HasReturns)
	assert.Equal(t, 8.2, rows[1].Strategy)
	assert.Equal(t, 4.1, rows[1].Gold)
	assert.Equal(t, 4.1, rows[1].Outperformance)

	assert.Equal(t, "252534.13", rows[13].End)
	assert.Equal(t, 152.53, rows[13].CumulativeStrategy)
}

func TestQuery(t *testing.T) {
	r := buildFixed()

	got, err := Query(r, "$.summaries.monthly.highest.month")
	require.NoError(t, err)
	assert.Equal(t, "Feb 2025", got)

	got, err = Query(r, "$.risk_metrics[0].metric")
	require.NoError(t, err)
	assert.Equal(t, "Sharpe Ratio", got)

	got, err = Query(r, "$.monthly[*].strategy")
	require.NoError(t, err)
	list, ok := got.([]any)
	require.True(t, ok)
	assert.Len(t, list, 13)
}

func TestQueryErrors(t *testing.T) {
	r := buildFixed()

	_, err := Query(r, "  ")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Query(r, "$.no_such_key")
	assert.Error(t, err)
}

func TestSanitizedReplacesNonFinite(t *testing.T) {
	ds := dataset.Default()
	ds.Balances = []dataset.MonthlyBalance{
		{Month: "A", Start: decimal.Zero, End: decimal.Zero},
		{Month: "B", Start: decimal.Zero, End: decimal.NewFromInt(10)},
	}
	r := Build(ds, performance.FixedFactor(0.5), fixedNow)

	clean, bad := Sanitized(r)
	assert.Contains(t, bad, "B")
	assert.Equal(t, 0.0, clean.Monthly[0].Strategy)
	assert.NotEqual(t, 0.0, r.Monthly[0].Strategy)

	_, err := Document(r)
	assert.NoError(t, err)
}
