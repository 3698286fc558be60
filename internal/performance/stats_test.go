package performance

import (
	"testing"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeBalances(t *testing.T) {
	summary := SummarizeBalances(dataset.Default().Balances)

	assert.Equal(t, "100000.00", summary.Initial.StringFixed(2))
	assert.Equal(t, "252534.13", summary.Final.StringFixed(2))
	assert.InDelta(t, 152534.13, summary.TotalGrowth.InexactFloat64(), 0.01)
	assert.InDelta(t, 152.53, summary.TotalReturnPercent, 0.01)

	assert.Equal(t, BalanceSummary{}, SummarizeBalances(nil))
}

func TestSummarizeMonthly(t *testing.T) {
	monthly := Monthly(dataset.Default().Balances, FixedFactor(0.5))

	stats := SummarizeMonthly(monthly)
	assert.Equal(t, Extreme{Value: 9.46, Month: "Feb 2025"}, stats.Highest)
	assert.Equal(t, Extreme{Value: 6.2, Month: "Jun 2024"}, stats.Lowest)
	assert.InDelta(t, 7.39, stats.Average, 0.005)
	assert.Equal(t, Share{Count: 13, Total: 13, Percent: 100}, stats.PositiveMonths)
}

func TestSummarizeMonthlyTiesKeepEarliest(t *testing.T) {
	stats := SummarizeMonthly([]MonthlyPerformance{
		{Month: "a", Strategy: 2},
		{Month: "b", Strategy: 2},
		{Month: "c", Strategy: -1},
	})
	assert.Equal(t, "a", stats.Highest.Month)
	assert.Equal(t, "c", stats.Lowest.Month)
	assert.Equal(t, 2, stats.PositiveMonths.Count)
	assert.InDelta(t, 66.67, stats.PositiveMonths.Percent, 0.01)
}

func TestSummarizeComparison(t *testing.T) {
	points := []ComparisonPoint{
		{Month: "a", Outperformance: 1.5},
		{Month: "b", Outperformance: -0.5},
		{Month: "c", Outperformance: 3},
		{Month: "d", Outperformance: 0},
	}

	stats := SummarizeComparison(points)
	assert.InDelta(t, 1.0, stats.Average, 1e-9)
	assert.Equal(t, Extreme{Value: 3, Month: "c"}, stats.Highest)
	assert.Equal(t, Share{Count: 2, Total: 4, Percent: 50}, stats.MonthsAhead)

	assert.Equal(t, ComparisonStats{}, SummarizeComparison(nil))
}

func TestSummarizeCumulative(t *testing.T) {
	summary := SummarizeCumulative([]CumulativePoint{
		{Month: "a"},
		{Month: "b", StrategyProfit: 152.53, GoldProfit: 28.82},
	})
	assert.Equal(t, 152.53, summary.FinalStrategy)
	assert.Equal(t, 28.82, summary.FinalGold)
	assert.InDelta(t, 123.71, summary.Outperformance, 1e-9)
}

func TestAxisHelpers(t *testing.T) {
	ticks := BalanceTicks()
	assert.Len(t, ticks, 17)
	assert.Equal(t, 100000.0, ticks[0])
	assert.Equal(t, 260000.0, ticks[len(ticks)-1])

	assert.Equal(t, 160.0, CumulativeAxisMax(152.53))
	assert.Equal(t, 150.0, CumulativeAxisMax(150))

	monthly := Monthly(dataset.Default().Balances, FixedFactor(0.5))
	assert.Equal(t, 10.0, MonthlyAxisMax(monthly))
	assert.Equal(t, 0.0, MonthlyAxisMax(nil))
}
