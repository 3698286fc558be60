package performance

import (
	"math"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/shopspring/decimal"
)

// BalanceSummary backs the cards under the balances chart.
type BalanceSummary struct {
	Initial            decimal.Decimal `json:"initial_balance" yaml:"initial_balance"`
	Final              decimal.Decimal `json:"final_balance" yaml:"final_balance"`
	TotalGrowth        decimal.Decimal `json:"total_growth" yaml:"total_growth"`
	TotalReturnPercent float64         `json:"total_return_percent" yaml:"total_return_percent"`
}

// SummarizeBalances compares the first start balance with the last end balance.
func SummarizeBalances(balances []dataset.MonthlyBalance) BalanceSummary {
	if len(balances) == 0 {
		return BalanceSummary{}
	}
	initial := balances[0].Start
	final := balances[len(balances)-1].End
	return BalanceSummary{
		Initial:            initial,
		Final:              final,
		TotalGrowth:        final.Sub(initial),
		TotalReturnPercent: (final.InexactFloat64()/initial.InexactFloat64() - 1) * 100,
	}
}

// Extreme is a value together with the month it was observed in.
type Extreme struct {
	Value float64 `json:"value" yaml:"value"`
	Month string  `json:"month" yaml:"month"`
}

// Share is "count of total" with the matching percentage.
type Share struct {
	Count   int     `json:"count" yaml:"count"`
	Total   int     `json:"total" yaml:"total"`
	Percent float64 `json:"percent" yaml:"percent"`
}

func newShare(count, total int) Share {
	s := Share{Count: count, Total: total}
	if total > 0 {
		s.Percent = float64(count) / float64(total) * 100
	}
	return s
}

// MonthlyStats backs the cards under the monthly performance chart.
type MonthlyStats struct {
	Highest        Extreme `json:"highest" yaml:"highest"`
	Lowest         Extreme `json:"lowest" yaml:"lowest"`
	Average        float64 `json:"average" yaml:"average"`
	PositiveMonths Share   `json:"positive_months" yaml:"positive_months"`
}

// SummarizeMonthly reports strategy extremes. Ties resolve to the earliest month.
func SummarizeMonthly(monthly []MonthlyPerformance) MonthlyStats {
	if len(monthly) == 0 {
		return MonthlyStats{}
	}

	stats := MonthlyStats{
		Highest: Extreme{Value: monthly[0].Strategy, Month: monthly[0].Month},
		Lowest:  Extreme{Value: monthly[0].Strategy, Month: monthly[0].Month},
	}
	var sum float64
	positive := 0
	for _, m := range monthly {
		sum += m.Strategy
		if m.Strategy > stats.Highest.Value {
			stats.Highest = Extreme{Value: m.Strategy, Month: m.Month}
		}
		if m.Strategy < stats.Lowest.Value {
			stats.Lowest = Extreme{Value: m.Strategy, Month: m.Month}
		}
		if m.Strategy > 0 {
			positive++
		}
	}
	stats.Average = sum / float64(len(monthly))
	stats.PositiveMonths = newShare(positive, len(monthly))
	return stats
}

// ComparisonStats backs the cards under the outperformance chart.
type ComparisonStats struct {
	Average     float64 `json:"average_outperformance" yaml:"average_outperformance"`
	Highest     Extreme `json:"highest_outperformance" yaml:"highest_outperformance"`
	MonthsAhead Share   `json:"months_outperforming" yaml:"months_outperforming"`
}

// SummarizeComparison aggregates the outperformance column.
func SummarizeComparison(points []ComparisonPoint) ComparisonStats {
	if len(points) == 0 {
		return ComparisonStats{}
	}

	stats := ComparisonStats{
		Highest: Extreme{Value: points[0].Outperformance, Month: points[0].Month},
	}
	var sum float64
	ahead := 0
	for _, p := range points {
		sum += p.Outperformance
		if p.Outperformance > stats.Highest.Value {
			stats.Highest = Extreme{Value: p.Outperformance, Month: p.Month}
		}
		if p.Outperformance > 0 {
			ahead++
		}
	}
	stats.Average = sum / float64(len(points))
	stats.MonthsAhead = newShare(ahead, len(points))
	return stats
}

// CumulativeSummary is the final state of the cumulative series.
type CumulativeSummary struct {
	FinalStrategy  float64 `json:"final_strategy_profit" yaml:"final_strategy_profit"`
	FinalGold      float64 `json:"final_gold_profit" yaml:"final_gold_profit"`
	Outperformance float64 `json:"outperformance" yaml:"outperformance"`
}

// SummarizeCumulative reads the last cumulative point.
func SummarizeCumulative(points []CumulativePoint) CumulativeSummary {
	if len(points) == 0 {
		return CumulativeSummary{}
	}
	last := points[len(points)-1]
	return CumulativeSummary{
		FinalStrategy:  last.StrategyProfit,
		FinalGold:      last.GoldProfit,
		Outperformance: last.StrategyProfit - last.GoldProfit,
	}
}

// Axis bounds used by the balances chart.
const (
	BalanceAxisMin  = 90000.0
	BalanceAxisMax  = 260000.0
	BalanceTickFrom = 100000.0
	BalanceTickStep = 10000.0
)

// BalanceTicks returns the y-axis ticks of the balances chart.
func BalanceTicks() []float64 {
	var ticks []float64
	for v := BalanceTickFrom; v <= BalanceAxisMax; v += BalanceTickStep {
		ticks = append(ticks, v)
	}
	return ticks
}

// CumulativeAxisMax rounds the final strategy profit up to the next multiple of ten.
func CumulativeAxisMax(finalStrategy float64) float64 {
	return math.Ceil(finalStrategy/10) * 10
}

// MonthlyAxisMax rounds the best month up to the next even number.
func MonthlyAxisMax(monthly []MonthlyPerformance) float64 {
	if len(monthly) == 0 {
		return 0
	}
	best := monthly[0].Strategy
	for _, m := range monthly[1:] {
		best = math.Max(best, m.Strategy)
	}
	return math.Ceil(best/2) * 2
}
