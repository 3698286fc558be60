// Package report assembles the dataset and every derived series into one
// document that exports, the HTTP API and JSONPath queries share.
package report

import (
	"time"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
)

// Summaries groups the figures shown on the summary cards.
type Summaries struct {
	Balances   performance.BalanceSummary    `json:"balances" yaml:"balances"`
	Monthly    performance.MonthlyStats      `json:"monthly" yaml:"monthly"`
	Comparison performance.ComparisonStats   `json:"comparison" yaml:"comparison"`
	Cumulative performance.CumulativeSummary `json:"cumulative" yaml:"cumulative"`
}

// Report is a snapshot of the dashboard with one draw of the gold benchmark.
type Report struct {
	GeneratedAt time.Time                        `json:"generated_at" yaml:"generated_at"`
	Meta        dataset.Meta                     `json:"meta" yaml:"meta"`
	NetProfit   dataset.NetProfit                `json:"net_profit" yaml:"net_profit"`
	Balances    []dataset.MonthlyBalance         `json:"balances" yaml:"balances"`
	Monthly     []performance.MonthlyPerformance `json:"monthly" yaml:"monthly"`
	Cumulative  []performance.CumulativePoint    `json:"cumulative" yaml:"cumulative"`
	Comparison  []performance.ComparisonPoint    `json:"comparison" yaml:"comparison"`
	Risk        []dataset.RiskMetric             `json:"risk_metrics" yaml:"risk_metrics"`
	Tables      []dataset.StatTable              `json:"key_statistics" yaml:"key_statistics"`
	Summaries   Summaries                        `json:"summaries" yaml:"summaries"`
}

// Build derives the series once and collects them with the literals.
func Build(ds dataset.Dataset, src performance.FactorSource, now time.Time) Report {
	series := performance.Derive(ds.Balances, src)
	return Report{
		GeneratedAt: now,
		Meta:        ds.Meta,
		NetProfit:   ds.NetProfit,
		Balances:    ds.Balances,
		Monthly:     series.Monthly,
		Cumulative:  series.Cumulative,
		Comparison:  series.Comparison,
		Risk:        ds.Risk,
		Tables:      ds.KeyStats,
		Summaries: Summaries{
			Balances:   performance.SummarizeBalances(ds.Balances),
			Monthly:    performance.SummarizeMonthly(series.Monthly),
			Comparison: performance.SummarizeComparison(series.Comparison),
			Cumulative: performance.SummarizeCumulative(series.Cumulative),
		},
	}
}

// Row is one month of the flat per-month table used by CSV and markdown.
type Row struct {
	Month              string
	Start              string
	End                string
	Strategy           float64
	Gold               float64
	CumulativeStrategy float64
	CumulativeGold     float64
	Outperformance     float64

	// HasReturns is false for the first month, which has no monthly return.
	HasReturns bool
}

// Rows joins balances with the derived series by position.
func (r Report) Rows() []Row {
	rows := make([]Row, len(r.Balances))
	for i, b := range r.Balances {
		row := Row{
			Month: b.Month,
			Start: b.Start.StringFixed(2),
			End:   b.End.StringFixed(2),
		}
		if i < len(r.Cumulative) {
			row.CumulativeStrategy = r.Cumulative[i].StrategyProfit
			row.CumulativeGold = r.Cumulative[i].GoldProfit
		}
		if i > 0 && i-1 < len(r.Monthly) {
			m := r.Monthly[i-1]
			row.Strategy = m.Strategy
			row.Gold = m.Gold
			row.HasReturns = true
			if i-1 < len(r.Comparison) {
				row.Outperformance = r.Comparison[i-1].Outperformance
			}
		}
		rows[i] = row
	}
	return rows
}
