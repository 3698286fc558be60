// Package performance derives the return series shown by the dashboard from
// the literal monthly balances.
//
// All functions are pure apart from the gold factors, which come from a
// FactorSource. A zero start balance is not guarded: the resulting ±Inf or NaN
// is carried through every derived series untouched.
package performance

import (
	"math"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/shopspring/decimal"
)

// MonthlyPerformance is the return of one month for the strategy and the gold benchmark.
type MonthlyPerformance struct {
	Month    string  `json:"month" yaml:"month"`
	Strategy float64 `json:"strategy" yaml:"strategy"`
	Gold     float64 `json:"gold" yaml:"gold"`
}

// CumulativePoint is the running profit since the initial capital.
type CumulativePoint struct {
	Month           string  `json:"month" yaml:"month"`
	StrategyProfit  float64 `json:"strategy_profit" yaml:"strategy_profit"`
	GoldProfit      float64 `json:"gold_profit" yaml:"gold_profit"`
	StrategyMonthly float64 `json:"strategy_monthly" yaml:"strategy_monthly"`
	GoldMonthly     float64 `json:"gold_monthly" yaml:"gold_monthly"`
}

// ComparisonPoint is the monthly spread between strategy and benchmark.
type ComparisonPoint struct {
	Month          string  `json:"month" yaml:"month"`
	Outperformance float64 `json:"outperformance" yaml:"outperformance"`
	Strategy       float64 `json:"strategy" yaml:"strategy"`
	Gold           float64 `json:"gold" yaml:"gold"`
}

// Series holds every derived series for one render.
type Series struct {
	Monthly    []MonthlyPerformance `json:"monthly" yaml:"monthly"`
	Cumulative []CumulativePoint    `json:"cumulative" yaml:"cumulative"`
	Comparison []ComparisonPoint    `json:"comparison" yaml:"comparison"`
}

// Round2 rounds to two decimals. Non-finite values pass through.
func Round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}

func percentChange(from, to decimal.Decimal) float64 {
	f := from.InexactFloat64()
	return (to.InexactFloat64() - f) / f * 100
}

// Monthly computes one entry per balance after the first.
func Monthly(balances []dataset.MonthlyBalance, src FactorSource) []MonthlyPerformance {
	if len(balances) < 2 {
		return []MonthlyPerformance{}
	}

	months := balances[1:]
	factors := src.Factors(len(months))
	out := make([]MonthlyPerformance, len(months))
	for i, b := range months {
		ret := percentChange(b.Start, b.End)
		out[i] = MonthlyPerformance{
			Month:    b.Month,
			Strategy: Round2(ret),
			Gold:     Round2(ret * factors[i]),
		}
	}
	return out
}

// Cumulative builds the running profit series. The first month is the zero
// point; the gold line accumulates discounted monthly gold returns.
func Cumulative(balances []dataset.MonthlyBalance, monthly []MonthlyPerformance) []CumulativePoint {
	if len(balances) == 0 {
		return []CumulativePoint{}
	}

	out := make([]CumulativePoint, 0, len(balances))
	out = append(out, CumulativePoint{Month: balances[0].Month})

	initial := balances[0].Start
	for i, b := range balances[1:] {
		if i >= len(monthly) {
			break
		}
		prevGold := out[i].GoldProfit
		m := monthly[i]
		out = append(out, CumulativePoint{
			Month:           b.Month,
			StrategyProfit:  Round2(percentChange(initial, b.End)),
			GoldProfit:      Round2(prevGold + m.Gold*GoldCumulativeWeight),
			StrategyMonthly: m.Strategy,
			GoldMonthly:     m.Gold,
		})
	}
	return out
}

// Comparison computes the monthly outperformance over gold.
func Comparison(monthly []MonthlyPerformance) []ComparisonPoint {
	out := make([]ComparisonPoint, len(monthly))
	for i, m := range monthly {
		out[i] = ComparisonPoint{
			Month:          m.Month,
			Outperformance: Round2(m.Strategy - m.Gold),
			Strategy:       m.Strategy,
			Gold:           m.Gold,
		}
	}
	return out
}

// Derive runs the whole calculation once. Factors are drawn exactly once, so
// the three series agree with each other.
func Derive(balances []dataset.MonthlyBalance, src FactorSource) Series {
	monthly := Monthly(balances, src)
	return Series{
		Monthly:    monthly,
		Cumulative: Cumulative(balances, monthly),
		Comparison: Comparison(monthly),
	}
}

// StrategyReturns extracts the strategy column.
func StrategyReturns(monthly []MonthlyPerformance) []float64 {
	out := make([]float64, len(monthly))
	for i, m := range monthly {
		out[i] = m.Strategy
	}
	return out
}

// GoldReturns extracts the gold column.
func GoldReturns(monthly []MonthlyPerformance) []float64 {
	out := make([]float64, len(monthly))
	for i, m := range monthly {
		out[i] = m.Gold
	}
	return out
}
