package view

import (
	"fmt"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/format"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
)

// Placeholder is shown for a view id outside the option list.
const Placeholder = "Select a visualization"

// Card is one summary figure under a chart.
type Card struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Rendering is everything needed to draw one view.
type Rendering struct {
	ID          ID                  `json:"id" yaml:"id"`
	Title       string              `json:"title,omitempty" yaml:"title,omitempty"`
	Chart       *Chart              `json:"chart,omitempty" yaml:"chart,omitempty"`
	Cards       []Card              `json:"cards,omitempty" yaml:"cards,omitempty"`
	TablesTitle string              `json:"tables_title,omitempty" yaml:"tables_title,omitempty"`
	Tables      []dataset.StatTable `json:"tables,omitempty" yaml:"tables,omitempty"`
	Placeholder string              `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// IsPlaceholder reports whether the rendering is the unknown-view fallback.
func (r Rendering) IsPlaceholder() bool {
	return r.Placeholder != ""
}

// Renderer maps a view id to its Rendering. The derived series are computed
// again on every call, gold factors included.
type Renderer struct {
	data    dataset.Dataset
	factors performance.FactorSource
}

// NewRenderer creates a renderer over ds drawing gold factors from src.
func NewRenderer(ds dataset.Dataset, src performance.FactorSource) *Renderer {
	return &Renderer{data: ds, factors: src}
}

// Dataset returns the literals the renderer draws from.
func (r *Renderer) Dataset() dataset.Dataset {
	return r.data
}

// Render builds the view. Unknown ids produce the placeholder.
func (r *Renderer) Render(id ID) Rendering {
	series := performance.Derive(r.data.Balances, r.factors)

	switch id {
	case Balances:
		return r.renderBalances()
	case Cumulative:
		return r.renderCumulative(series.Cumulative)
	case Monthly:
		return r.renderMonthly(series.Monthly)
	case Comparison:
		return r.renderComparison(series.Comparison)
	case Risk:
		return r.renderRisk()
	default:
		return Rendering{ID: id, Placeholder: Placeholder}
	}
}

// RenderAll renders every option in display order.
func (r *Renderer) RenderAll() []Rendering {
	opts := Options()
	out := make([]Rendering, len(opts))
	for i, o := range opts {
		out[i] = r.Render(o.ID)
	}
	return out
}

func (r *Renderer) renderBalances() Rendering {
	balances := r.data.Balances
	labels := make([]string, len(balances))
	values := make([]float64, len(balances))
	for i, b := range balances {
		labels[i] = b.Month
		values[i] = b.End.InexactFloat64()
	}

	summary := performance.SummarizeBalances(balances)
	return Rendering{
		ID:    Balances,
		Title: "Monthly Account Balances",
		Chart: &Chart{
			Kind:   ChartLine,
			Labels: labels,
			Series: []Series{
				{Name: "Month-End Balance", Style: StyleLine, Role: RoleStrategy, Values: values},
			},
			YAxis: Axis{
				Label: "Account Balance ($)",
				Min:   performance.BalanceAxisMin,
				Max:   performance.BalanceAxisMax,
				Ticks: performance.BalanceTicks(),
				Unit:  "usd",
			},
		},
		Cards: []Card{
			{Label: "Initial Balance", Value: format.USD(summary.Initial)},
			{Label: "Final Balance", Value: format.USD(summary.Final)},
			{Label: "Total Growth", Value: format.USD(summary.TotalGrowth)},
			{Label: "Total Return", Value: format.Percent(summary.TotalReturnPercent)},
		},
	}
}

func (r *Renderer) renderCumulative(points []performance.CumulativePoint) Rendering {
	labels := make([]string, len(points))
	strategy := make([]float64, len(points))
	gold := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Month
		strategy[i] = p.StrategyProfit
		gold[i] = p.GoldProfit
	}

	summary := performance.SummarizeCumulative(points)
	np := r.data.NetProfit
	return Rendering{
		ID:    Cumulative,
		Title: "Cumulative Performance (% Profit)",
		Chart: &Chart{
			Kind:   ChartArea,
			Labels: labels,
			Series: []Series{
				{Name: "XAU Strategy", Style: StyleArea, Role: RoleStrategy, Values: strategy},
				{Name: "Gold Benchmark", Style: StyleArea, Role: RoleGold, Values: gold},
			},
			YAxis: Axis{
				Label: "Profit %",
				Max:   performance.CumulativeAxisMax(summary.FinalStrategy),
				Unit:  "percent",
			},
		},
		Cards: []Card{
			{Label: "Starting Value", Value: format.USD(np.InitialCapital)},
			{Label: "Final Strategy Value", Value: format.USD(np.InitialCapital.Add(np.TotalNetProfit))},
			{Label: "Total Strategy Return", Value: format.Percent(summary.FinalStrategy)},
			{Label: "Total Gold Return", Value: format.Percent(summary.FinalGold)},
			{Label: "Outperformance", Value: format.Percent(summary.Outperformance)},
		},
	}
}

func (r *Renderer) renderMonthly(monthly []performance.MonthlyPerformance) Rendering {
	labels := make([]string, len(monthly))
	for i, m := range monthly {
		labels[i] = m.Month
	}

	stats := performance.SummarizeMonthly(monthly)
	return Rendering{
		ID:    Monthly,
		Title: "Monthly Performance (%)",
		Chart: &Chart{
			Kind:   ChartComposed,
			Labels: labels,
			Series: []Series{
				{Name: "XAU Strategy", Style: StyleBar, Role: RoleStrategy, Values: performance.StrategyReturns(monthly)},
				{Name: "Gold Benchmark", Style: StyleLine, Role: RoleGold, Values: performance.GoldReturns(monthly)},
			},
			YAxis: Axis{Max: performance.MonthlyAxisMax(monthly), Unit: "percent"},
		},
		Cards: []Card{
			{Label: "Highest Monthly Return", Value: extreme(stats.Highest)},
			{Label: "Lowest Monthly Return", Value: extreme(stats.Lowest)},
			{Label: "Average Monthly Return", Value: format.Percent(stats.Average)},
			{Label: "Positive Months", Value: format.CountOf(stats.PositiveMonths.Count, stats.PositiveMonths.Total, stats.PositiveMonths.Percent)},
		},
	}
}

func (r *Renderer) renderComparison(points []performance.ComparisonPoint) Rendering {
	labels := make([]string, len(points))
	out := make([]float64, len(points))
	strategy := make([]float64, len(points))
	gold := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Month
		out[i] = p.Outperformance
		strategy[i] = p.Strategy
		gold[i] = p.Gold
	}

	stats := performance.SummarizeComparison(points)
	return Rendering{
		ID:    Comparison,
		Title: "Monthly Outperformance vs Gold",
		Chart: &Chart{
			Kind:   ChartComposed,
			Labels: labels,
			Series: []Series{
				{Name: "Outperformance", Style: StyleBar, Role: RoleOutperformance, Values: out},
				{Name: "Strategy", Style: StyleLine, Role: RoleStrategy, Values: strategy},
				{Name: "Gold", Style: StyleLine, Role: RoleGold, Values: gold},
			},
			YAxis: Axis{Auto: true, Unit: "percent"},
		},
		Cards: []Card{
			{Label: "Average Outperformance", Value: format.Percent(stats.Average)},
			{Label: "Highest Outperformance", Value: extreme(stats.Highest)},
			{Label: "Months Outperforming Gold", Value: format.CountOf(stats.MonthsAhead.Count, stats.MonthsAhead.Total, stats.MonthsAhead.Percent)},
		},
	}
}

// riskRadiusMax is the shared radial domain of the radar.
const riskRadiusMax = 12

func (r *Renderer) renderRisk() Rendering {
	spokes := make([]Spoke, len(r.data.Risk))
	for i, m := range r.data.Risk {
		spokes[i] = Spoke{Name: m.Name, Value: m.Value, Max: m.ScaleMax}
	}

	return Rendering{
		ID:    Risk,
		Title: "Risk Metrics Overview",
		Chart: &Chart{
			Kind:   ChartRadar,
			Spokes: spokes,
			YAxis:  Axis{Max: riskRadiusMax},
		},
		TablesTitle: "Key Performance Statistics",
		Tables:      r.data.KeyStats,
	}
}

func extreme(e performance.Extreme) string {
	return fmt.Sprintf("%s (%s)", format.Percent(e.Value), e.Month)
}
