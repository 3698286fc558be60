// internal/dataset/dataset.go
package dataset

import (
	"github.com/shopspring/decimal"
)

// MonthlyBalance is the account balance at the start and end of one month.
type MonthlyBalance struct {
	Month string          `json:"month" yaml:"month"`
	Start decimal.Decimal `json:"start_balance" yaml:"start_balance"`
	End   decimal.Decimal `json:"end_balance" yaml:"end_balance"`
}

// RiskMetric is one spoke of the risk radar. Values are already rescaled to
// fit ScaleMax (win rate divided by ten, drawdown inverted and so on).
type RiskMetric struct {
	Name     string  `json:"metric" yaml:"metric"`
	Value    float64 `json:"value" yaml:"value"`
	ScaleMax float64 `json:"full_mark" yaml:"full_mark"`
}

// NetProfit holds the headline figures reported by the account statement.
type NetProfit struct {
	InitialCapital     decimal.Decimal `json:"initial_capital" yaml:"initial_capital"`
	TotalNetProfit     decimal.Decimal `json:"total_net_profit" yaml:"total_net_profit"`
	TotalReturnPercent float64         `json:"total_return_percent" yaml:"total_return_percent"`
}

// StatRow is a single label/value line of a statistics table.
type StatRow struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// StatTable groups statistics rows under a title.
type StatTable struct {
	Title string    `json:"title" yaml:"title"`
	Rows  []StatRow `json:"rows" yaml:"rows"`
}

// Meta is the static text around the dashboard.
type Meta struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	Footer   string `json:"footer" yaml:"footer"`
}

// Dataset bundles every literal the dashboard is built from.
type Dataset struct {
	Meta      Meta             `json:"meta" yaml:"meta"`
	NetProfit NetProfit        `json:"net_profit" yaml:"net_profit"`
	Balances  []MonthlyBalance `json:"balances" yaml:"balances"`
	Risk      []RiskMetric     `json:"risk_metrics" yaml:"risk_metrics"`
	KeyStats  []StatTable      `json:"key_statistics" yaml:"key_statistics"`
}

func usd(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// Default returns the XAU strategy report covering January 2024 to February 2025.
// Every call returns fresh slices, so callers may modify the result.
func Default() Dataset {
	return Dataset{
		Meta: Meta{
			Title:    "XAU Trading Strategy Performance Dashboard",
			Subtitle: "Vantage International Group Limited | Initial Capital: $100,000 | Leverage: 1:100",
			Footer:   "XAU Trading Strategy Performance Report | Data Period: January 2024 - February 2025 | Report Generated: April 18, 2025",
		},
		NetProfit: NetProfit{
			InitialCapital:     usd("100000"),
			TotalNetProfit:     usd("152534.13"),
			TotalReturnPercent: 152.53,
		},
		Balances: []MonthlyBalance{
			{Month: "Jan 2024", Start: usd("100000.00"), End: usd("100000.00")},
			{Month: "Feb 2024", Start: usd("100000.00"), End: usd("108200.00")},
			{Month: "Mar 2024", Start: usd("108200.00"), End: usd("116600.00")},
			{Month: "Apr 2024", Start: usd("116600.00"), End: usd("124900.00")},
			{Month: "May 2024", Start: usd("124900.00"), End: usd("133800.00")},
			{Month: "Jun 2024", Start: usd("133800.00"), End: usd("142100.00")},
			{Month: "Jul 2024", Start: usd("142100.00"), End: usd("151800.00")},
			{Month: "Aug 2024", Start: usd("151800.00"), End: usd("161900.00")},
			{Month: "Sep 2024", Start: usd("161900.00"), End: usd("172600.00")},
			{Month: "Oct 2024", Start: usd("172600.00"), End: usd("183800.00")},
			{Month: "Nov 2024", Start: usd("183800.00"), End: usd("196500.00")},
			{Month: "Dec 2024", Start: usd("196500.00"), End: usd("211300.00")},
			{Month: "Jan 2025", Start: usd("211300.00"), End: usd("230700.00")},
			{Month: "Feb 2025", Start: usd("230700.00"), End: usd("252534.13")},
		},
		Risk: []RiskMetric{
			{Name: "Sharpe Ratio", Value: 11.00, ScaleMax: 12},
			{Name: "Recovery Factor", Value: 6.21, ScaleMax: 7},
			{Name: "Profit Factor", Value: 1.64, ScaleMax: 3},
			{Name: "Win Rate", Value: 7.48, ScaleMax: 10},
			{Name: "Drawdown Control", Value: 8.09, ScaleMax: 10},
			{Name: "LR Correlation", Value: 9.6, ScaleMax: 10},
		},
		KeyStats: []StatTable{
			{
				Title: "Returns",
				Rows: []StatRow{
					{Label: "Total Return", Value: "152.53%"},
					{Label: "Net Profit", Value: "$152,534.13"},
					{Label: "Gross Profit", Value: "$389,623.23"},
					{Label: "Gross Loss", Value: "-$237,089.10"},
				},
			},
			{
				Title: "Risk Metrics",
				Rows: []StatRow{
					{Label: "Sharpe Ratio", Value: "11.00"},
					{Label: "Max Drawdown", Value: "11.91%"},
					{Label: "Profit Factor", Value: "1.64"},
					{Label: "Recovery Factor", Value: "6.21"},
				},
			},
			{
				Title: "Trade Statistics",
				Rows: []StatRow{
					{Label: "Total Trades", Value: "297"},
					{Label: "Win Rate", Value: "74.75%"},
					{Label: "Long Win Rate", Value: "76.22%"},
					{Label: "Short Win Rate", Value: "72.93%"},
				},
			},
			{
				Title: "Trade Management",
				Rows: []StatRow{
					{Label: "Consecutive Wins", Value: "11 max"},
					{Label: "Consecutive Losses", Value: "4 max"},
					{Label: "Avg Position Time", Value: "2h 14m"},
					{Label: "Expected Payoff", Value: "$513.58"},
				},
			},
		},
	}
}

// Initial returns the first start balance, or zero for an empty series.
func (d Dataset) Initial() decimal.Decimal {
	if len(d.Balances) == 0 {
		return decimal.Zero
	}
	return d.Balances[0].Start
}

// Final returns the last end balance, or zero for an empty series.
func (d Dataset) Final() decimal.Decimal {
	if len(d.Balances) == 0 {
		return decimal.Zero
	}
	return d.Balances[len(d.Balances)-1].End
}
