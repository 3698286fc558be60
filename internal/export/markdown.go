package export

import (
	"fmt"
	"strings"

	"github.com/rovshanmuradov/xau-dashboard/internal/format"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
)

// Markdown renders the report as a markdown document. It is also what the
// summary command prints through glamour.
func Markdown(r report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Meta.Title)
	if r.Meta.Subtitle != "" {
		fmt.Fprintf(&b, "_%s_\n\n", r.Meta.Subtitle)
	}

	writeSummary(&b, r)
	writeMonthlyTable(&b, r)
	writeRisk(&b, r)

	if r.Meta.Footer != "" {
		fmt.Fprintf(&b, "---\n\n%s\n", r.Meta.Footer)
	}
	return b.String()
}

func writeSummary(b *strings.Builder, r report.Report) {
	s := r.Summaries
	b.WriteString("## Summary\n\n")
	b.WriteString("| Figure | Value |\n|---|---|\n")
	rows := [][2]string{
		{"Initial Balance", format.USD(s.Balances.Initial)},
		{"Final Balance", format.USD(s.Balances.Final)},
		{"Total Growth", format.USD(s.Balances.TotalGrowth)},
		{"Total Return", format.Percent(s.Balances.TotalReturnPercent)},
		{"Total Net Profit", format.USD(r.NetProfit.TotalNetProfit)},
		{"Highest Monthly Return", fmt.Sprintf("%s (%s)", format.Percent(s.Monthly.Highest.Value), s.Monthly.Highest.Month)},
		{"Lowest Monthly Return", fmt.Sprintf("%s (%s)", format.Percent(s.Monthly.Lowest.Value), s.Monthly.Lowest.Month)},
		{"Average Monthly Return", format.Percent(s.Monthly.Average)},
		{"Total Gold Return", format.Percent(s.Cumulative.FinalGold)},
		{"Outperformance", format.Percent(s.Cumulative.Outperformance)},
		{"Months Outperforming Gold", format.CountOf(s.Comparison.MonthsAhead.Count, s.Comparison.MonthsAhead.Total, s.Comparison.MonthsAhead.Percent)},
	}
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")
}

func writeMonthlyTable(b *strings.Builder, r report.Report) {
	b.WriteString("## Monthly Performance\n\n")
	b.WriteString("| Month | Start | End | Strategy | Gold | Cumulative | Outperformance |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, row := range r.Rows() {
		strategy, gold, out := "-", "-", "-"
		if row.HasReturns {
			strategy = format.SignedPercent(row.Strategy)
			gold = format.SignedPercent(row.Gold)
			out = format.SignedPercent(row.Outperformance)
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Month, row.Start, row.End, strategy, gold, format.Percent(row.CumulativeStrategy), out)
	}
	b.WriteString("\n")
}

func writeRisk(b *strings.Builder, r report.Report) {
	b.WriteString("## Risk Metrics\n\n")
	b.WriteString("| Metric | Value | Scale |\n|---|---:|---:|\n")
	for _, m := range r.Risk {
		fmt.Fprintf(b, "| %s | %.2f | %.0f |\n", m.Name, m.Value, m.ScaleMax)
	}
	b.WriteString("\n")

	for _, t := range r.Tables {
		fmt.Fprintf(b, "### %s\n\n", t.Title)
		b.WriteString("| | |\n|---|---:|\n")
		for _, row := range t.Rows {
			fmt.Fprintf(b, "| %s | %s |\n", row.Label, row.Value)
		}
		b.WriteString("\n")
	}
}
