package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/component"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

type summaryCmd struct {
	app   *App
	width int
	raw   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the performance report as formatted markdown" }
func (*summaryCmd) Usage() string {
	return `xaureport summary [-width <cols>] [-raw]

  Renders the full report (summary, monthly table, risk metrics and key
  statistics) for the terminal.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.width, "width", 100, "Word wrap width.")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	md := export.Markdown(report.Build(rt.data, rt.factors, time.Now()))
	if c.raw {
		fmt.Fprint(c.app.stdout, md)
		return subcommands.ExitSuccess
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(c.width),
	)
	if err != nil {
		return c.app.fail(err)
	}
	out, err := r.Render(md)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprint(c.app.stdout, out)
	return subcommands.ExitSuccess
}

type viewCmd struct {
	app   *App
	width int
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "draw one dashboard view in the terminal" }
func (*viewCmd) Usage() string {
	return `xaureport view [-width <cols>] <balances|cumulative|monthly|comparison|risk>

  Prints the view's chart, summary cards and tables. An unknown view prints
  the placeholder.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.width, "width", 100, "Output width.")
}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.app.stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	rendering := view.NewRenderer(rt.data, rt.factors).Render(view.ID(f.Arg(0)))
	fmt.Fprintln(c.app.stdout, RenderText(rendering, style.ForTheme(rt.theme), c.width))
	return subcommands.ExitSuccess
}

// RenderText draws a rendering with the terminal components.
func RenderText(r view.Rendering, styles style.Styles, width int) string {
	if r.IsPlaceholder() || r.Chart == nil {
		return styles.Muted.Render(r.Placeholder)
	}

	parts := []string{styles.ChartTitle.Render(r.Title)}
	if r.Chart.Kind == view.ChartRadar {
		parts = append(parts, component.NewRadar(styles).SetSpokes(r.Chart.Spokes).SetWidth(width).View())
	} else {
		parts = append(parts, component.NewChart(styles).SetChart(r.Chart).SetSize(width, 18).View())
	}
	if len(r.Cards) > 0 {
		parts = append(parts, component.Cards(styles, width, r.Cards))
	}
	if len(r.Tables) > 0 {
		parts = append(parts, component.StatTables(styles, width, r.TablesTitle, r.Tables))
	}
	return strings.Join(parts, "\n")
}

type queryCmd struct {
	app  *App
	path string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression against the report" }
func (*queryCmd) Usage() string {
	return `xaureport query -path <expr>

  Example: xaureport query -path '$.summaries.monthly.highest'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "", "JSONPath expression.")
}

func (c *queryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	result, err := report.Query(report.Build(rt.data, rt.factors, time.Now()), c.path)
	if errors.Is(err, report.ErrEmptyPath) {
		fmt.Fprint(c.app.stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	if err != nil {
		return c.app.fail(err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.stdout, string(out))
	return subcommands.ExitSuccess
}

type validateCmd struct {
	app *App
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the balance series for consistency" }
func (*validateCmd) Usage() string {
	return `xaureport validate

  Checks that every month starts at the previous month's end balance.
`
}

func (c *validateCmd) SetFlags(*flag.FlagSet) {}

func (c *validateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	if err := dataset.Validate(rt.data.Balances); err != nil {
		errs := multierr.Errors(err)
		rt.logger.Error("Dataset inconsistent", zap.Int("violations", len(errs)))
		for _, e := range errs {
			fmt.Fprintln(c.app.stdout, e)
		}
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.stdout, "%d months consistent\n", len(rt.data.Balances))
	return subcommands.ExitSuccess
}
