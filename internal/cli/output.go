package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

type exportCmd struct {
	app    *App
	format string
	out    string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the report as json, csv, yaml, markdown or html" }
func (*exportCmd) Usage() string {
	return `xaureport export [-format <fmt>] [-out <dir>]

  Defaults come from export.format and export.dir in the config.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Output format (json, csv, yaml, markdown, html).")
	f.StringVar(&c.out, "out", "", "Output directory.")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	name := rt.cfg.Export.Format
	if c.format != "" {
		name = c.format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		fmt.Fprintln(c.app.stderr, err)
		return subcommands.ExitUsageError
	}
	dir := rt.cfg.Export.Dir
	if c.out != "" {
		dir = c.out
	}

	path, err := export.NewExporter(rt.logger).Export(
		report.Build(rt.data, rt.factors, time.Now()),
		export.Options{Format: format, OutputDir: dir})
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.stdout, path)
	return subcommands.ExitSuccess
}

type chartsCmd struct {
	app   *App
	out   string
	theme string
	width int
}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "write one PNG chart per view" }
func (*chartsCmd) Usage() string {
	return `xaureport charts [-out <dir>] [-theme gold|navy] [-width <px>]
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "", "Output directory; defaults to export.dir.")
	f.StringVar(&c.theme, "theme", "", "Chart theme; defaults to the configured theme.")
	f.IntVar(&c.width, "width", export.ChartWidth, "Image width in pixels.")
}

func (c *chartsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rt, err := c.app.load()
	if err != nil {
		return c.app.fail(err)
	}

	theme := rt.theme
	if c.theme != "" {
		if theme, err = style.ThemeByName(c.theme); err != nil {
			fmt.Fprintln(c.app.stderr, err)
			return subcommands.ExitUsageError
		}
	}
	dir := rt.cfg.Export.Dir
	if c.out != "" {
		dir = c.out
	}

	charts := export.NewChartRenderer(rt.logger, theme).WithSize(c.width, c.width/2)
	paths, err := charts.ExportCharts(view.NewRenderer(rt.data, rt.factors), dir)
	if err != nil {
		return c.app.fail(err)
	}
	for _, p := range paths {
		fmt.Fprintln(c.app.stdout, p)
	}
	return subcommands.ExitSuccess
}
