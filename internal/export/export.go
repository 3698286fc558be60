package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rovshanmuradov/xau-dashboard/internal/report"
)

// ErrUnsupportedFormat is returned for a format outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents the export file format
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatYAML, FormatMarkdown, FormatHTML}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Options configures the export behavior
type Options struct {
	Format    Format
	OutputDir string
}

// Exporter writes reports to disk.
type Exporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExporter creates a new report exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{
		logger: logger.Named("export"),
		now:    time.Now,
	}
}

// Export writes r in the requested format and returns the file path.
func (e *Exporter) Export(r report.Report, options Options) (string, error) {
	write, err := e.writerFor(options.Format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.NewString()
	clean, nonFinite := report.Sanitized(r)
	if len(nonFinite) > 0 {
		e.logger.Warn("Non-finite values replaced with zero",
			zap.String("run_id", runID),
			zap.Strings("months", nonFinite))
	}

	outputPath := filepath.Join(options.OutputDir, e.Filename(options.Format))
	if err := write(clean, outputPath); err != nil {
		return "", err
	}

	e.logger.Info("Report exported",
		zap.String("run_id", runID),
		zap.String("file", outputPath),
		zap.Int("months", len(r.Balances)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (e *Exporter) writerFor(f Format) (func(report.Report, string) error, error) {
	switch f {
	case FormatJSON:
		return e.exportToJSON, nil
	case FormatCSV:
		return e.exportToCSV, nil
	case FormatYAML:
		return e.exportToYAML, nil
	case FormatMarkdown:
		return e.exportToMarkdown, nil
	case FormatHTML:
		return e.exportToHTML, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Filename builds xau_report_<YYYYMMDD_HHMMSS>.<ext>.
func (e *Exporter) Filename(f Format) string {
	return fmt.Sprintf("xau_report_%s.%s", e.now().Format("20060102_150405"), f.Extension())
}

// CSVHeaders returns the column names of the per-month CSV.
func CSVHeaders() []string {
	return []string{
		"month",
		"start_balance",
		"end_balance",
		"strategy_return_pct",
		"gold_return_pct",
		"cumulative_strategy_pct",
		"cumulative_gold_pct",
		"outperformance_pct",
	}
}

func rowToCSV(row report.Row) []string {
	pct := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	out := []string{row.Month, row.Start, row.End, "", "", pct(row.CumulativeStrategy), pct(row.CumulativeGold), ""}
	if row.HasReturns {
		out[3] = pct(row.Strategy)
		out[4] = pct(row.Gold)
		out[7] = pct(row.Outperformance)
	}
	return out
}

// exportToCSV exports the per-month table to CSV format
func (e *Exporter) exportToCSV(r report.Report, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range r.Rows() {
		if err := writer.Write(rowToCSV(row)); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.Month, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// exportToJSON exports the full report to JSON format
func (e *Exporter) exportToJSON(r report.Report, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (e *Exporter) exportToYAML(r report.Report, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create YAML file: %w", err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

func (e *Exporter) exportToMarkdown(r report.Report, outputPath string) error {
	if err := os.WriteFile(outputPath, []byte(Markdown(r)), 0644); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func (e *Exporter) exportToHTML(r report.Report, outputPath string) error {
	body, err := HTML(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, body, 0644); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}

// HTML renders the markdown report into a standalone HTML page.
func HTML(r report.Report) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", r.Meta.Title)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
