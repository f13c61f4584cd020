// Package report writes the emotion summary as a Markdown or PDF document.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/circumplex/internal/assets"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/pdf"
	"github.com/at-ishikawa/circumplex/internal/statistics"
)

// Data is what the report template renders.
type Data struct {
	GeneratedAt time.Time
	// Scope describes the filter the report covers, e.g. "the last 30 days".
	Scope   string
	Summary statistics.Summary
	// Trend is nil when there is not enough history.
	Trend   *statistics.Trend
	Periods []statistics.PeriodStatistics
}

// Build aggregates entries into report data.
func Build(entries []emotionlog.Entry, scope string, generatedAt time.Time) (Data, error) {
	data := Data{
		GeneratedAt: generatedAt,
		Scope:       scope,
		Summary:     statistics.Summarize(entries, statistics.DefaultTopN),
		Periods:     statistics.CalculatePeriods(entries, 0, 0).Periods,
	}

	trend, err := statistics.AnalyzeTrend(entries)
	switch {
	case err == nil:
		data.Trend = &trend
	case errors.Is(err, statistics.ErrNotEnoughHistory):
	default:
		return Data{}, fmt.Errorf("statistics.AnalyzeTrend() > %w", err)
	}
	return data, nil
}

// Writer renders reports from a Markdown template.
type Writer struct {
	templatePath string
}

// NewWriter uses the template at templatePath, or the embedded one when it
// is empty or unusable.
func NewWriter(templatePath string) *Writer {
	return &Writer{templatePath: templatePath}
}

// WriteMarkdown renders data as Markdown to w.
func (rw *Writer) WriteMarkdown(w io.Writer, data Data) error {
	tmpl, err := assets.ParseReportTemplate(rw.templatePath)
	if err != nil {
		return fmt.Errorf("assets.ParseReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// Format is the output type of a saved report.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts "md", "markdown" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("invalid report format %q, valid values are %q or %q", s, FormatMarkdown, FormatPDF)
}

// Save writes the report into dir and returns the path of the written file.
// PDF reports are rendered from the same Markdown.
func (rw *Writer) Save(dir string, data Data, format Format) (string, error) {
	if format != FormatMarkdown && format != FormatPDF {
		return "", fmt.Errorf("unsupported report format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	var buf bytes.Buffer
	if err := rw.WriteMarkdown(&buf, data); err != nil {
		return "", err
	}

	name := fmt.Sprintf("emotion-report-%s", data.GeneratedAt.Format("2006-01-02"))
	path := filepath.Join(dir, name+"."+string(format))
	switch format {
	case FormatPDF:
		if err := pdf.RenderMarkdown(buf.Bytes(), path); err != nil {
			return "", fmt.Errorf("pdf.RenderMarkdown() > %w", err)
		}
	default:
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
	}

	slog.Default().Info("report saved",
		slog.String("path", path),
		slog.Int("entries", data.Summary.Total),
	)
	return path, nil
}
