// package formatter shapes ranked artists into fixed-size reports and writes them as spreadsheets, CSV, Markdown, or
// terminal tables
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
)

// Header labels of every report
var Header = [2]string{"Artist", "Playlist Entries"}

// ReportSink renders a report as an artifact and returns where it was written (empty for non-file sinks).
type ReportSink interface {
	Render(report *models.Report) (string, error)
}

// BuildReport shapes entries into a report with exactly rows data rows.
//
// Row i carries entries[i] when it exists and is blank otherwise; entries past rows are dropped.
// Bands alternate starting with [models.BandPrimary].
func BuildReport(entries []models.RankedEntry, category models.Category, rows int) (*models.Report, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: report rows must be positive, got %d", shared.ErrInvalidArgument, rows)
	}

	report := &models.Report{Category: category, Header: Header, Rows: make([]models.ReportRow, rows)}
	band := models.BandPrimary
	for i := range report.Rows {
		report.Rows[i].Band = band
		if i < len(entries) {
			entry := entries[i]
			report.Rows[i].Entry = &entry
		}
		band = band.Next()
	}

	return report, nil
}

// NewSink returns the file sink for format ("xlsx", "csv" or "md") writing into dir.
func NewSink(format, dir string) (ReportSink, error) {
	switch format {
	case "", "xlsx":
		return NewXLSXSink(dir), nil
	case "csv":
		return &CSVSink{Dir: dir}, nil
	case "md", "markdown":
		return &MarkdownSink{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedSink, format)
	}
}

// ArtifactPath returns the deterministic artifact path for category in dir.
func ArtifactPath(dir string, category models.Category, ext string) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(category.String())
	return filepath.Join(dir, name+"."+ext)
}

// ExportToCSV converts a report to CSV: the header, then one record per data row with blank rows as empty fields.
func ExportToCSV(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(report.Header[:]); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{"", ""}
		if row.Entry != nil {
			record = []string{row.Entry.Artist, strconv.Itoa(row.Entry.Count)}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a report to a Markdown pipe table under a category heading.
func ExportToMarkdown(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	escape := strings.NewReplacer("|", `\|`)

	fmt.Fprintf(&buf, "# %s\n\n", report.Category)
	fmt.Fprintf(&buf, "| %s | %s |\n", report.Header[0], report.Header[1])
	buf.WriteString("| --- | ---: |\n")

	for _, row := range report.Rows {
		if row.Entry == nil {
			buf.WriteString("| | |\n")
			continue
		}
		fmt.Fprintf(&buf, "| %s | %d |\n", escape.Replace(row.Entry.Artist), row.Entry.Count)
	}

	return buf.Bytes(), nil
}

// CSVSink writes <dir>/<category>.csv
type CSVSink struct {
	Dir string
}

func (s *CSVSink) Render(report *models.Report) (string, error) {
	data, err := ExportToCSV(report)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrRenderFailed, err)
	}
	return writeArtifact(ArtifactPath(s.Dir, report.Category, "csv"), data)
}

// MarkdownSink writes <dir>/<category>.md
type MarkdownSink struct {
	Dir string
}

func (s *MarkdownSink) Render(report *models.Report) (string, error) {
	data, err := ExportToMarkdown(report)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrRenderFailed, err)
	}
	return writeArtifact(ArtifactPath(s.Dir, report.Category, "md"), data)
}

func writeArtifact(path string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory: %w", shared.ErrRenderFailed, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %w", shared.ErrRenderFailed, path, err)
	}
	return path, nil
}
