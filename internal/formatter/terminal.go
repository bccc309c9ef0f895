package formatter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
)

var (
	headerStyle    = bandStyle(ColorHeader).Bold(true)
	primaryStyle   = bandStyle(ColorPrimary)
	secondaryStyle = bandStyle(ColorSecondary)
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#" + ColorHeader))
)

func bandStyle(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#"+ColorText)).
		Background(lipgloss.Color("#"+bg)).
		Width(ColumnWidth).
		Padding(0, 1)
}

// TerminalSink previews a report as a banded table. Blank rows are omitted unless ShowBlank is set.
type TerminalSink struct {
	W         io.Writer
	ShowBlank bool
}

func (s *TerminalSink) Render(report *models.Report) (string, error) {
	if _, err := fmt.Fprintf(s.W, "%s\n%s\n", report.Category, RenderTable(report, s.ShowBlank)); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrRenderFailed, err)
	}
	return "", nil
}

// RenderTable renders report with the spreadsheet's band colors.
func RenderTable(report *models.Report, showBlank bool) string {
	var rows [][]string
	var bands []models.Band
	for _, row := range report.Rows {
		if row.Entry == nil {
			if !showBlank {
				continue
			}
			rows = append(rows, []string{"", ""})
		} else {
			rows = append(rows, []string{row.Entry.Artist, strconv.Itoa(row.Entry.Count)})
		}
		bands = append(bands, row.Band)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(report.Header[0], report.Header[1]).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(bands) && bands[row] == models.BandSecondary {
				return secondaryStyle
			}
			return primaryStyle
		})

	return t.Render()
}
