package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/seatify/internal/models"
	"github.com/desertthunder/seatify/internal/shared"
	"github.com/xuri/excelize/v2"
)

const (
	ColorHeader    = "A5ACAF"
	ColorPrimary   = "002244"
	ColorSecondary = "69BE28"
	ColorText      = "FFFFFF"

	ColumnWidth = 20
	TableName   = "Table1"
	TableStyle  = "TableStyleMedium9"
)

// XLSXSink writes <dir>/<category>.xlsx: one sheet named after the category, holding a banded table object.
type XLSXSink struct {
	Dir string
}

func NewXLSXSink(dir string) *XLSXSink {
	return &XLSXSink{Dir: dir}
}

func (s *XLSXSink) Render(report *models.Report) (string, error) {
	path := ArtifactPath(s.Dir, report.Category, "xlsx")

	f, err := ExportToXLSX(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory: %w", shared.ErrRenderFailed, err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%w: failed to save %s: %w", shared.ErrRenderFailed, path, err)
	}

	return path, nil
}

// ExportToXLSX builds the workbook for report. The caller closes it.
func ExportToXLSX(report *models.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	fail := func(step string, err error) (*excelize.File, error) {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrRenderFailed, step, err)
	}

	sheet := SheetName(report.Category)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fail("rename sheet", err)
	}

	styles, err := bandStyles(f)
	if err != nil {
		return fail("create styles", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &[]any{report.Header[0], report.Header[1]}); err != nil {
		return fail("write header", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", styles.header); err != nil {
		return fail("style header", err)
	}

	for i, row := range report.Rows {
		first, last, err := rowCells(i + 2)
		if err != nil {
			return fail("address row", err)
		}

		if row.Entry != nil {
			if err := f.SetSheetRow(sheet, first, &[]any{row.Entry.Artist, row.Entry.Count}); err != nil {
				return fail("write row", err)
			}
		}

		style := styles.primary
		if row.Band == models.BandSecondary {
			style = styles.secondary
		}
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			return fail("style row", err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "B", ColumnWidth); err != nil {
		return fail("set column width", err)
	}

	_, end, err := rowCells(len(report.Rows) + 1)
	if err != nil {
		return fail("address table", err)
	}

	stripes := true
	table := &excelize.Table{
		Range:             "A1:" + end,
		Name:              TableName,
		StyleName:         TableStyle,
		ShowRowStripes:    &stripes,
		ShowColumnStripes: true,
	}
	if err := f.AddTable(sheet, table); err != nil {
		return fail("add table", err)
	}

	return f, nil
}

// rowCells returns the A and B cell names of spreadsheet row n.
func rowCells(n int) (string, string, error) {
	first, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return "", "", err
	}
	last, err := excelize.CoordinatesToCellName(2, n)
	if err != nil {
		return "", "", err
	}
	return first, last, nil
}

// SheetName returns a valid worksheet name for category.
func SheetName(category models.Category) string {
	name := strings.NewReplacer(":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_").
		Replace(category.String())
	name = strings.Trim(name, "'")
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

type bandStyleIDs struct {
	header, primary, secondary int
}

func bandStyles(f *excelize.File) (bandStyleIDs, error) {
	var ids bandStyleIDs
	var err error

	if ids.header, err = f.NewStyle(cellStyle(ColorHeader, false)); err != nil {
		return ids, err
	}
	if ids.primary, err = f.NewStyle(cellStyle(ColorPrimary, true)); err != nil {
		return ids, err
	}
	if ids.secondary, err = f.NewStyle(cellStyle(ColorSecondary, true)); err != nil {
		return ids, err
	}
	return ids, nil
}

// cellStyle is a solid fill with white text. Data rows also get thin white borders.
func cellStyle(fill string, bordered bool) *excelize.Style {
	var borders []excelize.Border
	if bordered {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			borders = append(borders, excelize.Border{Type: side, Color: ColorText, Style: 1})
		}
	}

	return &excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Font:   &excelize.Font{Color: ColorText},
		Border: borders,
	}
}
