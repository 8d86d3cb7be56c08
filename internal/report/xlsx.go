package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/canonpl-dev/canonpl/internal/model"
)

const (
	comparisonSheet = "Comparison"
	summarySheet    = "Summary"
)

// WriteXLSX writes the report as a workbook: the comparison table on
// one sheet and the headline metrics, summary bullets, and analysis on
// a second.
func WriteXLSX(w io.Writer, rd *model.ReportData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", comparisonSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeRow(f, comparisonSheet, 1, headerCells(rd.TableData.Headers)); err != nil {
		return err
	}
	for i, row := range rd.TableData.Rows {
		if err := writeRow(f, comparisonSheet, i+2, headerCells(row)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	line := 1
	for _, cells := range summaryLines(rd) {
		if err := writeRow(f, summarySheet, line, cells); err != nil {
			return err
		}
		line++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func summaryLines(rd *model.ReportData) [][]any {
	lines := [][]any{
		{rd.Title},
		{rd.Entity},
		{rd.DateRange},
		{},
	}
	for _, m := range rd.Metrics {
		lines = append(lines, []any{m.Label, m.Value, m.Change, m.Trend})
	}
	lines = append(lines, []any{})
	for _, s := range rd.Summary {
		lines = append(lines, []any{s})
	}
	lines = append(lines, []any{}, []any{rd.Analysis}, []any{})
	for _, r := range rd.Recommendations {
		lines = append(lines, []any{r})
	}
	return lines
}

func headerCells(row []string) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, v := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell %d,%d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
	}
	return nil
}
