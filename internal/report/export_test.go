package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/canonpl-dev/canonpl/internal/model"
)

func exportFixture() *model.ReportData {
	return &model.ReportData{
		Title:     "P&L Comparison Report",
		Entity:    "Test Kitchen",
		DateRange: "September 2025 vs October 2025",
		Summary:   []string{"Total revenue moved from $1,250.00 to $1,550.00."},
		Metrics: []model.Metric{
			{Label: "Total Revenue", Value: "$1,550.00", Change: "+24.0%", Trend: "up"},
		},
		TableData: model.TableData{
			Headers: []string{"Account", "Sep 2025", "Oct 2025", "Change ($)", "Change (%)"},
			Rows: [][]string{
				{"Food Sales", "$1,000.00", "$1,200.00", "+$200.00", "+20.0%"},
				{"Kitchen Wages", "$600.00", "$0.00", "-$600.00", "-100.0%"},
			},
		},
		Analysis:        "October revenue of $1,550.00 compares against $1,250.00 in September.",
		Recommendations: []string{"Review the largest account-level movers."},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Account", "Sep 2025", "Oct 2025", "Change ($)", "Change (%)"}, records[0])
	assert.Equal(t, []string{"Food Sales", "$1,000.00", "$1,200.00", "+$200.00", "+20.0%"}, records[1])
	assert.Equal(t, []string{"Kitchen Wages", "$600.00", "$0.00", "-$600.00", "-100.0%"}, records[2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Comparison", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Comparison")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Account", "Sep 2025", "Oct 2025", "Change ($)", "Change (%)"}, rows[0])
	assert.Equal(t, "Food Sales", rows[1][0])
	assert.Equal(t, "-$600.00", rows[2][3])

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "P&L Comparison Report", title)
}
