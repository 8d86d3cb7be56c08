package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/canonpl-dev/canonpl/internal/model"
)

// WriteCSV writes the comparison table as CSV: one header row followed
// by the formatted comparison rows.
func WriteCSV(w io.Writer, rd *model.ReportData) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(rd.TableData.Headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rd.TableData.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
