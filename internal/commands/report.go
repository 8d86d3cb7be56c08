package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/report"
)

func newReportCommand() *cobra.Command {
	var cfgPath string
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the September/October comparison report",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, gen, err := loadPipeline(cfgPath)
			if err != nil {
				return err
			}
			rd, err := gen.Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("generating report: %w", err)
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "text":
				return writeText(w, rd)
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rd)
			case "csv":
				return report.WriteCSV(w, rd)
			case "xlsx":
				if out == "" {
					return fmt.Errorf("xlsx output requires --out")
				}
				return report.WriteXLSX(w, rd)
			default:
				return fmt.Errorf("unknown format %q (want text, json, csv, or xlsx)", format)
			}
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "canonpl.yaml", "path to canonpl.yaml")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, csv, or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "write output to a file instead of stdout")

	return cmd
}

var (
	headerColor = color.New(color.FgGreen, color.Bold)
	labelColor  = color.New(color.FgCyan)
	downColor   = color.New(color.FgRed)
	upColor     = color.New(color.FgGreen)
)

func writeText(w io.Writer, rd *model.ReportData) error {
	headerColor.Fprintf(w, "%s\n", rd.Title)
	if rd.Entity != "" {
		fmt.Fprintf(w, "%s\n", rd.Entity)
	}
	fmt.Fprintf(w, "%s\n\n", rd.DateRange)

	for _, m := range rd.Metrics {
		c := upColor
		if m.Trend == "down" {
			c = downColor
		}
		labelColor.Fprintf(w, "%-16s", m.Label)
		fmt.Fprintf(w, "%12s  ", m.Value)
		c.Fprintf(w, "%s\n", m.Change)
	}
	fmt.Fprintln(w)

	for _, s := range rd.Summary {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintln(w)

	for i, h := range rd.TableData.Headers {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		labelColor.Fprintf(w, "%-28s", h)
	}
	fmt.Fprintln(w)
	for _, row := range rd.TableData.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprintf(w, "%-28s", cell)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n\n", rd.Analysis)
	for _, r := range rd.Recommendations {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	return nil
}
