package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canonpl-dev/canonpl/internal/model"
	"github.com/canonpl-dev/canonpl/internal/months"
	"github.com/canonpl-dev/canonpl/internal/report"
)

func newTreeCommand() *cobra.Command {
	var cfgPath string
	var month string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the canonical P&L hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !months.IsShortLabel(month) {
				return fmt.Errorf("month must be a short label like %q", months.Oct)
			}
			_, canon, _, err := loadPipeline(cfgPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			pl := canon.CanonicalPL()
			headerColor.Fprintf(w, "Canonical P&L — %s\n\n", month)
			for _, root := range pl.Sections() {
				printTree(w, root, month)
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "canonpl.yaml", "path to canonpl.yaml")
	cmd.Flags().StringVar(&month, "month", months.Oct, "short month label to display")

	return cmd
}

func printTree(w io.Writer, acct *model.Account, month string) {
	indent := strings.Repeat("  ", acct.IndentationLevel)
	name := acct.Name
	if acct.Code != "" {
		name = acct.Code + " " + name
	}

	line := fmt.Sprintf("%s%-40s %12s", indent, name, report.Currency(acct.Month(month).Value))
	if acct.IsTotal {
		labelColor.Fprintln(w, line)
	} else {
		fmt.Fprintln(w, line)
	}

	for _, child := range acct.Children {
		printTree(w, child, month)
	}
}
