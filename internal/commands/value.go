package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonpl-dev/canonpl/internal/months"
	"github.com/canonpl-dev/canonpl/internal/report"
)

func newValueCommand() *cobra.Command {
	var cfgPath string
	var month string
	var percent bool

	cmd := &cobra.Command{
		Use:   "value <account>",
		Short: "Look up a single account's value in the canonical P&L",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !months.IsShortLabel(month) {
				return fmt.Errorf("month must be a short label like %q", months.Oct)
			}
			_, canon, _, err := loadPipeline(cfgPath)
			if err != nil {
				return err
			}

			account := args[0]
			if percent {
				cmd.Printf("%s %s: %s of revenue\n", account, month,
					report.Percent(canon.AccountPercent(account, month)))
				return nil
			}
			cmd.Printf("%s %s: %s\n", account, month,
				report.Currency(canon.AccountValue(account, month)))
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "canonpl.yaml", "path to canonpl.yaml")
	cmd.Flags().StringVar(&month, "month", months.Oct, "short month label to look up")
	cmd.Flags().BoolVar(&percent, "percent", false, "print percent of revenue instead of the dollar value")

	return cmd
}
