package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canonpl-dev/canonpl/internal/config"
)

func newInitCommand() *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new canonpl project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, entity)
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "business entity name (required)")
	_ = cmd.MarkFlagRequired("entity")

	return cmd
}

func runInit(cmd *cobra.Command, dir, entity string) error {
	for _, d := range []string{"data", "exports"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, "canonpl.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("canonpl.yaml already exists at %s", dir)
	}

	cfg := config.Default(entity)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := "exports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	cmd.Printf("Initialized canonpl project at %s\n", dir)
	cmd.Println("Drop the September flat export at data/september.json and the October hierarchical export at data/october.json.")
	return nil
}
