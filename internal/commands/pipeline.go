package commands

import (
	"fmt"

	"github.com/canonpl-dev/canonpl/internal/canonical"
	"github.com/canonpl-dev/canonpl/internal/config"
	"github.com/canonpl-dev/canonpl/internal/report"
	"github.com/canonpl-dev/canonpl/internal/source"
)

// loadPipeline reads the config and both source documents and wires the
// canonical service plus report generator the subcommands share.
func loadPipeline(cfgPath string) (*config.Config, *canonical.Service, *report.Generator, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}

	flatDoc, err := source.LoadFlat(cfg.Sources.September)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading september source: %w", err)
	}
	nestedDoc, err := source.LoadNested(cfg.Sources.October)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading october source: %w", err)
	}

	canon := canonical.NewService(source.NewFlatIndex(flatDoc), nestedDoc, canonical.Options{
		IncomeSection:   cfg.Sections.Income,
		COGSSection:     cfg.Sections.COGS,
		PayrollPrefix:   cfg.Sections.PayrollPrefix,
		PayrollName:     cfg.Sections.PayrollName,
		OperatingPrefix: cfg.Sections.OperatingPrefix,
		OperatingName:   cfg.Sections.OperatingName,
	})
	gen := report.NewGenerator(canon, report.Config{
		Title:     cfg.Report.Title,
		DateRange: cfg.Report.DateRange,
		Entity:    cfg.Entity.Name,
	})
	return cfg, canon, gen, nil
}
