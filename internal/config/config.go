package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level canonpl.yaml configuration.
type Config struct {
	Entity   EntityConfig   `yaml:"entity"`
	Sources  SourcesConfig  `yaml:"sources"`
	Sections SectionsConfig `yaml:"sections"`
	Report   ReportConfig   `yaml:"report"`
	Server   ServerConfig   `yaml:"server"`
}

// EntityConfig identifies the business the statements belong to.
type EntityConfig struct {
	Name string `yaml:"name"`
}

// SourcesConfig locates the two exported P&L documents.
type SourcesConfig struct {
	September string `yaml:"september"` // flat export
	October   string `yaml:"october"`   // hierarchical export
}

// SectionsConfig names the top-level sections and the account-code
// prefixes used to carve flat-only sections out of the September
// export.
type SectionsConfig struct {
	Income          string `yaml:"income"`
	COGS            string `yaml:"cogs"`
	PayrollPrefix   string `yaml:"payroll_prefix"`
	PayrollName     string `yaml:"payroll_name"`
	OperatingPrefix string `yaml:"operating_prefix"`
	OperatingName   string `yaml:"operating_name"`
}

// ReportConfig carries the report's display labels.
type ReportConfig struct {
	Title     string `yaml:"title"`
	DateRange string `yaml:"date_range"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a canonpl.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(entityName string) *Config {
	return &Config{
		Entity: EntityConfig{
			Name: entityName,
		},
		Sources: SourcesConfig{
			September: "data/september.json",
			October:   "data/october.json",
		},
		Sections: SectionsConfig{
			Income:          "Income",
			COGS:            "COGS",
			PayrollPrefix:   "500",
			PayrollName:     "Payroll",
			OperatingPrefix: "599",
			OperatingName:   "Direct Operating Costs",
		},
		Report: ReportConfig{
			Title:     "P&L Comparison Report",
			DateRange: "September 2025 vs October 2025",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
