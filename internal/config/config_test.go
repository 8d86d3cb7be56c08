package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Kitchen")
	cfg.Sources.September = "exports/sep.json"
	cfg.Sources.October = "exports/oct.json"

	path := filepath.Join(t.TempDir(), "canonpl.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Entity.Name, got.Entity.Name)
	assert.Equal(t, "exports/sep.json", got.Sources.September)
	assert.Equal(t, "exports/oct.json", got.Sources.October)
	assert.Equal(t, cfg.Sections.Income, got.Sections.Income)
	assert.Equal(t, cfg.Sections.PayrollPrefix, got.Sections.PayrollPrefix)
	assert.Equal(t, cfg.Report.Title, got.Report.Title)
	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Restaurant")

	assert.Equal(t, "My Restaurant", cfg.Entity.Name)
	assert.Equal(t, "data/september.json", cfg.Sources.September)
	assert.Equal(t, "data/october.json", cfg.Sources.October)
	assert.Equal(t, "Income", cfg.Sections.Income)
	assert.Equal(t, "COGS", cfg.Sections.COGS)
	assert.Equal(t, "500", cfg.Sections.PayrollPrefix)
	assert.Equal(t, "Payroll", cfg.Sections.PayrollName)
	assert.Equal(t, "599", cfg.Sections.OperatingPrefix)
	assert.Equal(t, "Direct Operating Costs", cfg.Sections.OperatingName)
	assert.Equal(t, "September 2025 vs October 2025", cfg.Report.DateRange)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Kitchen")
	path := filepath.Join(t.TempDir(), "canonpl.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Kitchen")
	assert.Contains(t, contents, "september: data/september.json")
	assert.Contains(t, contents, "payroll_prefix: \"500\"")
	assert.Contains(t, contents, ":8080")
}
