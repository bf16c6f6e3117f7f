package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.04, cfg.Metrics.RiskFreeRate)
	assert.Equal(t, 252, cfg.Metrics.TradingDaysPerYear)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, 5, cfg.Schedule.LookbackYears)

	ticker, ok := cfg.IndexTicker("SP500")
	assert.True(t, ok)
	assert.Equal(t, "^GSPC", ticker)
	_, ok = cfg.IndexTicker("FTSE")
	assert.False(t, ok)
}

func TestLoad_FileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
metrics:
  risk_free_rate: 0.02
  trading_days_per_year: 260
indexes:
  DAX: ^GDAXI
output:
  dir: results
database:
  sqlite_path: data/runs.db
`), 0644))

	t.Setenv("RISK_FREE_RATE", "0.03")
	t.Setenv("OUTPUT_DIR", "elsewhere")

	cfg, err := Load(path)
	require.NoError(t, err)

	// env wins over file, file wins over defaults
	assert.Equal(t, 0.03, cfg.Metrics.RiskFreeRate)
	assert.Equal(t, 260, cfg.Metrics.TradingDaysPerYear)
	assert.Equal(t, "elsewhere", cfg.Output.Dir)
	assert.Equal(t, "data/runs.db", cfg.Database.SQLitePath)

	ticker, ok := cfg.IndexTicker("DAX")
	assert.True(t, ok)
	assert.Equal(t, "^GDAXI", ticker)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Metrics.TradingDaysPerYear = 0
	assert.Error(t, cfg.Validate())

	cfg.Metrics.TradingDaysPerYear = 252
	cfg.Metrics.RiskFreeRate = -0.01
	assert.Error(t, cfg.Validate())
}
