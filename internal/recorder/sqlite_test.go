package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBacktest/internal/model"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer r.Close()

	rec := &RunRecord{
		Start:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Requested: 3,
		Skipped:   1,
		Metrics: []model.MetricsRecord{
			{Symbol: "AAPL", TotalReturn: 21.0, AnnualizedReturn: 35.5, Volatility: 25.1, MaxDrawdown: -10.0, SharpeRatio: 1.26},
			{Symbol: "SP500", TotalReturn: 12.4, AnnualizedReturn: 18.2, Volatility: 15.3, MaxDrawdown: -7.5, SharpeRatio: 0.93},
		},
	}
	require.NoError(t, r.RecordRun(rec))
	require.NoError(t, r.RecordRun(rec)) // appending a second run is fine

	var runs int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	var symbol string
	var total float64
	require.NoError(t, r.db.QueryRow(
		`SELECT symbol, total_return FROM run_metrics ORDER BY id LIMIT 1`).Scan(&symbol, &total))
	assert.Equal(t, "AAPL", symbol)
	assert.Equal(t, 21.0, total)
}
