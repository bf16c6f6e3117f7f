package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBacktest/internal/calculator"
	"StockBacktest/internal/collector"
	"StockBacktest/internal/model"
	"StockBacktest/internal/recorder"
	"StockBacktest/internal/runner"
)

func TestRunWindow_WritesReports(t *testing.T) {
	dir := t.TempDir()
	fetcher := &collector.MockFetcher{
		BasePrice: 150,
		Missing:   map[string]bool{"NOPE": true},
	}
	s := NewScheduler(context.Background(), fetcher,
		runner.New(calculator.DefaultParams()), recorder.NewNoopRecorder(),
		[]runner.Request{{Label: "AAPL"}, {Label: "NOPE"}, {Label: "SP500", Ticker: "^GSPC"}},
		dir, 5)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.RunWindow(start, end))

	_, err := os.Stat(filepath.Join(dir, "backtest_2020_2024.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "performance_2020_2024.xlsx"))
	assert.NoError(t, err)
}

func TestRunWindow_NothingToReport(t *testing.T) {
	fetcher := &collector.MockFetcher{Missing: map[string]bool{"A": true, "B": true}}
	s := NewScheduler(context.Background(), fetcher,
		runner.New(calculator.DefaultParams()), recorder.NewNoopRecorder(),
		[]runner.Request{{Label: "A"}, {Label: "B"}},
		t.TempDir(), 5)

	err := s.RunWindow(time.Now().AddDate(-1, 0, 0), time.Now())
	assert.ErrorIs(t, err, model.ErrNoUsableData)
}
