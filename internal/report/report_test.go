package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"StockBacktest/internal/model"
	"StockBacktest/internal/runner"
)

func sampleResult() *runner.Result {
	day := func(n int) time.Time {
		return time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}
	return &runner.Result{
		Symbols: []string{"AAPL", "SP500"},
		Metrics: map[string]model.MetricsRecord{
			"AAPL":  {Symbol: "AAPL", TotalReturn: 21.0, AnnualizedReturn: 35.5, Volatility: 25.1, MaxDrawdown: -10.0, SharpeRatio: 1.26},
			"SP500": {Symbol: "SP500", TotalReturn: 12.4, AnnualizedReturn: 18.2, Volatility: 15.3, MaxDrawdown: -7.5, SharpeRatio: 0.93},
		},
		Normalized: map[string]model.NormalizedSeries{
			"AAPL": {Symbol: "AAPL", Points: []model.NormalizedPoint{
				{Date: day(0), Value: 100}, {Date: day(1), Value: 110}, {Date: day(2), Value: 99},
			}},
			"SP500": {Symbol: "SP500", Points: []model.NormalizedPoint{
				{Date: day(0), Value: 100}, {Date: day(1), Value: 101}, {Date: day(2), Value: 103},
			}},
		},
		Skipped: map[string]error{"NOPE": model.ErrNoData},
	}
}

func TestFormatTable(t *testing.T) {
	out := FormatTable(sampleResult())

	assert.Contains(t, out, "PERFORMANCE METRICS")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "SP500")
	assert.Contains(t, out, "21.00")
	assert.Contains(t, out, "-10.00")
	assert.Contains(t, out, "skipped")

	// input order preserved: AAPL row before SP500 row
	assert.Less(t, strings.Index(out, "AAPL"), strings.Index(out, "SP500"))
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(dir, 2020, 2024, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backtest_2020_2024.csv"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + two symbols

	assert.Equal(t, csvHeaders, records[0])
	assert.Equal(t, []string{"AAPL", "21.00", "35.50", "25.10", "-10.00", "1.26"}, records[1])
	assert.Equal(t, "SP500", records[2][0])
}

func TestWriteExcel(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteExcel(dir, 2020, 2024, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "performance_2020_2024.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(metricsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got)

	// Normalized sheet: date axis plus one column per symbol, first value 100.
	got, err = f.GetCellValue(normalizedSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-02", got)
	got, err = f.GetCellValue(normalizedSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got)
	got, err = f.GetCellValue(normalizedSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "100", got)
}
