package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"StockBacktest/internal/runner"
)

// csvHeaders match the metric columns of the text table.
var csvHeaders = []string{
	"Ticker",
	"Total Return (%)",
	"Annualized Return (%)",
	"Volatility (%)",
	"Max Drawdown (%)",
	"Sharpe Ratio",
}

// WriteCSV saves the metrics of a comparison run to
// <dir>/backtest_<start>_<end>.csv and returns the file path.
func WriteCSV(dir string, startYear, endYear int, res *runner.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("backtest_%d_%d.csv", startYear, endYear))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("write csv headers: %w", err)
	}
	for _, symbol := range res.Symbols {
		m := res.Metrics[symbol]
		record := []string{
			m.Symbol,
			fmt.Sprintf("%.2f", m.TotalReturn),
			fmt.Sprintf("%.2f", m.AnnualizedReturn),
			fmt.Sprintf("%.2f", m.Volatility),
			fmt.Sprintf("%.2f", m.MaxDrawdown),
			fmt.Sprintf("%.2f", m.SharpeRatio),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record %s: %w", symbol, err)
		}
	}

	w.Flush()
	return path, w.Error()
}
