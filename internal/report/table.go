package report

import (
	"fmt"
	"io"
	"strings"

	"StockBacktest/internal/runner"
)

const tableWidth = 92

// FormatTable renders the metrics of a comparison run as a fixed-width
// text table, one row per symbol in run order.
func FormatTable(res *runner.Result) string {
	var b strings.Builder

	rule := strings.Repeat("=", tableWidth)
	b.WriteString(rule + "\n")
	b.WriteString("PERFORMANCE METRICS\n")
	b.WriteString(rule + "\n")

	b.WriteString(fmt.Sprintf("%-12s %16s %18s %14s %16s %12s\n",
		"Ticker", "Total Return (%)", "Annualized (%)", "Volatility (%)", "Max Drawdown (%)", "Sharpe"))

	for _, symbol := range res.Symbols {
		m := res.Metrics[symbol]
		b.WriteString(fmt.Sprintf("%-12s %16.2f %18.2f %14.2f %16.2f %12.2f\n",
			m.Symbol, m.TotalReturn, m.AnnualizedReturn, m.Volatility, m.MaxDrawdown, m.SharpeRatio))
	}

	for symbol, err := range res.Skipped {
		b.WriteString(fmt.Sprintf("%-12s skipped: %v\n", symbol, err))
	}

	b.WriteString(rule + "\n")
	return b.String()
}

// WriteTable writes the formatted table to w.
func WriteTable(w io.Writer, res *runner.Result) error {
	_, err := io.WriteString(w, FormatTable(res))
	return err
}
