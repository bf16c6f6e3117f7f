package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"StockBacktest/internal/runner"
)

const (
	metricsSheet    = "Metrics"
	normalizedSheet = "Normalized"
)

// WriteExcel saves the comparison to <dir>/performance_<start>_<end>.xlsx:
// a Metrics sheet, a Normalized sheet with one column per symbol rebased to
// 100, and a line chart of the normalized series over the date axis.
func WriteExcel(dir string, startYear, endYear int, res *runner.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", metricsSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeMetricsSheet(f, res); err != nil {
		return "", err
	}

	if _, err := f.NewSheet(normalizedSheet); err != nil {
		return "", fmt.Errorf("add normalized sheet: %w", err)
	}
	rows, err := writeNormalizedSheet(f, res)
	if err != nil {
		return "", err
	}
	if err := addPerformanceChart(f, res, rows, startYear, endYear); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("performance_%d_%d.xlsx", startYear, endYear))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save xlsx: %w", err)
	}
	return path, nil
}

func writeMetricsSheet(f *excelize.File, res *runner.Result) error {
	for col, h := range csvHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(metricsSheet, cell, h); err != nil {
			return err
		}
	}
	for row, symbol := range res.Symbols {
		m := res.Metrics[symbol]
		values := []interface{}{m.Symbol, m.TotalReturn, m.AnnualizedReturn, m.Volatility, m.MaxDrawdown, m.SharpeRatio}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(metricsSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeNormalizedSheet lays out column A with the union of all dates and one
// column per symbol. Returns the number of data rows written.
func writeNormalizedSheet(f *excelize.File, res *runner.Result) (int, error) {
	dates := unionDates(res)

	if err := f.SetCellValue(normalizedSheet, "A1", "Date"); err != nil {
		return 0, err
	}
	for i, d := range dates {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(normalizedSheet, cell, d.Format("2006-01-02")); err != nil {
			return 0, err
		}
	}

	rowOf := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowOf[d] = i + 2
	}

	for si, symbol := range res.Symbols {
		head, err := excelize.CoordinatesToCellName(si+2, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(normalizedSheet, head, symbol); err != nil {
			return 0, err
		}
		for _, p := range res.Normalized[symbol].Points {
			cell, err := excelize.CoordinatesToCellName(si+2, rowOf[p.Date])
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(normalizedSheet, cell, p.Value); err != nil {
				return 0, err
			}
		}
	}
	return len(dates), nil
}

func addPerformanceChart(f *excelize.File, res *runner.Result, rows, startYear, endYear int) error {
	series := make([]excelize.ChartSeries, 0, len(res.Symbols))
	for i := range res.Symbols {
		colName, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", normalizedSheet, colName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", normalizedSheet, rows+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", normalizedSheet, colName, colName, rows+1),
		})
	}

	anchor, err := excelize.CoordinatesToCellName(len(res.Symbols)+4, 2)
	if err != nil {
		return err
	}
	return f.AddChart(normalizedSheet, anchor, &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title: []excelize.RichTextRun{
			{Text: fmt.Sprintf("Performance Comparison (%d - %d), Start = 100", startYear, endYear)},
		},
		Dimension: excelize.ChartDimension{Width: 960, Height: 540},
	})
}

// unionDates merges every symbol's dates into one sorted axis, so series
// with different trading calendars still share the chart.
func unionDates(res *runner.Result) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, symbol := range res.Symbols {
		for _, p := range res.Normalized[symbol].Points {
			if !seen[p.Date] {
				seen[p.Date] = true
				dates = append(dates, p.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
