package model

import "time"

// MetricsRecord holds the risk/return statistics derived from one price
// series. All percentage fields are rounded to two decimals; SharpeRatio is
// dimensionless and zero when volatility is zero.
type MetricsRecord struct {
	Symbol           string
	TotalReturn      float64 // %
	AnnualizedReturn float64 // %
	Volatility       float64 // %, annualized, always >= 0
	MaxDrawdown      float64 // %, always <= 0
	SharpeRatio      float64
}

// NormalizedPoint is one observation of a series rebased to start at 100.
type NormalizedPoint struct {
	Date  time.Time
	Value float64
}

// NormalizedSeries is a price series rescaled so its first value is exactly
// 100, used to compare differently priced instruments on one axis.
type NormalizedSeries struct {
	Symbol string
	Points []NormalizedPoint
}

func (n *NormalizedSeries) Len() int { return len(n.Points) }
