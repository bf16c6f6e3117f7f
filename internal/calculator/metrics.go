package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"StockBacktest/internal/model"
)

// Params holds the policy constants for metric computation. They are passed
// in explicitly rather than read from package globals so the calculator
// stays independently testable.
type Params struct {
	RiskFreeRate       float64 // annual, e.g. 0.04 for 4%
	TradingDaysPerYear int     // annualization convention, not calendar-derived
}

// DefaultParams returns the documented defaults: 4% risk-free rate and the
// 252 trading-day year.
func DefaultParams() Params {
	return Params{RiskFreeRate: 0.04, TradingDaysPerYear: 252}
}

// ComputeMetrics derives the full metrics record for a price series.
// Returns model.ErrInsufficientData if fewer than 2 prices are available.
// The computation is pure and deterministic; rounding to two decimals
// happens only on the final record.
func ComputeMetrics(series *model.PriceSeries, params Params) (model.MetricsRecord, error) {
	if series == nil || series.Len() < 2 {
		return model.MetricsRecord{}, model.ErrInsufficientData
	}

	closes := series.Closes()
	returns := dailyReturns(closes)

	totalReturn := (series.Last()/series.First() - 1) * 100

	// years <= 0 cannot happen with >= 2 prices, but never produce NaN/Inf.
	years := float64(len(closes)) / float64(params.TradingDaysPerYear)
	if years <= 0 {
		return model.MetricsRecord{}, model.ErrInsufficientData
	}
	annualized := (math.Pow(1+totalReturn/100, 1/years) - 1) * 100

	// Sample standard deviation, annualized. Zero by convention when fewer
	// than 2 return observations exist.
	volatility := 0.0
	if len(returns) >= 2 {
		volatility = stat.StdDev(returns, nil) * math.Sqrt(float64(params.TradingDaysPerYear)) * 100
	}

	maxDrawdown := maxDrawdownPct(returns)

	// Volatility zero means Sharpe zero, not an error and not infinity.
	sharpe := 0.0
	if volatility > 0 {
		sharpe = (annualized/100 - params.RiskFreeRate) / (volatility / 100)
	}

	return model.MetricsRecord{
		Symbol:           series.Symbol,
		TotalReturn:      round2(totalReturn),
		AnnualizedReturn: round2(annualized),
		Volatility:       round2(volatility),
		MaxDrawdown:      round2(maxDrawdown),
		SharpeRatio:      round2(sharpe),
	}, nil
}

// dailyReturns computes simple returns p_i/p_{i-1} - 1. The first
// observation has no return.
func dailyReturns(closes []float64) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return returns
}

// maxDrawdownPct walks the cumulative growth path and returns the deepest
// decline from a running peak, in percent (<= 0). The result is
// path-dependent, so the chronological order of returns matters.
func maxDrawdownPct(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	maxDrawdown := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		drawdown := (cumulative - peak) / peak
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
