package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"StockBacktest/internal/model"
)

func seriesFrom(symbol string, closes ...float64) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return model.NewPriceSeries(symbol, points)
}

func TestComputeMetrics_TooFewPoints(t *testing.T) {
	_, err := ComputeMetrics(seriesFrom("AAPL", 187.44), DefaultParams())
	assert.ErrorIs(t, err, model.ErrInsufficientData)

	_, err = ComputeMetrics(seriesFrom("AAPL"), DefaultParams())
	assert.ErrorIs(t, err, model.ErrInsufficientData)

	_, err = ComputeMetrics(nil, DefaultParams())
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}

func TestComputeMetrics_ConstantSeries(t *testing.T) {
	rec, err := ComputeMetrics(seriesFrom("FLAT", 50, 50, 50, 50, 50), DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.TotalReturn)
	assert.Equal(t, 0.0, rec.AnnualizedReturn)
	assert.Equal(t, 0.0, rec.Volatility)
	assert.Equal(t, 0.0, rec.MaxDrawdown)
	// Volatility zero forces Sharpe to zero rather than dividing by zero.
	assert.Equal(t, 0.0, rec.SharpeRatio)
}

func TestComputeMetrics_MonotonicIncreaseHasNoDrawdown(t *testing.T) {
	rec, err := ComputeMetrics(seriesFrom("UP", 100, 101, 103, 107, 110), DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.MaxDrawdown)
	assert.Equal(t, 10.0, rec.TotalReturn)
	assert.Greater(t, rec.Volatility, 0.0)
}

func TestComputeMetrics_WorkedExample(t *testing.T) {
	// Cumulative path [1, 1.10, 0.99, 1.21]; the only decline below the
	// running peak is day 2: (0.99-1.10)/1.10 = -10%.
	rec, err := ComputeMetrics(seriesFrom("EX", 100, 110, 99, 121), DefaultParams())
	require.NoError(t, err)

	assert.InDelta(t, 21.0, rec.TotalReturn, 1e-9)
	assert.InDelta(t, -10.0, rec.MaxDrawdown, 1e-9)

	returns := []float64{0.10, -0.10, 121.0/99.0 - 1}
	wantVol := round2(stat.StdDev(returns, nil) * math.Sqrt(252) * 100)
	assert.InDelta(t, wantVol, rec.Volatility, 1e-9)
}

func TestComputeMetrics_DrawdownIsPathDependent(t *testing.T) {
	forward, err := ComputeMetrics(seriesFrom("FWD", 100, 110, 99, 121), DefaultParams())
	require.NoError(t, err)
	reversed, err := ComputeMetrics(seriesFrom("REV", 121, 99, 110, 100), DefaultParams())
	require.NoError(t, err)

	// Same set of prices, different chronological order, different drawdown.
	assert.NotEqual(t, forward.MaxDrawdown, reversed.MaxDrawdown)
	assert.InDelta(t, -18.18, reversed.MaxDrawdown, 0.01)
}

func TestComputeMetrics_Invariants(t *testing.T) {
	cases := map[string][]float64{
		"decline": {120, 118, 110, 95, 96, 80},
		"choppy":  {100, 95, 108, 101, 115, 90, 112},
		"rally":   {40, 44, 43, 51, 60},
	}
	for name, closes := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := ComputeMetrics(seriesFrom(name, closes...), DefaultParams())
			require.NoError(t, err)

			assert.GreaterOrEqual(t, rec.Volatility, 0.0)
			assert.LessOrEqual(t, rec.MaxDrawdown, 0.0)

			first, last := closes[0], closes[len(closes)-1]
			if last > first {
				assert.Greater(t, rec.TotalReturn, 0.0)
			} else if last < first {
				assert.Less(t, rec.TotalReturn, 0.0)
			}
		})
	}
}

func TestComputeMetrics_UsesProvidedParams(t *testing.T) {
	series := seriesFrom("CFG", 100, 102, 101, 105, 104, 108)

	base, err := ComputeMetrics(series, DefaultParams())
	require.NoError(t, err)
	zeroRate, err := ComputeMetrics(series, Params{RiskFreeRate: 0, TradingDaysPerYear: 252})
	require.NoError(t, err)

	// A lower risk-free rate leaves more excess return, so Sharpe rises.
	assert.Greater(t, zeroRate.SharpeRatio, base.SharpeRatio)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	series := seriesFrom("DET", 100, 97, 103, 99, 110, 108)
	first, err := ComputeMetrics(series, DefaultParams())
	require.NoError(t, err)
	second, err := ComputeMetrics(series, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
