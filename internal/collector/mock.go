package collector

import (
	"context"
	"fmt"
	"time"

	"StockBacktest/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	BasePrice float64
	Series    map[string]*model.PriceSeries // per-symbol override
	Missing   map[string]bool               // symbols that report no data
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error) {
	if m.Missing[symbol] {
		return nil, fmt.Errorf("mock %s: %w", symbol, model.ErrNoData)
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return generateMockSeries(symbol, m.BasePrice, start, end), nil
}

// generateMockSeries produces a gently trending weekday-only series.
func generateMockSeries(symbol string, basePrice float64, start, end time.Time) *model.PriceSeries {
	if basePrice <= 0 {
		basePrice = 100
	}
	var points []model.PricePoint
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i)*0.001)
		points = append(points, model.PricePoint{Date: d, Close: p})
		i++
	}
	return model.NewPriceSeries(symbol, points)
}
