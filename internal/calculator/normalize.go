package calculator

import "StockBacktest/internal/model"

// Normalize rebases a price series so its first observation equals exactly
// 100. Purely elementwise; returns model.ErrInsufficientData for an empty
// series.
func Normalize(series *model.PriceSeries) (model.NormalizedSeries, error) {
	if series == nil || series.Len() == 0 {
		return model.NormalizedSeries{}, model.ErrInsufficientData
	}

	base := series.First()
	points := make([]model.NormalizedPoint, len(series.Points))
	for i, p := range series.Points {
		points[i] = model.NormalizedPoint{
			Date:  p.Date,
			Value: p.Close / base * 100,
		}
	}
	return model.NormalizedSeries{Symbol: series.Symbol, Points: points}, nil
}
