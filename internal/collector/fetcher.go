package collector

import (
	"context"
	"time"

	"StockBacktest/internal/model"
)

// Fetcher defines the interface for retrieving daily closing prices over a
// calendar window. Implementations return model.ErrNoData (possibly
// wrapped) when the source has nothing for the symbol in that window.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error)
	Name() string
}
