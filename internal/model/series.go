package model

import "time"

// PricePoint is a single daily closing price observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the ordered daily closing prices for one instrument.
// Points are strictly increasing by date; the series is never mutated after
// construction.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// NewPriceSeries builds a series from parallel date/close slices.
func NewPriceSeries(symbol string, points []PricePoint) *PriceSeries {
	return &PriceSeries{Symbol: symbol, Points: points}
}

func (s *PriceSeries) Len() int { return len(s.Points) }

// First returns the earliest closing price. Callers must check Len() >= 1.
func (s *PriceSeries) First() float64 { return s.Points[0].Close }

// Last returns the most recent closing price. Callers must check Len() >= 1.
func (s *PriceSeries) Last() float64 { return s.Points[len(s.Points)-1].Close }

// Closes returns the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
