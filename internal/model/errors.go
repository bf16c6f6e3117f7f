package model

import "errors"

// ErrInsufficientData means a series has too few points to compute metrics
// (fewer than 2 prices, so not a single daily return is observable).
var ErrInsufficientData = errors.New("insufficient price data")

// ErrNoData means the data source reported no prices at all for a symbol in
// the requested window.
var ErrNoData = errors.New("no price data available")

// ErrNoUsableData means every requested symbol failed or was skipped and
// there is nothing to report. It is terminal for a comparison run.
var ErrNoUsableData = errors.New("no usable data for any symbol")
