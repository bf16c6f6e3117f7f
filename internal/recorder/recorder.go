package recorder

import (
	"time"

	"StockBacktest/internal/model"
)

// RunRecord holds everything worth keeping from one comparison run.
type RunRecord struct {
	Start     time.Time
	End       time.Time
	Requested int // symbols asked for, including the benchmark
	Skipped   int
	Metrics   []model.MetricsRecord // run order
}

// Recorder persists historical run data for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
