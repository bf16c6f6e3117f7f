package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"StockBacktest/internal/collector"
	"StockBacktest/internal/model"
	"StockBacktest/internal/recorder"
	"StockBacktest/internal/report"
	"StockBacktest/internal/runner"
)

// Scheduler runs the comparison pipeline, either once or periodically over
// a rolling window in watch mode.
type Scheduler struct {
	Cron          *cron.Cron
	Fetcher       collector.Fetcher
	Runner        *runner.Runner
	Recorder      recorder.Recorder
	Requests      []runner.Request
	OutputDir     string
	LookbackYears int
	Ctx           context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, fetcher collector.Fetcher, run *runner.Runner, rec recorder.Recorder, requests []runner.Request, outputDir string, lookbackYears int) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Fetcher:       fetcher,
		Runner:        run,
		Recorder:      rec,
		Requests:      requests,
		OutputDir:     outputDir,
		LookbackYears: lookbackYears,
		Ctx:           ctx,
	}
}

// Register adds the watch task on the given cron spec.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// watchTask re-runs the comparison over a rolling lookback window ending
// today, keeping the recorded history current.
func (s *Scheduler) watchTask() {
	end := time.Now()
	start := end.AddDate(-s.LookbackYears, 0, 0)
	if err := s.RunWindow(start, end); err != nil {
		log.Printf("[ERROR] watch run: %v", err)
	}
}

// RunWindow executes one full comparison over [start, end]: fetch, compute,
// report to stdout, export CSV and XLSX, and record the run.
func (s *Scheduler) RunWindow(start, end time.Time) error {
	log.Printf("[INFO] comparing %d symbols from %s to %s via %s",
		len(s.Requests), start.Format("2006-01-02"), end.Format("2006-01-02"), s.Fetcher.Name())

	res, err := s.Runner.Compare(s.Ctx, s.Fetcher, s.Requests, start, end)
	if err != nil {
		if errors.Is(err, model.ErrNoUsableData) {
			return fmt.Errorf("nothing to report: %w", err)
		}
		return err
	}

	if err := report.WriteTable(os.Stdout, res); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	csvPath, err := report.WriteCSV(s.OutputDir, start.Year(), end.Year(), res)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	log.Printf("[INFO] results saved to: %s", csvPath)

	xlsxPath, err := report.WriteExcel(s.OutputDir, start.Year(), end.Year(), res)
	if err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	log.Printf("[INFO] chart saved to: %s", xlsxPath)

	metrics := make([]model.MetricsRecord, 0, len(res.Symbols))
	for _, symbol := range res.Symbols {
		metrics = append(metrics, res.Metrics[symbol])
	}
	if err := s.Recorder.RecordRun(&recorder.RunRecord{
		Start:     start,
		End:       end,
		Requested: len(s.Requests),
		Skipped:   len(res.Skipped),
		Metrics:   metrics,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	return nil
}
