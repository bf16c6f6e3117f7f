package runner

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"StockBacktest/internal/calculator"
	"StockBacktest/internal/collector"
	"StockBacktest/internal/model"
)

// fetchConcurrency caps simultaneous requests to the data source.
const fetchConcurrency = 4

// Request names one instrument to compare. Ticker is what the data source
// understands; Label is what appears in reports (e.g. label "SP500" for
// ticker "^GSPC"). An empty Ticker means the label is the ticker.
type Request struct {
	Label  string
	Ticker string
}

func (r Request) ticker() string {
	if r.Ticker != "" {
		return r.Ticker
	}
	return r.Label
}

// Outcome is the per-symbol result: either both derivations or the error
// that excluded the symbol from the run.
type Outcome struct {
	Symbol     string
	Metrics    model.MetricsRecord
	Normalized model.NormalizedSeries
	Err        error
}

// Result collects the per-symbol outputs of a comparison run. Symbols holds
// the successful labels in input order; Skipped records why the rest were
// excluded.
type Result struct {
	Symbols    []string
	Metrics    map[string]model.MetricsRecord
	Normalized map[string]model.NormalizedSeries
	Skipped    map[string]error
}

// Runner evaluates the metrics calculator and normalizer across symbols.
type Runner struct {
	params calculator.Params
}

// New creates a Runner with the given policy parameters.
func New(params calculator.Params) *Runner {
	return &Runner{params: params}
}

// Run computes metrics and the normalized series for each input series, in
// parallel. A failing symbol is skipped, never fatal to the others; output
// order matches input order. When every symbol fails, the returned Result
// still carries the skip reasons and the error is model.ErrNoUsableData.
func (r *Runner) Run(series []*model.PriceSeries) (*Result, error) {
	outcomes := make([]Outcome, len(series))

	// Each symbol's computation is independent and touches no shared state.
	var g errgroup.Group
	for i, s := range series {
		i, s := i, s
		g.Go(func() error {
			outcomes[i] = r.evaluate(s)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in outcomes

	return assemble(outcomes)
}

// Compare fetches each requested symbol concurrently and runs the
// calculator and normalizer over whatever arrived. Retrieval failures
// become per-symbol skips; partial results are expected and reported.
func (r *Runner) Compare(ctx context.Context, fetcher collector.Fetcher, requests []Request, start, end time.Time) (*Result, error) {
	series := make([]*model.PriceSeries, len(requests))
	fetchErrs := make([]error, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			s, err := fetcher.FetchDailyCloses(gctx, req.ticker(), start, end)
			if err != nil {
				log.Printf("[WARN] fetch %s: %v", req.ticker(), err)
				fetchErrs[i] = err
				return nil
			}
			s.Symbol = req.Label
			series[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(requests))
	for i, req := range requests {
		if fetchErrs[i] != nil {
			outcomes[i] = Outcome{Symbol: req.Label, Err: fetchErrs[i]}
			continue
		}
		outcomes[i] = r.evaluate(series[i])
	}
	return assemble(outcomes)
}

func (r *Runner) evaluate(s *model.PriceSeries) Outcome {
	out := Outcome{Symbol: s.Symbol}

	metrics, err := calculator.ComputeMetrics(s, r.params)
	if err != nil {
		out.Err = err
		return out
	}
	normalized, err := calculator.Normalize(s)
	if err != nil {
		out.Err = err
		return out
	}

	out.Metrics = metrics
	out.Normalized = normalized
	return out
}

func assemble(outcomes []Outcome) (*Result, error) {
	res := &Result{
		Metrics:    make(map[string]model.MetricsRecord),
		Normalized: make(map[string]model.NormalizedSeries),
		Skipped:    make(map[string]error),
	}
	for _, out := range outcomes {
		if out.Err != nil {
			log.Printf("[WARN] skipping %s: %v", out.Symbol, out.Err)
			res.Skipped[out.Symbol] = out.Err
			continue
		}
		res.Symbols = append(res.Symbols, out.Symbol)
		res.Metrics[out.Symbol] = out.Metrics
		res.Normalized[out.Symbol] = out.Normalized
	}
	if len(res.Symbols) == 0 {
		return res, model.ErrNoUsableData
	}
	return res, nil
}
