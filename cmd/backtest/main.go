package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"StockBacktest/internal/calculator"
	"StockBacktest/internal/collector"
	"StockBacktest/internal/config"
	"StockBacktest/internal/recorder"
	"StockBacktest/internal/runner"
	"StockBacktest/internal/scheduler"
)

type options struct {
	tickers     string
	startYear   int
	endYear     int
	index       string
	outputDir   string
	configPath  string
	watch       bool
	interactive bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.tickers, "tickers", "", "comma-separated ticker symbols to analyze (e.g. AAPL,MSFT,GOOGL)")
	flag.StringVar(&opts.tickers, "t", "", "shorthand for -tickers")
	flag.IntVar(&opts.startYear, "start", 0, "start year (e.g. 2020)")
	flag.IntVar(&opts.startYear, "s", 0, "shorthand for -start")
	flag.IntVar(&opts.endYear, "end", 0, "end year (e.g. 2024)")
	flag.IntVar(&opts.endYear, "e", 0, "shorthand for -end")
	flag.StringVar(&opts.index, "index", "", "index to compare against (SP500, NASDAQ, DOW, RUSSELL2000)")
	flag.StringVar(&opts.index, "i", "", "shorthand for -index")
	flag.StringVar(&opts.outputDir, "output", "", "directory for output files (default from config)")
	flag.StringVar(&opts.outputDir, "o", "", "shorthand for -output")
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.BoolVar(&opts.watch, "watch", false, "keep running and refresh the comparison on a cron schedule")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for tickers, date range and index")
	flag.Parse()
	return opts
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockBacktest starting...")

	opts := parseFlags()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	if opts.configPath != "" {
		cfgPath = opts.configPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}

	if opts.interactive {
		if err := promptOptions(opts, cfg); err != nil {
			log.Fatalf("[FATAL] interactive input: %v", err)
		}
	}
	if err := validateOptions(opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRestFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	requests := buildRequests(opts, cfg)

	params := calculator.Params{
		RiskFreeRate:       cfg.Metrics.RiskFreeRate,
		TradingDaysPerYear: cfg.Metrics.TradingDaysPerYear,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, fetcher, runner.New(params), rec, requests, cfg.Output.Dir, cfg.Schedule.LookbackYears)

	if !opts.watch {
		start := time.Date(opts.startYear, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(opts.endYear, 12, 31, 0, 0, 0, 0, time.UTC)
		if err := sched.RunWindow(start, end); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		log.Println("[INFO] backtest complete")
		return
	}

	// Watch mode: refresh the rolling window on the configured cron.
	if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
		log.Fatalf("[FATAL] register watch task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing comparison now")
		end := time.Now()
		go func() {
			if err := sched.RunWindow(end.AddDate(-cfg.Schedule.LookbackYears, 0, 0), end); err != nil {
				log.Printf("[ERROR] initial run: %v", err)
			}
		}()
	}

	log.Println("[INFO] StockBacktest is watching. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockBacktest stopped")
}

func validateOptions(opts *options, cfg *config.Config) error {
	if strings.TrimSpace(opts.tickers) == "" {
		return fmt.Errorf("at least one ticker is required")
	}
	// watch mode derives its own rolling window; years only matter one-shot
	if !opts.watch {
		if opts.startYear == 0 || opts.endYear == 0 {
			return fmt.Errorf("both -start and -end years are required")
		}
		if opts.startYear > opts.endYear {
			return fmt.Errorf("start year (%d) must be less than or equal to end year (%d)", opts.startYear, opts.endYear)
		}
	}
	if opts.index != "" {
		if _, ok := cfg.IndexTicker(opts.index); !ok {
			return fmt.Errorf("unknown index %q (choices: %s)", opts.index, strings.Join(indexChoices(cfg), ", "))
		}
	}
	return nil
}

// buildRequests turns the ticker list into run requests, appending the
// benchmark index last when one was chosen.
func buildRequests(opts *options, cfg *config.Config) []runner.Request {
	var requests []runner.Request
	for _, t := range strings.Split(opts.tickers, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		requests = append(requests, runner.Request{Label: t})
	}
	if opts.index != "" {
		ticker, _ := cfg.IndexTicker(opts.index)
		requests = append(requests, runner.Request{Label: opts.index, Ticker: ticker})
	}
	return requests
}

func indexChoices(cfg *config.Config) []string {
	choices := make([]string, 0, len(cfg.Indexes))
	for alias := range cfg.Indexes {
		choices = append(choices, alias)
	}
	sort.Strings(choices)
	return choices
}
