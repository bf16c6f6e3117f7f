package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Metrics struct {
		RiskFreeRate       float64 `yaml:"risk_free_rate"`
		TradingDaysPerYear int     `yaml:"trading_days_per_year"`
	} `yaml:"metrics"`
	Indexes    map[string]string `yaml:"indexes"` // alias -> data source ticker
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		WatchCron     string `yaml:"watch_cron"`
		LookbackYears int    `yaml:"lookback_years"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Metrics.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Schedule.WatchCron = v
	}

	// Defaults
	if cfg.Metrics.RiskFreeRate == 0 {
		cfg.Metrics.RiskFreeRate = 0.04
	}
	if cfg.Metrics.TradingDaysPerYear == 0 {
		cfg.Metrics.TradingDaysPerYear = 252
	}
	if cfg.Indexes == nil {
		cfg.Indexes = map[string]string{
			"SP500":       "^GSPC",
			"NASDAQ":      "^IXIC",
			"DOW":         "^DJI",
			"RUSSELL2000": "^RUT",
		}
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Schedule.WatchCron == "" {
		// weekday evenings after US market close
		cfg.Schedule.WatchCron = "0 30 22 * * 1-5"
	}
	if cfg.Schedule.LookbackYears == 0 {
		cfg.Schedule.LookbackYears = 5
	}

	return cfg, nil
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	if c.Metrics.RiskFreeRate < 0 {
		return fmt.Errorf("metrics.risk_free_rate must not be negative")
	}
	if c.Metrics.TradingDaysPerYear <= 0 {
		return fmt.Errorf("metrics.trading_days_per_year must be positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Schedule.LookbackYears <= 0 {
		return fmt.Errorf("schedule.lookback_years must be positive")
	}
	return nil
}

// IndexTicker resolves an index alias (e.g. SP500) to its data source
// ticker (e.g. ^GSPC).
func (c *Config) IndexTicker(alias string) (string, bool) {
	ticker, ok := c.Indexes[alias]
	return ticker, ok
}
