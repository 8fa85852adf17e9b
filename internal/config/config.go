package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockDash/internal/calculator"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	DataSource struct {
		Provider       string        `yaml:"provider"` // yahoo | mock
		BaseURL        string        `yaml:"base_url"`
		SearchURL      string        `yaml:"search_url"`
		Proxy          string        `yaml:"proxy"`
		RequestsPerSec int           `yaml:"requests_per_sec"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		MaxRetryTime   time.Duration `yaml:"max_retry_time"`
	} `yaml:"data_source"`
	Indicators calculator.IndicatorConfig `yaml:"indicators"`
	Watchlist  struct {
		Defaults []string `yaml:"defaults"`
		Overview []string `yaml:"overview"`
	} `yaml:"watchlist"`
	Schedule struct {
		QuoteRefreshCron string `yaml:"quote_refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads .env (if present) and the YAML file, then applies environment
// variable overrides and defaults. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("QUOTE_REFRESH_CRON"); v != "" {
		c.Schedule.QuoteRefreshCron = v
	}
	if v := os.Getenv("RSI_PERIOD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RSI_PERIOD: %w", err)
		}
		c.Indicators.RSIPeriod = n
	}
	if v := os.Getenv("EMA_PERIODS"); v != "" {
		periods, err := parseInts(v)
		if err != nil {
			return fmt.Errorf("EMA_PERIODS: %w", err)
		}
		c.Indicators.EMAPeriods = periods
	}
	if v := os.Getenv("WATCHLIST_DEFAULTS"); v != "" {
		c.Watchlist.Defaults = splitList(v)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.DataSource.SearchURL == "" {
		c.DataSource.SearchURL = "https://query2.finance.yahoo.com"
	}
	if c.DataSource.RequestsPerSec == 0 {
		c.DataSource.RequestsPerSec = 5
	}
	if c.DataSource.RequestTimeout == 0 {
		c.DataSource.RequestTimeout = 30 * time.Second
	}
	if c.DataSource.MaxRetryTime == 0 {
		c.DataSource.MaxRetryTime = 20 * time.Second
	}
	c.Indicators = c.Indicators.WithDefaults()
	if len(c.Watchlist.Defaults) == 0 {
		c.Watchlist.Defaults = []string{"AAPL", "NVDA", "TSLA", "MSFT"}
	}
	if len(c.Watchlist.Overview) == 0 {
		c.Watchlist.Overview = []string{"^GSPC", "^IXIC", "^DJI", "^RUT"}
	}
	if c.Schedule.QuoteRefreshCron == "" {
		c.Schedule.QuoteRefreshCron = "*/30 * * * * *"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/stockdash.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.DataSource.RequestsPerSec <= 0 {
		return fmt.Errorf("data_source.requests_per_sec must be positive")
	}
	if err := c.Indicators.Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	parts := splitList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
