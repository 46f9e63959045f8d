package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Provider struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"provider"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		URL               string `yaml:"url"`
		MaxConns          int    `yaml:"max_conns"`
		MinConns          int    `yaml:"min_conns"`
		MaxConnLifetime   string `yaml:"max_conn_lifetime"`
		MaxConnIdleTime   string `yaml:"max_conn_idle_time"`
		HealthCheckPeriod string `yaml:"health_check_period"`
	} `yaml:"database"`
	Analysis struct {
		LookbackDays       int      `yaml:"lookback_days"`
		MaxCoins           int      `yaml:"max_coins"`
		StablecoinDenylist []string `yaml:"stablecoin_denylist"`
		StablecoinKeywords []string `yaml:"stablecoin_keywords"`
	} `yaml:"analysis"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; env and
// defaults alone can configure the service.
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
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if n, err := strconv.Atoi(os.Getenv("DB_MAX_CONNS")); err == nil {
		cfg.Database.MaxConns = n
	}
	if n, err := strconv.Atoi(os.Getenv("DB_MIN_CONNS")); err == nil {
		cfg.Database.MinConns = n
	}
	if v := os.Getenv("DB_MAX_CONN_LIFETIME"); v != "" {
		cfg.Database.MaxConnLifetime = v
	}
	if v := os.Getenv("DB_MAX_CONN_IDLE_TIME"); v != "" {
		cfg.Database.MaxConnIdleTime = v
	}
	if v := os.Getenv("DB_HEALTHCHECK_PERIOD"); v != "" {
		cfg.Database.HealthCheckPeriod = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "@every 10m"
	}
	if cfg.Analysis.LookbackDays == 0 {
		cfg.Analysis.LookbackDays = 200
	}
	if cfg.Analysis.MaxCoins == 0 {
		cfg.Analysis.MaxCoins = 30
	}
	if len(cfg.Analysis.StablecoinDenylist) == 0 {
		cfg.Analysis.StablecoinDenylist = DefaultStablecoinDenylist()
	}
	if len(cfg.Analysis.StablecoinKeywords) == 0 {
		cfg.Analysis.StablecoinKeywords = DefaultStablecoinKeywords()
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	return nil
}

// DefaultStablecoinDenylist lists coin identifiers always excluded from
// trend analysis. Configurable so heuristic misses can be corrected
// without touching engine code.
func DefaultStablecoinDenylist() []string {
	return []string{
		"tether", "usd-coin", "binance-usd", "dai", "true-usd",
		"frax", "paxos-standard", "usdd", "gemini-dollar",
		"first-digital-usd", "ethena-usde",
	}
}

// DefaultStablecoinKeywords lists substrings that mark a coin as a
// stablecoin or a pegged wrapper when found in its id, name or symbol.
func DefaultStablecoinKeywords() []string {
	return []string{
		"usdt", "usdc", "busd", "tusd", "usdd", "usde", "dai",
		"stable", "bridged", "wrapped", "pegged", "staked",
	}
}
