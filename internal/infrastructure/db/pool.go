package db

import (
	"context"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig sizes the pgx connection pool.
type PoolConfig struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:          10,
		MinConns:          2,
		MaxConnLifetime:   30 * time.Minute,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 30 * time.Second,
	}
}

// ParsePoolConfig builds pool sizing from configured values. Zero conn
// counts and empty or unparsable durations keep their defaults, and
// MinConns is clamped so it never exceeds MaxConns.
func ParsePoolConfig(maxConns, minConns int, lifetime, idleTime, healthCheck string) PoolConfig {
	cfg := DefaultPoolConfig()

	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	if minConns > 0 {
		cfg.MinConns = int32(minConns)
	}
	if d, err := time.ParseDuration(lifetime); err == nil && d > 0 {
		cfg.MaxConnLifetime = d
	}
	if d, err := time.ParseDuration(idleTime); err == nil && d > 0 {
		cfg.MaxConnIdleTime = d
	}
	if d, err := time.ParseDuration(healthCheck); err == nil && d > 0 {
		cfg.HealthCheckPeriod = d
	}

	if cfg.MinConns > cfg.MaxConns {
		cfg.MinConns = cfg.MaxConns
	}
	return cfg
}

// withDefaultSSLMode adds sslmode=require when the URL does not pick
// one; hosted Postgres generally refuses plaintext connections.
func withDefaultSSLMode(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		// Let pgx report the malformed URL.
		return dbURL
	}

	q := u.Query()
	if q.Get("sslmode") != "" {
		return dbURL
	}
	q.Set("sslmode", "require")
	u.RawQuery = q.Encode()
	return u.String()
}

func NewPool(ctx context.Context, databaseURL string, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(withDefaultSSLMode(databaseURL))
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	return pgxpool.NewWithConfig(ctx, poolCfg)
}
