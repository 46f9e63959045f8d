package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"swingboard-backend/internal/domain"
)

// PostgresHistoryCache is the durable variant of the history cache, so
// fetched series survive process restarts.
type PostgresHistoryCache struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryCache(pool *pgxpool.Pool) *PostgresHistoryCache {
	return &PostgresHistoryCache{pool: pool}
}

func (c *PostgresHistoryCache) Get(coinID string) (*domain.CacheEntry, bool) {
	row := c.pool.QueryRow(context.Background(), `
		select coin_id, data, captured_at, days, is_real_data, data_quality
		from price_history_cache
		where coin_id = $1
	`, coinID)

	var entry domain.CacheEntry
	var raw []byte
	if err := row.Scan(&entry.CoinID, &raw, &entry.Timestamp, &entry.Days, &entry.IsRealData, &entry.DataQuality); err != nil {
		return nil, false
	}
	if err := json.Unmarshal(raw, &entry.Data); err != nil {
		return nil, false
	}
	return &entry, true
}

func (c *PostgresHistoryCache) Put(coinID string, data []float64, days int, isRealData bool, quality string) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("history cache marshal for %s: %v", coinID, err)
		return
	}
	_, err = c.pool.Exec(context.Background(), `
		insert into price_history_cache(coin_id, data, captured_at, days, is_real_data, data_quality)
		values ($1, $2, $3, $4, $5, $6)
		on conflict (coin_id) do update set
			data = excluded.data,
			captured_at = excluded.captured_at,
			days = excluded.days,
			is_real_data = excluded.is_real_data,
			data_quality = excluded.data_quality
	`, coinID, raw, time.Now(), days, isRealData, quality)
	if err != nil {
		log.Printf("history cache put for %s: %v", coinID, err)
	}
}

func (c *PostgresHistoryCache) ClearAll() {
	if _, err := c.pool.Exec(context.Background(), `delete from price_history_cache`); err != nil {
		log.Printf("history cache clear: %v", err)
	}
}

func (c *PostgresHistoryCache) EvictOlderThan(maxAge time.Duration) int {
	tag, err := c.pool.Exec(context.Background(), `
		delete from price_history_cache where captured_at < $1
	`, time.Now().Add(-maxAge))
	if err != nil {
		log.Printf("history cache evict: %v", err)
		return 0
	}
	return int(tag.RowsAffected())
}
