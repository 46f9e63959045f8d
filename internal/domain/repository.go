package domain

import "time"

// SignalRepository stores the result of the latest analysis pass.
type SignalRepository interface {
	SaveCoins(coins []AnalyzedCoin)
	GetCoins() []AnalyzedCoin
}

// HistoryCache stores one price series per coin with freshness
// metadata. Put overwrites any existing entry for the coin.
type HistoryCache interface {
	Get(coinID string) (*CacheEntry, bool)
	Put(coinID string, data []float64, days int, isRealData bool, quality string)
	ClearAll()
	EvictOlderThan(maxAge time.Duration) int
}
