package repository

import (
	"sync"
	"time"

	"swingboard-backend/internal/domain"
)

// InMemoryHistoryCache keeps at most one price series per coin id.
type InMemoryHistoryCache struct {
	entries map[string]*domain.CacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

func NewInMemoryHistoryCache() *InMemoryHistoryCache {
	return &InMemoryHistoryCache{
		entries: make(map[string]*domain.CacheEntry),
		now:     time.Now,
	}
}

func (c *InMemoryHistoryCache) Get(coinID string) (*domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[coinID]
	if !ok {
		return nil, false
	}
	cp := *entry
	cp.Data = append([]float64(nil), entry.Data...)
	return &cp, true
}

// Put overwrites any existing entry for the coin.
func (c *InMemoryHistoryCache) Put(coinID string, data []float64, days int, isRealData bool, quality string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[coinID] = &domain.CacheEntry{
		CoinID:      coinID,
		Data:        append([]float64(nil), data...),
		Timestamp:   c.now(),
		Days:        days,
		IsRealData:  isRealData,
		DataQuality: quality,
	}
}

func (c *InMemoryHistoryCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.CacheEntry)
}

// EvictOlderThan removes entries older than maxAge and returns how many
// were dropped. Explicit maintenance call; normal reads never evict.
func (c *InMemoryHistoryCache) EvictOlderThan(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	evicted := 0
	for id, entry := range c.entries {
		if now.Sub(entry.Timestamp) >= maxAge {
			delete(c.entries, id)
			evicted++
		}
	}
	return evicted
}
