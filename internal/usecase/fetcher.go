package usecase

import (
	"errors"
	"log"
	"time"

	"swingboard-backend/internal/domain"
)

// HistoricalClient is the provider surface the fetcher needs.
type HistoricalClient interface {
	GetMarketChart(coinID string, days int) ([]float64, error)
}

// ProgressFunc reports batch progress after each coin is handled.
type ProgressFunc func(processed, total int, coinID string)

// HistoryFetcher retrieves price series for a set of coins, strictly
// sequentially: the provider's rate limit is global, so concurrent
// history requests would violate it.
type HistoryFetcher struct {
	client HistoricalClient
	cache  domain.HistoryCache
	delay  time.Duration
	sleep  func(time.Duration)
	now    func() time.Time
}

func NewHistoryFetcher(client HistoricalClient, cache domain.HistoryCache, delay time.Duration) *HistoryFetcher {
	return &HistoryFetcher{
		client: client,
		cache:  cache,
		delay:  delay,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// FetchSeries returns a map of coin id to price series. Fresh cache
// entries are reused without a network call. A failure on one coin
// leaves it absent from the result and the loop continues; only a
// missing credential or a provider rate-limit report stops the batch.
func (f *HistoryFetcher) FetchSeries(coinIDs []string, lookbackDays int, onProgress ProgressFunc) (map[string][]float64, error) {
	result := make(map[string][]float64, len(coinIDs))
	total := len(coinIDs)
	networkCalls := 0

	for i, coinID := range coinIDs {
		if entry, ok := f.cache.Get(coinID); ok && entry.IsFresh(f.now(), domain.CacheFreshness) {
			result[coinID] = entry.Data
			if onProgress != nil {
				onProgress(i+1, total, coinID)
			}
			continue
		}

		// Pace provider calls; cache hits above cost nothing.
		if networkCalls > 0 {
			f.sleep(f.delay)
		}
		networkCalls++

		series, err := f.client.GetMarketChart(coinID, lookbackDays)
		if err != nil {
			if errors.Is(err, domain.ErrMissingAPIKey) {
				return nil, err
			}
			if errors.Is(err, domain.ErrRateLimited) {
				// Not retried here; the caller wants to know the
				// window was hit, along with whatever succeeded.
				return result, err
			}
			log.Printf("history fetch failed for %s: %v", coinID, err)
			if onProgress != nil {
				onProgress(i+1, total, coinID)
			}
			continue
		}

		f.cache.Put(coinID, series, lookbackDays, true, domain.QualityExcellent)
		result[coinID] = series
		if onProgress != nil {
			onProgress(i+1, total, coinID)
		}
	}

	if total > 0 && len(result) == 0 {
		return result, domain.ErrNoMarketData
	}
	return result, nil
}
