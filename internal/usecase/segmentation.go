package usecase

import (
	"math"
	"sort"
	"strings"

	"swingboard-backend/internal/domain"
)

// FilterOptions controls the universe filter. Zero thresholds disable
// the corresponding check.
type FilterOptions struct {
	ExcludeStablecoins bool
	ExcludeMemeCoins   bool
	MinMarketCap       float64
	MinVolume          float64
	MaxPrice           float64
	MinPrice           float64
}

func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		ExcludeStablecoins: true,
		ExcludeMemeCoins:   false,
		MinMarketCap:       10_000_000,
		MinVolume:          1_000_000,
		MaxPrice:           10_000,
		MinPrice:           0.0001,
	}
}

// memeKeywords marks obvious meme coins when that filter is enabled.
var memeKeywords = []string{"doge", "shib", "pepe", "floki", "bonk", "inu", "meme", "wojak"}

// Segmenter classifies and filters a coin universe into the segments
// fed to the signal engine. The stablecoin denylist and keyword set are
// injected so heuristic misses can be corrected in config.
type Segmenter struct {
	denylist map[string]bool
	keywords []string
}

func NewSegmenter(denylist, keywords []string) *Segmenter {
	dl := make(map[string]bool, len(denylist))
	for _, id := range denylist {
		dl[strings.ToLower(id)] = true
	}
	return &Segmenter{denylist: dl, keywords: keywords}
}

// isStablecoin is a substring heuristic, not an exact classification;
// false positives and negatives are accepted.
func (s *Segmenter) isStablecoin(coin domain.CoinSnapshot) bool {
	id := strings.ToLower(coin.ID)
	if s.denylist[id] {
		return true
	}
	name := strings.ToLower(coin.Name)
	symbol := strings.ToLower(coin.Symbol)
	for _, kw := range s.keywords {
		if strings.Contains(id, kw) || strings.Contains(name, kw) || strings.Contains(symbol, kw) {
			return true
		}
	}
	return false
}

func isMemeCoin(coin domain.CoinSnapshot) bool {
	id := strings.ToLower(coin.ID)
	name := strings.ToLower(coin.Name)
	for _, kw := range memeKeywords {
		if strings.Contains(id, kw) || strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// FilterCoins keeps a coin only if every active filter passes.
// Pure predicate over the input order; applying it twice is a no-op.
func (s *Segmenter) FilterCoins(coins []domain.CoinSnapshot, opts FilterOptions) []domain.CoinSnapshot {
	kept := make([]domain.CoinSnapshot, 0, len(coins))
	for _, coin := range coins {
		if opts.ExcludeStablecoins && s.isStablecoin(coin) {
			continue
		}
		if opts.ExcludeMemeCoins && isMemeCoin(coin) {
			continue
		}
		if opts.MinMarketCap > 0 && coin.MarketCap < opts.MinMarketCap {
			continue
		}
		if opts.MinVolume > 0 && coin.TotalVolume < opts.MinVolume {
			continue
		}
		if opts.MaxPrice > 0 && coin.CurrentPrice > opts.MaxPrice {
			continue
		}
		if opts.MinPrice > 0 && coin.CurrentPrice < opts.MinPrice {
			continue
		}
		kept = append(kept, coin)
	}
	return kept
}

// segment filters with opts, sorts by less and truncates to limit.
func (s *Segmenter) segment(coins []domain.CoinSnapshot, opts FilterOptions, limit int, less func(a, b domain.CoinSnapshot) bool) []domain.CoinSnapshot {
	filtered := s.FilterCoins(coins, opts)
	sort.SliceStable(filtered, func(i, j int) bool {
		return less(filtered[i], filtered[j])
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// TopMarketCap: established large caps with deep liquidity.
func (s *Segmenter) TopMarketCap(coins []domain.CoinSnapshot, limit int) []domain.CoinSnapshot {
	opts := DefaultFilterOptions()
	opts.MinMarketCap = 1_000_000_000
	opts.MinVolume = 50_000_000
	return s.segment(coins, opts, limit, func(a, b domain.CoinSnapshot) bool {
		return a.MarketCap > b.MarketCap
	})
}

// MidCap: 100M-1B caps ranked by trading activity.
func (s *Segmenter) MidCap(coins []domain.CoinSnapshot, limit int) []domain.CoinSnapshot {
	opts := DefaultFilterOptions()
	opts.MinMarketCap = 100_000_000
	opts.MinVolume = 5_000_000
	filtered := s.FilterCoins(coins, opts)
	capped := make([]domain.CoinSnapshot, 0, len(filtered))
	for _, c := range filtered {
		if c.MarketCap <= 1_000_000_000 {
			capped = append(capped, c)
		}
	}
	sort.SliceStable(capped, func(i, j int) bool {
		return capped[i].TotalVolume > capped[j].TotalVolume
	})
	if len(capped) > limit {
		capped = capped[:limit]
	}
	return capped
}

// Momentum: liquid coins ranked by 24h gain.
func (s *Segmenter) Momentum(coins []domain.CoinSnapshot, limit int) []domain.CoinSnapshot {
	opts := DefaultFilterOptions()
	opts.MinMarketCap = 100_000_000
	opts.MinVolume = 10_000_000
	return s.segment(coins, opts, limit, func(a, b domain.CoinSnapshot) bool {
		return a.PriceChange24h > b.PriceChange24h
	})
}

// Emerging: 10M-100M caps ranked by 24h gain.
func (s *Segmenter) Emerging(coins []domain.CoinSnapshot, limit int) []domain.CoinSnapshot {
	opts := DefaultFilterOptions()
	opts.MinMarketCap = 10_000_000
	opts.MinVolume = 2_000_000
	filtered := s.FilterCoins(coins, opts)
	capped := make([]domain.CoinSnapshot, 0, len(filtered))
	for _, c := range filtered {
		if c.MarketCap <= 100_000_000 {
			capped = append(capped, c)
		}
	}
	sort.SliceStable(capped, func(i, j int) bool {
		return capped[i].PriceChange24h > capped[j].PriceChange24h
	})
	if len(capped) > limit {
		capped = capped[:limit]
	}
	return capped
}

// HighVolatility: biggest absolute 24h movers either direction.
func (s *Segmenter) HighVolatility(coins []domain.CoinSnapshot, limit int) []domain.CoinSnapshot {
	opts := DefaultFilterOptions()
	opts.MinMarketCap = 50_000_000
	opts.MinVolume = 3_000_000
	return s.segment(coins, opts, limit, func(a, b domain.CoinSnapshot) bool {
		return math.Abs(a.PriceChange24h) > math.Abs(b.PriceChange24h)
	})
}

// ComprehensiveSwingPortfolio unions the five segments at their
// portfolio caps, de-duplicated by coin id in first-seen order. This is
// the candidate set handed to the signal engine.
func (s *Segmenter) ComprehensiveSwingPortfolio(coins []domain.CoinSnapshot) []domain.CoinSnapshot {
	segments := [][]domain.CoinSnapshot{
		s.TopMarketCap(coins, 5),
		s.MidCap(coins, 8),
		s.Momentum(coins, 5),
		s.Emerging(coins, 3),
		s.HighVolatility(coins, 4),
	}

	seen := make(map[string]bool)
	portfolio := make([]domain.CoinSnapshot, 0, 25)
	for _, seg := range segments {
		for _, coin := range seg {
			if seen[coin.ID] {
				continue
			}
			seen[coin.ID] = true
			portfolio = append(portfolio, coin)
		}
	}
	return portfolio
}
