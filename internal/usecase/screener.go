package usecase

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"swingboard-backend/internal/domain"
	"swingboard-backend/internal/infrastructure/coingecko"
	"swingboard-backend/internal/infrastructure/fcm"
)

// snapshotPageSize is how many coins one snapshot request covers.
const snapshotPageSize = 250

// ScreenerUsecase runs the refresh cycle: snapshot, segmentation,
// history fetch, batch analysis, persistence, notification.
type ScreenerUsecase struct {
	signals   domain.SignalRepository
	cache     domain.HistoryCache
	client    *coingecko.Client
	fetcher   *HistoryFetcher
	segmenter *Segmenter
	analyzer  *Analyzer
	fcmClient *fcm.Client
	tokenRepo domain.DeviceTokenRepository

	lookbackDays int
	maxCoins     int

	notifiedCoins map[string]time.Time
	mu            sync.RWMutex

	cron *cron.Cron
}

func NewScreenerUsecase(
	signals domain.SignalRepository,
	cache domain.HistoryCache,
	client *coingecko.Client,
	segmenter *Segmenter,
	fcmClient *fcm.Client,
	tokenRepo domain.DeviceTokenRepository,
	lookbackDays, maxCoins int,
) *ScreenerUsecase {
	return &ScreenerUsecase{
		signals:       signals,
		cache:         cache,
		client:        client,
		fetcher:       NewHistoryFetcher(client, cache, coingecko.MinRequestInterval),
		segmenter:     segmenter,
		analyzer:      NewAnalyzer(cache),
		fcmClient:     fcmClient,
		tokenRepo:     tokenRepo,
		lookbackDays:  lookbackDays,
		maxCoins:      maxCoins,
		notifiedCoins: make(map[string]time.Time),
	}
}

// Start schedules refresh cycles on the given cron spec and kicks off
// an immediate first cycle.
func (uc *ScreenerUsecase) Start(cronSpec string) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cronSpec, uc.RunCycle); err != nil {
		// Fall back to the standard 5-field format.
		c = cron.New()
		if _, err := c.AddFunc(cronSpec, uc.RunCycle); err != nil {
			return err
		}
	}
	uc.cron = c
	c.Start()
	go uc.RunCycle()
	return nil
}

func (uc *ScreenerUsecase) Stop() {
	if uc.cron != nil {
		uc.cron.Stop()
	}
}

// RunCycle executes one full refresh pass. Partial data is the
// expected steady state; only a dead provider aborts the pass.
func (uc *ScreenerUsecase) RunCycle() {
	start := time.Now()
	log.Println("Starting analysis cycle...")

	snapshot, err := uc.client.GetMarkets(snapshotPageSize)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			log.Printf("Snapshot fetch rate limited, skipping cycle: %v", err)
		} else {
			log.Printf("Snapshot fetch failed: %v", err)
		}
		return
	}

	portfolio := uc.segmenter.ComprehensiveSwingPortfolio(snapshot)
	if len(portfolio) > uc.maxCoins {
		portfolio = portfolio[:uc.maxCoins]
	}
	log.Printf("Candidate portfolio: %d coins", len(portfolio))

	coinIDs := make([]string, len(portfolio))
	for i, coin := range portfolio {
		coinIDs[i] = coin.ID
	}

	seriesMap, err := uc.fetcher.FetchSeries(coinIDs, uc.lookbackDays, func(processed, total int, coinID string) {
		log.Printf("History %d/%d: %s", processed, total, coinID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoMarketData) || errors.Is(err, domain.ErrMissingAPIKey) {
			log.Printf("History fetch failed, keeping previous signals: %v", err)
			return
		}
		// Rate limited partway through: analyze what we have.
		log.Printf("History fetch incomplete: %v", err)
	}

	analyzed := uc.analyzer.AnalyzeBatch(portfolio, seriesMap)
	uc.signals.SaveCoins(analyzed)

	if evicted := uc.cache.EvictOlderThan(domain.CacheMaxAge); evicted > 0 {
		log.Printf("Evicted %d stale cache entries", evicted)
	}

	uc.notifyHighQualitySignals(analyzed)

	log.Printf("Cycle completed in %v. Analyzed %d of %d candidates.",
		time.Since(start), len(analyzed), len(portfolio))
}
