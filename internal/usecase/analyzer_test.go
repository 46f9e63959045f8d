package usecase

import (
	"math"
	"strings"
	"testing"

	"swingboard-backend/internal/domain"
	"swingboard-backend/internal/repository"
)

// oscillatingSeries alternates upPct and downPct moves so RSI stays off
// the extremes while the net drift sets the trend direction.
func oscillatingSeries(n int, start, upPct, downPct float64) []float64 {
	series := make([]float64, n)
	price := start
	for i := 0; i < n; i++ {
		series[i] = price
		if i%2 == 0 {
			price *= 1 + upPct/100
		} else {
			price *= 1 + downPct/100
		}
	}
	return series
}

func testAnalyzer() *Analyzer {
	return NewAnalyzer(repository.NewInMemoryHistoryCache())
}

func strongCoin() domain.CoinSnapshot {
	return domain.CoinSnapshot{
		ID: "solana", Name: "Solana", Symbol: "sol",
		CurrentPrice:   150,
		MarketCap:      2_000_000_000,
		TotalVolume:    50_000_000, // ratio 0.025, healthy and rising
		PriceChange24h: 5,
	}
}

func TestAnalyzeCoinStrongBuy(t *testing.T) {
	a := testAnalyzer()
	series := oscillatingSeries(200, 100, 1.5, -0.9)

	got := a.AnalyzeCoin(strongCoin(), series)
	an := got.Analysis

	if !an.IsBullish {
		t.Fatal("rising series should be bullish")
	}
	if an.EMA50 <= an.EMA200 {
		t.Errorf("short EMA %v should exceed long EMA %v on an uptrend", an.EMA50, an.EMA200)
	}
	if an.RSI <= 30 || an.RSI >= 70 {
		t.Fatalf("RSI = %v, fixture should keep it in the healthy band", an.RSI)
	}
	if an.Signal != domain.SignalBuy {
		t.Errorf("Signal = %s, want BUY (score %v)", an.Signal, an.SwingTradingScore)
	}
	if an.SwingTradingScore < 70 {
		t.Errorf("SwingTradingScore = %v, want >= 70", an.SwingTradingScore)
	}
	if an.Strength != "Strong Bullish" {
		t.Errorf("Strength = %q, want Strong Bullish", an.Strength)
	}
	if an.RiskMetrics == nil {
		t.Fatal("RiskMetrics missing on a scored signal")
	}
	if math.Abs(an.RiskMetrics.StopLoss-150*0.975) > 1e-9 {
		t.Errorf("StopLoss = %v, want 2.5%% below price", an.RiskMetrics.StopLoss)
	}
	if an.HoldingPeriod == nil || len(an.HoldingPeriod.Reasoning) != 5 {
		t.Errorf("HoldingPeriod reasoning = %v, want five lines", an.HoldingPeriod)
	}
}

func TestAnalyzeCoinHoldOnModerateDip(t *testing.T) {
	a := testAnalyzer()
	series := oscillatingSeries(200, 100, 1.5, -0.9)

	coin := strongCoin()
	coin.PriceChange24h = -2.5       // bullish trend survives, BUY gate does not
	coin.TotalVolume = 5_000_000     // thin volume

	got := a.AnalyzeCoin(coin, series)
	an := got.Analysis

	if !an.IsBullish {
		t.Fatal("a -2.5 percent dip should not flip the EMA trend")
	}
	if an.Signal != domain.SignalHold {
		t.Errorf("Signal = %s, want HOLD (score %v)", an.Signal, an.SwingTradingScore)
	}
	if an.Strength != "Mixed Bullish" {
		t.Errorf("Strength = %q, want Mixed Bullish", an.Strength)
	}
}

func TestAnalyzeCoinSellOnDowntrend(t *testing.T) {
	a := testAnalyzer()
	series := oscillatingSeries(200, 100, -1.5, 0.9)

	coin := strongCoin()
	coin.PriceChange24h = -1

	got := a.AnalyzeCoin(coin, series)
	an := got.Analysis

	if an.IsBullish {
		t.Fatal("falling series should not be bullish")
	}
	if an.Signal != domain.SignalSell {
		t.Errorf("Signal = %s, want SELL", an.Signal)
	}
	if an.Strength != "Bearish" {
		t.Errorf("Strength = %q, want Bearish", an.Strength)
	}
	if an.RiskMetrics == nil {
		t.Error("a scored SELL still carries risk levels")
	}
}

func TestAnalyzeCoinSharpDropOverridesTrend(t *testing.T) {
	a := testAnalyzer()
	series := oscillatingSeries(200, 100, 1.5, -0.9)

	coin := strongCoin()
	coin.PriceChange24h = -5

	got := a.AnalyzeCoin(coin, series)
	if got.Analysis.IsBullish {
		t.Error("a -5 percent day should override the bullish EMA trend")
	}
	if got.Analysis.Signal != domain.SignalSell {
		t.Errorf("Signal = %s, want SELL when the trend is overridden", got.Analysis.Signal)
	}
}

func TestAnalyzeCoinExtremeDropEarlyExit(t *testing.T) {
	a := testAnalyzer()
	series := oscillatingSeries(200, 100, 1.5, -0.9)

	coin := strongCoin()
	coin.PriceChange24h = -15

	got := a.AnalyzeCoin(coin, series)
	an := got.Analysis

	if an.Signal != domain.SignalSell {
		t.Errorf("Signal = %s, want SELL on extreme drop", an.Signal)
	}
	if an.QualityScore != 0 || an.SwingTradingScore != 0 {
		t.Errorf("scores = %v/%v, want zero on early exit", an.QualityScore, an.SwingTradingScore)
	}
	if an.RiskMetrics != nil {
		t.Error("RiskMetrics should be nil on early exit")
	}
	if an.HoldingPeriod == nil || an.HoldingPeriod.Reasoning[0] != "Extreme conditions detected" {
		t.Errorf("reasoning = %v, want extreme-conditions notice", an.HoldingPeriod)
	}
}

func TestAnalyzeCoinOverboughtEarlyExit(t *testing.T) {
	a := testAnalyzer()
	// Strictly rising series has no losses, so RSI pins at 100.
	series := make([]float64, 200)
	for i := range series {
		series[i] = 100 + float64(i)
	}

	got := a.AnalyzeCoin(strongCoin(), series)
	an := got.Analysis

	if an.RSI != 100 {
		t.Fatalf("RSI = %v, want 100 for a loss-free series", an.RSI)
	}
	if an.Signal != domain.SignalSell || an.RiskMetrics != nil {
		t.Errorf("overbought coin should early-exit to SELL, got %s", an.Signal)
	}
}

func TestAnalyzeCoinShortSeriesAnnotated(t *testing.T) {
	a := testAnalyzer()

	coin := strongCoin()
	coin.PriceChange24h = -15
	series := oscillatingSeries(20, 100, 1.5, -0.9)

	got := a.AnalyzeCoin(coin, series)
	an := got.Analysis

	if an.DataQuality != domain.QualityLimited {
		t.Errorf("DataQuality = %q, want limited for 20 points", an.DataQuality)
	}
	if len(an.HoldingPeriod.Reasoning) != 2 || !strings.Contains(an.HoldingPeriod.Reasoning[1], "Limited data (20 days)") {
		t.Errorf("reasoning = %v, want limited-data line", an.HoldingPeriod.Reasoning)
	}
}

func TestAnalyzeCoinQualityDowngrade(t *testing.T) {
	a := testAnalyzer()

	series := oscillatingSeries(50, 100, 1.5, -0.9)
	got := a.AnalyzeCoin(strongCoin(), series)

	if got.Analysis.DataQuality != domain.QualityBasic {
		t.Errorf("DataQuality = %q, want basic for 50 points", got.Analysis.DataQuality)
	}
	if !strings.Contains(got.Analysis.Note, "50 days") {
		t.Errorf("Note = %q, want day-count annotation", got.Analysis.Note)
	}
}

func TestAnalyzeCoinCacheProvenance(t *testing.T) {
	cache := repository.NewInMemoryHistoryCache()
	series := oscillatingSeries(200, 100, 1.5, -0.9)
	cache.Put("solana", series, 200, true, domain.QualityExcellent)

	a := NewAnalyzer(cache)
	got := a.AnalyzeCoin(strongCoin(), series)

	if !got.Analysis.IsRealData {
		t.Error("IsRealData should follow the cache entry")
	}
	if got.Analysis.DataQuality != domain.QualityExcellent {
		t.Errorf("DataQuality = %q, want the cache label for a full series", got.Analysis.DataQuality)
	}
}

func TestAnalyzeBatchFiltersAndPreservesOrder(t *testing.T) {
	a := testAnalyzer()
	longSeries := oscillatingSeries(200, 100, 1.5, -0.9)

	coins := []domain.CoinSnapshot{
		strongCoin(),
		{ID: "no-history", MarketCap: 2e9, TotalVolume: 5e7},
		{ID: "short-history", MarketCap: 2e9, TotalVolume: 5e7},
		{ID: "illiquid", MarketCap: 2e9, TotalVolume: 50_000},
		{ID: "micro-cap", MarketCap: 500_000, TotalVolume: 5e7},
		{ID: "second", Name: "Second", Symbol: "snd", CurrentPrice: 10, MarketCap: 3e9, TotalVolume: 6e7, PriceChange24h: 2},
	}
	seriesMap := map[string][]float64{
		"solana":        longSeries,
		"short-history": oscillatingSeries(10, 100, 1, -1),
		"illiquid":      longSeries,
		"micro-cap":     longSeries,
		"second":        longSeries,
	}

	got := a.AnalyzeBatch(coins, seriesMap)

	if len(got) != 2 {
		t.Fatalf("AnalyzeBatch kept %d coins, want 2", len(got))
	}
	if got[0].ID != "solana" || got[1].ID != "second" {
		t.Errorf("batch order = [%s %s], want input order preserved", got[0].ID, got[1].ID)
	}
}

func TestAnalyzeBatchLargeGroup(t *testing.T) {
	a := testAnalyzer()
	longSeries := oscillatingSeries(200, 100, 1.5, -0.9)

	var coins []domain.CoinSnapshot
	seriesMap := make(map[string][]float64)
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, id := range ids {
		coins = append(coins, domain.CoinSnapshot{
			ID: id, MarketCap: 2e9, TotalVolume: 5e7, CurrentPrice: 10, PriceChange24h: 1,
		})
		seriesMap[id] = longSeries
	}

	got := a.AnalyzeBatch(coins, seriesMap)
	if len(got) != len(ids) {
		t.Fatalf("analyzed %d coins, want %d", len(got), len(ids))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestHighQualitySignals(t *testing.T) {
	mk := func(id string, score float64, signal domain.Signal) domain.AnalyzedCoin {
		return domain.AnalyzedCoin{
			CoinSnapshot: domain.CoinSnapshot{ID: id},
			Analysis:     domain.EMAData{SwingTradingScore: score, Signal: signal},
		}
	}

	analyzed := []domain.AnalyzedCoin{
		mk("hold-high", 95, domain.SignalHold),
		mk("buy-mid", 85, domain.SignalBuy),
		mk("buy-low", 60, domain.SignalBuy),
		mk("buy-top", 95, domain.SignalBuy),
		mk("buy-floor", 70, domain.SignalBuy),
		mk("sell", 90, domain.SignalSell),
		mk("buy-mid-tie", 85, domain.SignalBuy),
	}

	got := HighQualitySignals(analyzed)

	wantOrder := []string{"buy-top", "buy-mid", "buy-mid-tie", "buy-floor"}
	if len(got) != len(wantOrder) {
		t.Fatalf("kept %d signals, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestHighQualitySignalsEmpty(t *testing.T) {
	if got := HighQualitySignals(nil); len(got) != 0 {
		t.Errorf("HighQualitySignals(nil) = %v, want empty", got)
	}
}
