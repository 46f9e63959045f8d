package usecase

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"swingboard-backend/internal/domain"
	"swingboard-backend/internal/infrastructure/indicators"
)

// Analysis thresholds.
const (
	crossoverBand      = 0.02 // EMA separation below which a crossover is flagged
	sharpDropPct       = -3.0 // 24h drop that overrides a bullish EMA trend
	extremeDropPct     = -10.0
	rsiOverbought      = 80.0
	rsiOversold        = 20.0
	healthyVolumeRatio = 0.01
	risingVolumeRatio  = 0.015
	buyScoreMin        = 70.0
	sellScoreMax       = 30.0
	analysisGroupSize  = 5
)

// Batch pre-filter floors below which no analysis is attempted.
const (
	minSeriesPoints = 14
	minBatchVolume  = 100_000
	minBatchCap     = 1_000_000
)

// Analyzer turns a coin snapshot plus its historical price series into
// a scored trading signal. The cache is read only for provenance
// tagging; the analyzer never writes to it.
type Analyzer struct {
	cache domain.HistoryCache
}

func NewAnalyzer(cache domain.HistoryCache) *Analyzer {
	return &Analyzer{cache: cache}
}

// dataQuality starts from the cache-reported label and downgrades it
// when the series is too short for the configured lookback.
func (a *Analyzer) dataQuality(coinID string, length int) (string, bool) {
	quality := domain.QualityGood
	isReal := false
	if entry, ok := a.cache.Get(coinID); ok {
		quality = entry.DataQuality
		isReal = entry.IsRealData
	}
	if length < 30 {
		quality = domain.QualityLimited
	} else if length < 100 {
		quality = domain.QualityBasic
	}
	return quality, isReal
}

// AnalyzeCoin runs the full signal pipeline for one coin. Deterministic
// for a given snapshot and series; each call produces a fresh record.
func (a *Analyzer) AnalyzeCoin(coin domain.CoinSnapshot, series []float64) domain.AnalyzedCoin {
	length := len(series)
	quality, isReal := a.dataQuality(coin.ID, length)

	// Indicator windows scale with available data so short series
	// produce degraded output instead of failing outright.
	shortWindow := length / 4
	if shortWindow > 50 {
		shortWindow = 50
	}
	longWindow := length / 2
	if longWindow > 200 {
		longWindow = 200
	}
	rsiWindow := length - 1
	if rsiWindow > 14 {
		rsiWindow = 14
	}

	emaShort := indicators.CalculateEMA(series, shortWindow)
	emaLong := indicators.CalculateEMA(series, longWindow)
	rsi := indicators.CalculateRSI(series, rsiWindow)

	emaBullish := emaShort > emaLong
	separation := 0.0
	if emaLong != 0 {
		separation = math.Abs(emaShort-emaLong) / emaLong
	}
	crossover := separation < crossoverBand

	// A sharp 24h drop overrides whatever the EMAs say.
	isBullish := emaBullish
	if coin.PriceChange24h <= sharpDropPct {
		isBullish = false
	}

	analysis := domain.EMAData{
		EMA50:          emaShort,
		EMA200:         emaLong,
		Crossover:      crossover,
		SignalStrength: separation * 100,
		RSI:            rsi,
		IsRealData:     isReal,
		DataQuality:    quality,
	}

	// Cheap rejection of extreme or unanalyzable setups before the
	// scoring runs.
	if coin.PriceChange24h < extremeDropPct || rsi > rsiOverbought || rsi < rsiOversold {
		reasoning := []string{"Extreme conditions detected"}
		if length < 30 {
			reasoning = append(reasoning, fmt.Sprintf("Limited data (%d days)", length))
		}
		analysis.IsBullish = false
		analysis.Strength = "Bearish"
		analysis.Signal = domain.SignalSell
		analysis.QualityScore = 0
		analysis.SwingTradingScore = 0
		analysis.HoldingPeriod = &domain.HoldingPeriod{
			Period:     "1-2 weeks",
			Confidence: domain.ConfidenceLow,
			Reasoning:  reasoning,
		}
		analysis.RiskMetrics = nil
		analysis.ActionRecommendation = "Avoid entry until conditions normalize"
		return domain.AnalyzedCoin{CoinSnapshot: coin, Analysis: analysis}
	}

	// Volume heuristics: the ratio against market cap is a coarse
	// proxy; no volume time series is retained.
	volumeRatio := 0.0
	if coin.MarketCap > 0 {
		volumeRatio = coin.TotalVolume / coin.MarketCap
	}
	isVolumeHealthy := volumeRatio > healthyVolumeRatio
	isVolumeIncreasing := volumeRatio > risingVolumeRatio
	isRSIHealthy := rsi > 30 && rsi < 70
	isRSIOptimal := rsi > 35 && rsi < 65

	// Weighted quality score, weights summing to 100.
	qualityScore := 0.0
	if isBullish {
		qualityScore += 30
	} else {
		qualityScore += 30 * 0.3
	}
	if isRSIHealthy {
		qualityScore += 25
	} else {
		qualityScore += 25 * 0.2
	}
	if isVolumeHealthy {
		qualityScore += 20
	} else {
		qualityScore += 20 * 0.25
	}
	if coin.PriceChange24h > 0 {
		qualityScore += 15
	} else {
		qualityScore += 15 * 0.3
	}
	if coin.MarketCap > 1_000_000_000 {
		qualityScore += 10
	} else {
		qualityScore += 10 * 0.5
	}

	swingScore := qualityScore
	if isVolumeIncreasing {
		swingScore += 10
	}
	if swingScore > 100 {
		swingScore = 100
	}

	var signal domain.Signal
	switch {
	case swingScore >= buyScoreMin && isBullish && isRSIHealthy && coin.PriceChange24h > -2:
		signal = domain.SignalBuy
	case swingScore < sellScoreMax || !isBullish || coin.PriceChange24h < -8:
		signal = domain.SignalSell
	default:
		signal = domain.SignalHold
	}

	risk := CalculateRiskMetrics(coin.CurrentPrice)
	holding := holdingPeriodFor(swingScore, coin, isBullish, isRSIHealthy, isVolumeHealthy)

	strength := "Bearish"
	if isBullish {
		if coin.PriceChange24h > 0 {
			strength = "Strong Bullish"
		} else {
			strength = "Mixed Bullish"
		}
	}

	analysis.IsBullish = isBullish
	analysis.Strength = strength
	analysis.IsRSIHealthy = isRSIHealthy
	analysis.IsRSIOptimal = isRSIOptimal
	analysis.IsVolumeHealthy = isVolumeHealthy
	analysis.IsVolumeIncreasing = isVolumeIncreasing
	analysis.VolumeRatio = volumeRatio
	analysis.VolumeChange = volumeRatio * 100
	analysis.IsVolumeTrendingUp = isVolumeIncreasing
	analysis.Signal = signal
	analysis.QualityScore = qualityScore
	analysis.SwingTradingScore = swingScore
	analysis.HoldingPeriod = holding
	analysis.RiskMetrics = risk
	analysis.SignalReasoning = holding.Reasoning
	analysis.ActionRecommendation = actionFor(signal, risk)
	if quality == domain.QualityLimited || quality == domain.QualityBasic {
		analysis.Note = fmt.Sprintf("Analysis based on %d days of data", length)
	}

	return domain.AnalyzedCoin{CoinSnapshot: coin, Analysis: analysis}
}

// holdingPeriodFor maps the swing trading score to a recommended
// duration with a fixed five-line justification.
func holdingPeriodFor(score float64, coin domain.CoinSnapshot, isBullish, isRSIHealthy, isVolumeHealthy bool) *domain.HoldingPeriod {
	period := "1-2 weeks"
	confidence := domain.ConfidenceLow
	switch {
	case score >= 90:
		period = "1-3 days"
		confidence = domain.ConfidenceHigh
	case score >= 75:
		period = "3-7 days"
		confidence = domain.ConfidenceMedium
	}

	shortTerm := 0.0
	if coin.PriceChange1h != nil {
		shortTerm += *coin.PriceChange1h
	}
	if coin.PriceChange4h != nil {
		shortTerm += *coin.PriceChange4h
	}

	reasoning := []string{
		labelBool(isBullish, "EMA trend is bullish", "EMA trend is bearish"),
		labelBool(coin.PriceChange24h > 0, "24h momentum is positive", "24h momentum is negative"),
		labelBool(shortTerm > 0, "Short-term momentum is positive", "Short-term momentum is negative"),
		labelBool(isRSIHealthy, "RSI is in a healthy range", "RSI is outside the healthy range"),
		labelBool(isVolumeHealthy, "Trading volume is healthy", "Trading volume is thin"),
	}

	return &domain.HoldingPeriod{Period: period, Confidence: confidence, Reasoning: reasoning}
}

func labelBool(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func actionFor(signal domain.Signal, risk *domain.RiskMetrics) string {
	switch signal {
	case domain.SignalBuy:
		return fmt.Sprintf("Consider entry near %.6g with stop at %.6g", risk.SuggestedEntry, risk.StopLoss)
	case domain.SignalSell:
		return "Avoid entry or reduce exposure"
	default:
		return "Wait for a stronger setup"
	}
}

// AnalyzeBatch analyzes coins that pass the hard floors, in concurrent
// groups of five. Groups run sequentially; output order follows input
// order within each group, groups concatenated in submission order.
func (a *Analyzer) AnalyzeBatch(coins []domain.CoinSnapshot, seriesMap map[string][]float64) []domain.AnalyzedCoin {
	eligible := make([]domain.CoinSnapshot, 0, len(coins))
	for _, coin := range coins {
		series := seriesMap[coin.ID]
		if len(series) < minSeriesPoints {
			continue
		}
		if coin.TotalVolume <= minBatchVolume || coin.MarketCap <= minBatchCap {
			continue
		}
		eligible = append(eligible, coin)
	}

	analyzed := make([]domain.AnalyzedCoin, 0, len(eligible))
	for start := 0; start < len(eligible); start += analysisGroupSize {
		end := start + analysisGroupSize
		if end > len(eligible) {
			end = len(eligible)
		}
		group := eligible[start:end]
		results := make([]domain.AnalyzedCoin, len(group))

		var wg sync.WaitGroup
		for i, coin := range group {
			wg.Add(1)
			go func(i int, coin domain.CoinSnapshot) {
				defer wg.Done()
				results[i] = a.AnalyzeCoin(coin, seriesMap[coin.ID])
			}(i, coin)
		}
		wg.Wait()

		analyzed = append(analyzed, results...)
	}
	return analyzed
}

// HighQualitySignals filters to strong BUY setups, descending by swing
// trading score. Equal scores fall back to coin id so the order is
// deterministic.
func HighQualitySignals(analyzed []domain.AnalyzedCoin) []domain.AnalyzedCoin {
	quality := make([]domain.AnalyzedCoin, 0, len(analyzed))
	for _, coin := range analyzed {
		if coin.Analysis.SwingTradingScore >= buyScoreMin && coin.Analysis.Signal == domain.SignalBuy {
			quality = append(quality, coin)
		}
	}
	sort.Slice(quality, func(i, j int) bool {
		if quality[i].Analysis.SwingTradingScore != quality[j].Analysis.SwingTradingScore {
			return quality[i].Analysis.SwingTradingScore > quality[j].Analysis.SwingTradingScore
		}
		return quality[i].ID < quality[j].ID
	})
	return quality
}
