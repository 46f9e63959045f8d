package domain

import "time"

// Signal is the closed set of trading signals the engine can emit.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalHold Signal = "HOLD"
	SignalSell Signal = "SELL"
)

// Data quality labels attached to a cached price series, best to worst.
const (
	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityLimited   = "limited"
	QualityBasic     = "basic"
)

// Confidence levels for a holding period recommendation.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// CoinSnapshot is a point-in-time market record for one coin. It is
// immutable once fetched and replaced wholesale on each refresh cycle.
// The 4h and 1h change fields are not always reported by the provider.
type CoinSnapshot struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Symbol           string   `json:"symbol"`
	CurrentPrice     float64  `json:"currentPrice"`
	MarketCap        float64  `json:"marketCap"`
	TotalVolume      float64  `json:"totalVolume"` // 24h quote volume
	PriceChange24h   float64  `json:"priceChange24h"`
	PriceChange4h    *float64 `json:"priceChange4h,omitempty"`
	PriceChange1h    *float64 `json:"priceChange1h,omitempty"`
	High24h          float64  `json:"high24h"`
	Low24h           float64  `json:"low24h"`
	ATH              float64  `json:"ath"`
	ATHChangePercent float64  `json:"athChangePercent"`
}

// RiskMetrics holds fixed-percentage trade levels derived from the
// current price only. Nil on an AnalyzedCoin means the coin was
// rejected by the early-exit screen before risk levels were computed.
type RiskMetrics struct {
	StopLoss         float64 `json:"stopLoss"`
	TakeProfit       float64 `json:"takeProfit"`
	SuggestedEntry   float64 `json:"suggestedEntry"`
	RiskRewardRatio  float64 `json:"riskRewardRatio"`
	IsGoodRiskReward bool    `json:"isGoodRiskReward"`
	RecommendedUnits float64 `json:"recommendedUnits"`
}

// HoldingPeriod is the recommended position duration derived from the
// swing trading score. Reasoning is a fixed, ordered justification list.
type HoldingPeriod struct {
	Period     string   `json:"period"`
	Confidence string   `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
}

// EMAData is the full per-coin analysis record produced by the signal
// engine. Produced exactly once per analysis pass, never mutated.
type EMAData struct {
	EMA50                float64        `json:"ema50"`
	EMA200               float64        `json:"ema200"`
	IsBullish            bool           `json:"isBullish"`
	Crossover            bool           `json:"crossover"`
	Strength             string         `json:"strength"`       // "Strong Bullish", "Mixed Bullish", "Bearish"
	SignalStrength       float64        `json:"signalStrength"` // EMA separation in percent
	RSI                  float64        `json:"rsi"`
	IsRSIHealthy         bool           `json:"isRSIHealthy"`
	IsRSIOptimal         bool           `json:"isRSIOptimal"`
	IsVolumeHealthy      bool           `json:"isVolumeHealthy"`
	IsVolumeIncreasing   bool           `json:"isVolumeIncreasing"`
	VolumeRatio          float64        `json:"volumeRatio"` // 24h volume / market cap
	VolumeChange         float64        `json:"volumeChange"`
	IsVolumeTrendingUp   bool           `json:"isVolumeTrendingUp"`
	Signal               Signal         `json:"signal"`
	QualityScore         float64        `json:"qualityScore"`
	SwingTradingScore    float64        `json:"swingTradingScore"`
	HoldingPeriod        *HoldingPeriod `json:"holdingPeriod"`
	RiskMetrics          *RiskMetrics   `json:"riskMetrics"`
	IsRealData           bool           `json:"isRealData"`
	DataQuality          string         `json:"dataQuality"`
	SignalReasoning      []string       `json:"signalReasoning,omitempty"`
	ActionRecommendation string         `json:"actionRecommendation,omitempty"`
	Note                 string         `json:"note,omitempty"`
}

// AnalyzedCoin is a CoinSnapshot extended with its analysis record.
// It is a derived, disposable view, never the system of record.
type AnalyzedCoin struct {
	CoinSnapshot
	Analysis EMAData `json:"analysis"`
}

// Default cache windows: 5-minute freshness, 24h age eviction ceiling.
const (
	CacheFreshness = 5 * time.Minute
	CacheMaxAge    = 24 * time.Hour
)

// CacheEntry wraps a cached daily price series for one coin, oldest
// price first. Overwritten whole on each successful fetch.
type CacheEntry struct {
	CoinID      string    `json:"coinId"`
	Data        []float64 `json:"data"`
	Timestamp   time.Time `json:"timestamp"`
	Days        int       `json:"days"`
	IsRealData  bool      `json:"isRealData"`
	DataQuality string    `json:"dataQuality"`
}

// IsFresh reports whether the entry is younger than maxAge at now.
// Staleness does not evict; it only changes provenance on re-read.
func (e *CacheEntry) IsFresh(now time.Time, maxAge time.Duration) bool {
	return now.Sub(e.Timestamp) < maxAge
}
