package usecase

import (
	"math"

	"swingboard-backend/internal/domain"
)

// Fixed risk parameters for swing entries.
const (
	stopLossPct       = 2.5 // percent below current price
	takeProfitPct     = 7.5 // percent above current price
	entryDiscountPct  = 0.5 // suggested entry below current price
	accountSize       = 10000.0
	riskPerTradePct   = 2.0 // percent of account risked per trade
	maxPositionUnits  = 1000.0
	goodRiskRewardMin = 2.5
)

// CalculateRiskMetrics derives stop-loss, take-profit and position
// sizing from the current price alone. Pure function, no history.
func CalculateRiskMetrics(currentPrice float64) *domain.RiskMetrics {
	stopLoss := currentPrice * (1 - stopLossPct/100)
	takeProfit := currentPrice * (1 + takeProfitPct/100)
	suggestedEntry := currentPrice * (1 - entryDiscountPct/100)
	riskReward := takeProfitPct / stopLossPct

	riskAmount := accountSize * riskPerTradePct / 100
	perUnitRisk := (currentPrice - stopLoss) * 100

	units := 0.0
	if perUnitRisk > 0 && !math.IsInf(perUnitRisk, 0) && !math.IsNaN(perUnitRisk) {
		units = math.Floor(math.Min(riskAmount/perUnitRisk, maxPositionUnits))
		if units < 0 || math.IsNaN(units) {
			units = 0
		}
	}

	return &domain.RiskMetrics{
		StopLoss:         stopLoss,
		TakeProfit:       takeProfit,
		SuggestedEntry:   suggestedEntry,
		RiskRewardRatio:  riskReward,
		IsGoodRiskReward: riskReward >= goodRiskRewardMin,
		RecommendedUnits: units,
	}
}
