package usecase

import (
	"math"
	"testing"
)

func TestCalculateRiskMetricsLevels(t *testing.T) {
	m := CalculateRiskMetrics(100.0)

	if math.Abs(m.StopLoss-97.5) > 1e-9 {
		t.Errorf("StopLoss = %v, want 97.5", m.StopLoss)
	}
	if math.Abs(m.TakeProfit-107.5) > 1e-9 {
		t.Errorf("TakeProfit = %v, want 107.5", m.TakeProfit)
	}
	if math.Abs(m.SuggestedEntry-99.5) > 1e-9 {
		t.Errorf("SuggestedEntry = %v, want 99.5", m.SuggestedEntry)
	}
	if m.RiskRewardRatio != 3.0 {
		t.Errorf("RiskRewardRatio = %v, want 3.0", m.RiskRewardRatio)
	}
	if !m.IsGoodRiskReward {
		t.Error("IsGoodRiskReward = false, want true for fixed 3:1 ratio")
	}
}

func TestCalculateRiskMetricsOrdering(t *testing.T) {
	for _, price := range []float64{0.0001, 0.37, 1, 250, 68000} {
		m := CalculateRiskMetrics(price)
		if !(m.StopLoss < price && price < m.TakeProfit) {
			t.Errorf("price %v: want stopLoss %v < price < takeProfit %v", price, m.StopLoss, m.TakeProfit)
		}
		if m.SuggestedEntry >= price {
			t.Errorf("price %v: suggested entry %v should sit below price", price, m.SuggestedEntry)
		}
	}
}

func TestCalculateRiskMetricsPositionSizing(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		// risk amount 200 over perUnitRisk (price*0.025*100).
		{"cheap coin hits unit cap", 0.05, 1000},
		{"mid price", 100, 0},
		{"one dollar", 1.0, 80},
		{"forty cents", 0.40, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CalculateRiskMetrics(tt.price)
			if m.RecommendedUnits != tt.want {
				t.Errorf("RecommendedUnits(%v) = %v, want %v", tt.price, m.RecommendedUnits, tt.want)
			}
		})
	}
}

func TestCalculateRiskMetricsZeroPrice(t *testing.T) {
	m := CalculateRiskMetrics(0)
	if m.RecommendedUnits != 0 {
		t.Errorf("RecommendedUnits at zero price = %v, want 0", m.RecommendedUnits)
	}
}
