package indicators

import (
	"math"
	"testing"
)

func TestCalculateEMAShortSeries(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		period int
		want   float64
	}{
		{"empty", nil, 10, 0},
		{"fewer than period returns last", []float64{1, 2, 3}, 10, 3},
		{"single price", []float64{42.5}, 14, 42.5},
		{"zero period returns last", []float64{5, 6, 7}, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEMA(tt.prices, tt.period)
			if got != tt.want {
				t.Errorf("CalculateEMA(%v, %d) = %v, want %v", tt.prices, tt.period, got, tt.want)
			}
		})
	}
}

func TestCalculateEMASeedIsSimpleMean(t *testing.T) {
	prices := []float64{10, 20, 30, 40}
	got := CalculateEMA(prices, 4)
	if got != 25 {
		t.Errorf("CalculateEMA seed = %v, want 25", got)
	}
}

func TestCalculateEMAConstantSeries(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100
	}
	got := CalculateEMA(prices, 14)
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("EMA of constant series = %v, want 100", got)
	}
}

func TestCalculateEMAFollowsTrend(t *testing.T) {
	// Rising series: EMA lags behind the last price but exceeds the mean.
	prices := make([]float64, 50)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	got := CalculateEMA(prices, 10)
	last := prices[len(prices)-1]
	if got >= last {
		t.Errorf("EMA %v should lag below the last price %v on a rising series", got, last)
	}
	if got <= 140 {
		t.Errorf("EMA %v should sit near the recent prices, not the early ones", got)
	}
}

func TestCalculateEMASmoothingStep(t *testing.T) {
	// One point beyond the seed: ema = price*k + seed*(1-k), k = 2/(n+1).
	prices := []float64{10, 10, 10, 20}
	k := 2.0 / 4.0
	want := 20*k + 10*(1-k)
	got := CalculateEMA(prices, 3)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CalculateEMA = %v, want %v", got, want)
	}
}
