package indicators

// CalculateEMA computes the Exponential Moving Average of prices
// (oldest first) over period and returns the latest value.
// With fewer prices than period the series is too sparse to smooth;
// the most recent price is returned unchanged.
func CalculateEMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if period <= 0 || len(prices) < period {
		return prices[len(prices)-1]
	}

	k := 2.0 / (float64(period) + 1.0)

	// Seed with the simple mean of the first period prices.
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)

	for i := period; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}
	return ema
}
