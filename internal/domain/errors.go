package domain

import "errors"

// Provider and batch error values. Per-coin failures during a batch are
// swallowed by the callers; these surface only for whole-batch or
// configuration problems.
var (
	// ErrRateLimited means the provider reported its rate window was
	// exceeded. Never retried automatically; the window reset time is
	// context the caller wants.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrProviderUnavailable is any other network or HTTP failure
	// talking to the market data provider.
	ErrProviderUnavailable = errors.New("market data provider unavailable")

	// ErrMissingAPIKey means the provider credential is absent. Fatal
	// for any fetch attempt, surfaced before the first request.
	ErrMissingAPIKey = errors.New("provider API key not configured")

	// ErrSeriesUnavailable means the provider explicitly reported no
	// historical series for a coin.
	ErrSeriesUnavailable = errors.New("historical series unavailable")

	// ErrNoMarketData means an entire fetch batch produced nothing,
	// distinct from a valid empty analysis result.
	ErrNoMarketData = errors.New("no market data fetched")
)
