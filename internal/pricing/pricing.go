// Package pricing implements the CoinGecko price pipeline: a process-wide
// rate limiter, a short-TTL quote cache, ticker-to-coin-id resolution, and a
// fetch service that degrades to zero-valued quotes instead of failing.
package pricing

import "errors"

// Quote is a point-in-time price and 24h percent change for one symbol.
// The zero value means the price is unknown.
type Quote struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
}

// Sentinel errors for the fetch chain. They stay inside this package;
// Service.FetchQuote normalizes all of them to the zero Quote.
var (
	// ErrThrottled indicates the provider answered with HTTP 429.
	ErrThrottled = errors.New("provider rate limit exceeded")

	// ErrSymbolNotFound indicates a symbol that maps to no coin id,
	// even after a provider search.
	ErrSymbolNotFound = errors.New("symbol not found")
)
