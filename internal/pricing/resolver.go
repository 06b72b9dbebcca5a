package pricing

import (
	"context"
	"strings"
)

// coinIDs maps well-known tickers to their CoinGecko coin ids so the common
// case never costs an API call.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"XRP":   "ripple",
	"BNB":   "binancecoin",
	"DOGE":  "dogecoin",
	"SOL":   "solana",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"VET":   "vechain",
	"FIL":   "filecoin",
	"TRX":   "tron",
	"ETC":   "ethereum-classic",
	"XLM":   "stellar",
	"BCH":   "bitcoin-cash",
}

// Resolver translates a ticker symbol into a CoinGecko coin id, falling back
// to a provider text search when the static table has no entry.
type Resolver struct {
	client  *Client
	limiter *RateLimiter
}

// NewResolver creates a resolver using the given client and rate limiter.
func NewResolver(client *Client, limiter *RateLimiter) *Resolver {
	return &Resolver{client: client, limiter: limiter}
}

// Resolve returns the coin id for symbol. Unknown symbols trigger one
// rate-limited search call; when the search matches, the first result's id
// is taken without disambiguation. Returns ErrSymbolNotFound when the
// search comes back empty, or ErrThrottled when the provider refused it.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (string, error) {
	if id, ok := coinIDs[strings.ToUpper(symbol)]; ok {
		return id, nil
	}

	r.limiter.Wait()
	results, err := r.client.Search(ctx, symbol)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", ErrSymbolNotFound
	}
	return results[0].ID, nil
}
