package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cryptofolio/internal/logger"
)

// maxSearchResults caps the number of coins returned to API callers.
const maxSearchResults = 10

// popularCoinIDs drive the market overview endpoint.
var popularCoinIDs = []string{
	"bitcoin", "ethereum", "cardano", "polkadot", "chainlink",
	"litecoin", "ripple", "binancecoin", "dogecoin", "solana",
}

// MarketEntry is one coin in the market overview.
type MarketEntry struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"current_price"`
	Change24h float64 `json:"price_change_24h"`
}

// Service orchestrates the quote cache, rate limiter, resolver, and
// CoinGecko client into the price-fetch pipeline.
type Service struct {
	client   *Client
	resolver *Resolver
	cache    *QuoteCache
	limiter  *RateLimiter
}

// NewService wires the pricing components together.
func NewService(client *Client, resolver *Resolver, cache *QuoteCache, limiter *RateLimiter) *Service {
	return &Service{
		client:   client,
		resolver: resolver,
		cache:    cache,
		limiter:  limiter,
	}
}

// FetchQuote returns the current quote for symbol. It never fails outward:
// resolution failures, provider throttling, and network errors all degrade
// to the zero Quote, which is logged here but not cached. A cache hit skips
// rate limiting entirely. Callers that need to tell "no data" from a truly
// worthless holding must check Price == 0 together with the holding's
// last-updated timestamp.
func (s *Service) FetchQuote(ctx context.Context, symbol string) Quote {
	if quote, ok := s.cache.Get(symbol); ok {
		return quote
	}

	quote, err := s.fetchQuote(ctx, symbol)
	if err != nil {
		switch {
		case errors.Is(err, ErrThrottled):
			logger.Get().Warnw("provider throttled", "symbol", symbol, "error", err)
		case errors.Is(err, ErrSymbolNotFound):
			logger.Get().Warnw("unknown symbol", "symbol", symbol)
		default:
			logger.Get().Errorw("price fetch failed", "symbol", symbol, "error", err)
		}
		return Quote{}
	}

	s.cache.Put(symbol, quote)
	return quote
}

// fetchQuote runs the uncached fetch chain. Each provider round-trip is
// individually rate limited; the resolver waits again before its own
// search call.
func (s *Service) fetchQuote(ctx context.Context, symbol string) (Quote, error) {
	s.limiter.Wait()
	id, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	s.limiter.Wait()
	prices, err := s.client.SimplePrice(ctx, []string{id})
	if err != nil {
		return Quote{}, err
	}

	entry, ok := prices[id]
	if !ok {
		return Quote{}, fmt.Errorf("no price data for coin %s", id)
	}
	return Quote{Price: entry.USD, Change24h: entry.USD24hChange}, nil
}

// Search runs a rate-limited provider search and returns at most
// maxSearchResults coins.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	s.limiter.Wait()
	results, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results, nil
}

// MarketOverview fetches current prices for a fixed set of popular coins.
func (s *Service) MarketOverview(ctx context.Context) ([]MarketEntry, error) {
	s.limiter.Wait()
	prices, err := s.client.SimplePrice(ctx, popularCoinIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]MarketEntry, 0, len(popularCoinIDs))
	for _, id := range popularCoinIDs {
		info, ok := prices[id]
		if !ok {
			continue
		}
		entries = append(entries, MarketEntry{
			Name:      displayName(id),
			Symbol:    strings.ToUpper(id),
			Price:     info.USD,
			Change24h: info.USD24hChange,
		})
	}
	return entries, nil
}

// displayName turns a coin id like "bitcoin-cash" into "Bitcoin Cash".
func displayName(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
