package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// providerServer is a fake CoinGecko API. Status codes and payloads are
// settable per test, and it counts calls per endpoint.
type providerServer struct {
	*httptest.Server

	searchCalls  int
	priceCalls   int
	searchStatus int
	priceStatus  int
	coins        []map[string]string
	prices       map[string]SimplePriceEntry
}

func newProviderServer() *providerServer {
	p := &providerServer{
		searchStatus: http.StatusOK,
		priceStatus:  http.StatusOK,
		prices:       make(map[string]SimplePriceEntry),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		p.searchCalls++
		if p.searchStatus != http.StatusOK {
			w.WriteHeader(p.searchStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"coins": p.coins})
	})
	mux.HandleFunc("/simple/price", func(w http.ResponseWriter, r *http.Request) {
		p.priceCalls++
		if p.priceStatus != http.StatusOK {
			w.WriteHeader(p.priceStatus)
			return
		}
		out := make(map[string]SimplePriceEntry)
		for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
			if entry, ok := p.prices[id]; ok {
				out[id] = entry
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	p.Server = httptest.NewServer(mux)
	return p
}

func newTestClient(p *providerServer) *Client {
	return NewClient(p.Server.Client(), p.URL)
}

// newTestLimiter returns a limiter that never actually sleeps.
func newTestLimiter() *RateLimiter {
	l := NewRateLimiter(time.Millisecond)
	l.sleep = func(time.Duration) {}
	return l
}

func TestClientSimplePrice(t *testing.T) {
	t.Run("parses price and 24h change", func(t *testing.T) {
		p := newProviderServer()
		defer p.Close()
		p.prices["bitcoin"] = SimplePriceEntry{USD: 45000.5, USD24hChange: 2.3}

		got, err := newTestClient(p).SimplePrice(context.Background(), []string{"bitcoin"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["bitcoin"].USD != 45000.5 || got["bitcoin"].USD24hChange != 2.3 {
			t.Errorf("unexpected entry: %+v", got["bitcoin"])
		}
	})

	t.Run("429 maps to ErrThrottled", func(t *testing.T) {
		p := newProviderServer()
		defer p.Close()
		p.priceStatus = http.StatusTooManyRequests

		_, err := newTestClient(p).SimplePrice(context.Background(), []string{"bitcoin"})
		if !errors.Is(err, ErrThrottled) {
			t.Errorf("expected ErrThrottled, got %v", err)
		}
	})

	t.Run("other failure statuses are plain errors", func(t *testing.T) {
		p := newProviderServer()
		defer p.Close()
		p.priceStatus = http.StatusInternalServerError

		_, err := newTestClient(p).SimplePrice(context.Background(), []string{"bitcoin"})
		if err == nil {
			t.Fatal("expected error for status 500")
		}
		if errors.Is(err, ErrThrottled) {
			t.Error("500 must not be reported as throttling")
		}
	})
}

func TestClientSearch(t *testing.T) {
	t.Run("maps coins and upper-cases symbols", func(t *testing.T) {
		p := newProviderServer()
		defer p.Close()
		p.coins = []map[string]string{
			{"id": "bitcoin", "name": "Bitcoin", "symbol": "btc", "thumb": "https://img/btc.png"},
		}

		got, err := newTestClient(p).Search(context.Background(), "bitcoin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 result, got %d", len(got))
		}
		want := SearchResult{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Image: "https://img/btc.png"}
		if got[0] != want {
			t.Errorf("expected %+v, got %+v", want, got[0])
		}
	})

	t.Run("429 maps to ErrThrottled", func(t *testing.T) {
		p := newProviderServer()
		defer p.Close()
		p.searchStatus = http.StatusTooManyRequests

		_, err := newTestClient(p).Search(context.Background(), "bitcoin")
		if !errors.Is(err, ErrThrottled) {
			t.Errorf("expected ErrThrottled, got %v", err)
		}
	})
}
