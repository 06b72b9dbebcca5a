package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public CoinGecko v3 API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// SimplePriceEntry is one coin's entry in a /simple/price response.
type SimplePriceEntry struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// SearchResult is one coin returned by the /search endpoint.
type SearchResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Image  string `json:"image"`
}

// Client is a thin HTTP client for the CoinGecko API. Callers are
// responsible for rate limiting; the client only speaks the wire format.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewClient creates a CoinGecko client against the given base URL.
// An empty baseURL selects the public API.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SimplePrice fetches current USD prices and 24h changes for the given coin
// ids. Returns ErrThrottled when the provider answers 429.
func (c *Client) SimplePrice(ctx context.Context, ids []string) (map[string]SimplePriceEntry, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")

	var result map[string]SimplePriceEntry
	if err := c.getJSON(ctx, "/simple/price", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Search queries the provider's coin search endpoint. Result symbols are
// normalized to upper case and the thumbnail URL is mapped to Image.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var result struct {
		Coins []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
			Thumb  string `json:"thumb"`
		} `json:"coins"`
	}
	if err := c.getJSON(ctx, "/search", params, &result); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(result.Coins))
	for _, coin := range result.Coins {
		results = append(results, SearchResult{
			ID:     coin.ID,
			Name:   coin.Name,
			Symbol: strings.ToUpper(coin.Symbol),
			Image:  coin.Thumb,
		})
	}
	return results, nil
}

// getJSON performs a GET against path and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", path, ErrThrottled)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
