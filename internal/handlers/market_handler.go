package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cryptofolio/internal/logger"
	"cryptofolio/internal/pricing"
	"cryptofolio/internal/services"
)

// MarketHandler handles market-data requests backed by the price provider.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// Search searches the provider's coin catalog.
// Provider failures degrade to an empty result list; a broken search box is
// not worth a 5xx on a dashboard page.
// @Summary     Search coins
// @Description Search cryptocurrencies by name or symbol, capped at 10 results
// @Tags        market
// @Produce     json
// @Param       query query string true "Search text (min 2 characters)"
// @Success     200 {object} map[string][]pricing.SearchResult "Matching coins"
// @Router      /market/search [get]
func (h *MarketHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if len(query) < 2 {
		c.JSON(http.StatusOK, gin.H{"results": []pricing.SearchResult{}})
		return
	}

	results, err := h.marketService.Search(c.Request.Context(), query)
	if err != nil {
		logger.Get().Warnw("coin search failed", "query", query, "error", err)
		results = []pricing.SearchResult{}
	}
	if results == nil {
		results = []pricing.SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetPrice returns the current quote for one symbol. The quote is zero
// valued when the symbol is unknown or the provider is unavailable.
// @Summary     Get coin price
// @Description Current USD price and 24h change for a ticker symbol
// @Tags        market
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} pricing.Quote "Current quote"
// @Router      /market/price/{symbol} [get]
func (h *MarketHandler) GetPrice(c *gin.Context) {
	symbol := c.Param("symbol")
	quote := h.marketService.FetchQuote(c.Request.Context(), symbol)
	c.JSON(http.StatusOK, quote)
}

// GetOverview returns current prices for a fixed set of popular coins.
// @Summary     Market overview
// @Description Current prices and 24h changes for popular coins
// @Tags        market
// @Produce     json
// @Success     200 {object} map[string][]pricing.MarketEntry "Market data"
// @Failure     500 {object} ErrorResponse "Provider unavailable"
// @Router      /market/overview [get]
func (h *MarketHandler) GetOverview(c *gin.Context) {
	entries, err := h.marketService.MarketOverview(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"market_data": entries})
}
