package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptofolio/internal/services"
)

// PortfolioHandler handles valuation-related requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// GetDashboard returns the user's holdings with freshly fetched prices plus
// the aggregate summary.
// @Summary     Portfolio dashboard
// @Description Refresh all holding prices and return them with the portfolio summary
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/dashboard [get]
func (h *PortfolioHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.portfolioService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetStats returns the portfolio summary computed from the stored prices,
// without hitting the price provider.
// @Summary     Portfolio statistics
// @Description Portfolio summary with best and worst performers, from last stored prices
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} valuation.Summary "Portfolio statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/stats [get]
func (h *PortfolioHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.portfolioService.GetStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
