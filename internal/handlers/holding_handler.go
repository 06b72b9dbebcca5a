package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cryptofolio/internal/errors"
	"cryptofolio/internal/pagination"
	"cryptofolio/internal/services"
)

// HoldingHandler handles holdings-related requests.
type HoldingHandler struct {
	portfolioService services.PortfolioServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(portfolioService services.PortfolioServicer) *HoldingHandler {
	return &HoldingHandler{portfolioService: portfolioService}
}

// AddHoldingRequest represents the request payload for adding a holding.
type AddHoldingRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=50"`
	Symbol        string  `json:"symbol" binding:"required,ticker"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"gte=0"`
}

// WithdrawRequest represents the request payload for withdrawing from a holding.
type WithdrawRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// AddHolding records a new position, or tops up an existing one.
// @Summary     Add holding
// @Description Add a cryptocurrency holding; adding an already held symbol sums the quantity and averages the purchase price
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddHoldingRequest true "Holding details"
// @Success     201 {object} models.Holding "Holding created or updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings [post]
func (h *HoldingHandler) AddHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.portfolioService.AddHolding(c.Request.Context(), userID, req.Name, req.Symbol, req.Quantity, req.PurchasePrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}

// GetHoldings lists the user's holdings.
// @Summary     List holdings
// @Description List the authenticated user's holdings, paginated
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Holding] "Holdings page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings [get]
func (h *HoldingHandler) GetHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.portfolioService.GetUserHoldings(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetHolding returns one holding by id.
// @Summary     Get holding
// @Description Get a single holding by ID
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Success     200 {object} models.Holding "Holding"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id} [get]
func (h *HoldingHandler) GetHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.portfolioService.GetHoldingByID(userID, holdingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// DeleteHolding removes a holding.
// @Summary     Delete holding
// @Description Delete a holding by ID
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Success     200 {object} map[string]string "Holding deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id} [delete]
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.portfolioService.DeleteHolding(userID, holdingID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Holding deleted"})
}

// Withdraw removes quantity from a holding.
// @Summary     Withdraw from holding
// @Description Withdraw a quantity from a holding; near-zero remainders delete the holding
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holding ID"
// @Param       request body WithdrawRequest true "Withdrawal quantity"
// @Success     200 {object} services.WithdrawResult "Withdrawal result"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient quantity"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id}/withdraw [post]
func (h *HoldingHandler) Withdraw(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.portfolioService.Withdraw(userID, holdingID, req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshPrices refreshes the stored price fields for all of the user's holdings.
// @Summary     Refresh prices
// @Description Fetch current quotes for all holdings and persist the refreshed prices
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int "Number of holdings updated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/refresh [post]
func (h *HoldingHandler) RefreshPrices(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.portfolioService.RefreshPrices(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
