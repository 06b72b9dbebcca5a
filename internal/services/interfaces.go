package services

import (
	"context"

	"cryptofolio/internal/models"
	"cryptofolio/internal/pagination"
	"cryptofolio/internal/pricing"
	"cryptofolio/internal/valuation"
)

// QuoteFetcher provides current quotes for ticker symbols.
// Implemented by *pricing.Service.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) pricing.Quote
}

// MarketServicer defines the market-data operations exposed to handlers.
// Implemented by *pricing.Service.
type MarketServicer interface {
	FetchQuote(ctx context.Context, symbol string) pricing.Quote
	Search(ctx context.Context, query string) ([]pricing.SearchResult, error)
	MarketOverview(ctx context.Context) ([]pricing.MarketEntry, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	DeleteUser(id string) error
}

// Dashboard pairs the freshly priced holdings with their aggregate summary.
type Dashboard struct {
	Holdings []models.Holding  `json:"holdings"`
	Summary  valuation.Summary `json:"summary"`
}

// WithdrawResult describes the outcome of a withdrawal. Holding is nil when
// the residual quantity fell under the delete threshold and the holding was
// removed.
type WithdrawResult struct {
	Holding *models.Holding `json:"holding,omitempty"`
	Deleted bool            `json:"deleted"`
	Value   float64         `json:"value"`
}

// PortfolioServicer defines the contract for holdings-related business logic.
type PortfolioServicer interface {
	AddHolding(ctx context.Context, userID, name, symbol string, quantity, purchasePrice float64) (*models.Holding, error)
	GetUserHoldings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error)
	GetHoldingByID(userID, holdingID string) (*models.Holding, error)
	DeleteHolding(userID, holdingID string) error
	Withdraw(userID, holdingID string, quantity float64) (*WithdrawResult, error)
	RefreshPrices(ctx context.Context, userID string) (int, error)
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
	GetStats(userID string) (*valuation.Summary, error)
}
