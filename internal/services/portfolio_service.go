package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "cryptofolio/internal/errors"
	"cryptofolio/internal/models"
	"cryptofolio/internal/pagination"
	"cryptofolio/internal/valuation"
)

// portfolioService handles holdings-related business logic.
type portfolioService struct {
	db     *gorm.DB
	quotes QuoteFetcher
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, quotes QuoteFetcher) PortfolioServicer {
	return &portfolioService{db: db, quotes: quotes}
}

// AddHolding records a position for the user. Adding a symbol the user
// already holds sums the quantities and averages the purchase price with
// the existing one; the straight (old+new)/2 average is kept for output
// compatibility even though it is not quantity weighted. New holdings get
// an initial quote so they render with a price right away.
func (s *portfolioService) AddHolding(ctx context.Context, userID, name, symbol string, quantity, purchasePrice float64) (*models.Holding, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}
	if purchasePrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price cannot be negative")
	}
	symbol = strings.ToUpper(symbol)

	var existing models.Holding
	err := s.db.Where("user_id = ? AND symbol = ?", userID, symbol).First(&existing).Error
	switch {
	case err == nil:
		existing.Quantity += quantity
		existing.PurchasePrice = (existing.PurchasePrice + purchasePrice) / 2
		existing.LastUpdated = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		quote := s.quotes.FetchQuote(ctx, symbol)
		holding := &models.Holding{
			UserID:         userID,
			Name:           name,
			Symbol:         symbol,
			Quantity:       quantity,
			PurchasePrice:  purchasePrice,
			CurrentPrice:   quote.Price,
			PriceChange24h: quote.Change24h,
			LastUpdated:    time.Now(),
		}
		if err := s.db.Create(holding).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return holding, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetUserHoldings returns the user's holdings, paginated.
func (s *portfolioService) GetUserHoldings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Holding], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Holding{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var holdings []models.Holding
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at").
		Scopes(pagination.Paginate(page)).
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(holdings, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetHoldingByID returns a holding scoped to its owner. Another user's
// holding is indistinguishable from a missing one.
func (s *portfolioService) GetHoldingByID(userID, holdingID string) (*models.Holding, error) {
	var holding models.Holding
	if err := s.db.Where("id = ? AND user_id = ?", holdingID, userID).First(&holding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// DeleteHolding removes a holding owned by the user.
func (s *portfolioService) DeleteHolding(userID, holdingID string) error {
	holding, err := s.GetHoldingByID(userID, holdingID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(holding).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Withdraw removes quantity from a holding at its last known price. A
// residual quantity at or below the delete threshold removes the holding
// entirely rather than keeping dust, which also keeps quantities from ever
// going negative.
func (s *portfolioService) Withdraw(userID, holdingID string, quantity float64) (*WithdrawResult, error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}

	holding, err := s.GetHoldingByID(userID, holdingID)
	if err != nil {
		return nil, err
	}
	if quantity > holding.Quantity {
		return nil, apperrors.ErrInsufficientQuantity
	}

	value := quantity * holding.CurrentPrice
	holding.Quantity -= quantity
	holding.LastUpdated = time.Now()

	if holding.Quantity <= models.WithdrawDeleteThreshold {
		if err := s.db.Delete(holding).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &WithdrawResult{Deleted: true, Value: value}, nil
	}

	if err := s.db.Save(holding).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &WithdrawResult{Holding: holding, Value: value}, nil
}

// RefreshPrices fetches a quote for every holding the user has and persists
// the refreshed price fields. Returns the number of holdings updated.
// Failed fetches degrade to zero prices rather than aborting the refresh.
func (s *portfolioService) RefreshPrices(ctx context.Context, userID string) (int, error) {
	holdings, err := s.refreshHoldings(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(holdings), nil
}

// GetDashboard refreshes prices for all holdings, persists them, and
// returns the holdings together with the aggregate summary.
func (s *portfolioService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	holdings, err := s.refreshHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Holdings: holdings,
		Summary:  valuation.Summarize(holdings),
	}, nil
}

// GetStats summarizes the portfolio from the stored price fields without
// hitting the provider. Stats reads are cheap and tolerate prices up to one
// dashboard refresh old.
func (s *portfolioService) GetStats(userID string) (*valuation.Summary, error) {
	var holdings []models.Holding
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary := valuation.Summarize(holdings)
	return &summary, nil
}

// refreshHoldings loads the user's holdings, fetches a quote per distinct
// symbol, and persists the updated price fields.
func (s *portfolioService) refreshHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	for i := range holdings {
		h := &holdings[i]
		quote := s.quotes.FetchQuote(ctx, h.Symbol)
		h.CurrentPrice = quote.Price
		h.PriceChange24h = quote.Change24h
		h.LastUpdated = now

		if err := s.db.Model(h).Updates(map[string]interface{}{
			"current_price":    h.CurrentPrice,
			"price_change_24h": h.PriceChange24h,
			"last_updated":     h.LastUpdated,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return holdings, nil
}
