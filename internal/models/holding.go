package models

import "time"

// WithdrawDeleteThreshold is the residual quantity at or below which a
// withdrawal removes the holding entirely instead of keeping dust.
const WithdrawDeleteThreshold = 0.001

// Holding represents a user's position in one cryptocurrency: a quantity
// plus its cost basis per unit. The current price fields are refreshed from
// the provider on every valuation read and are never authoritative between
// reads. Uniqueness of (user_id, symbol) across live rows is enforced by a
// partial index in the SQL migrations.
type Holding struct {
	Base
	UserID         string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string    `gorm:"not null;size:50" json:"name"`
	Symbol         string    `gorm:"not null;size:10;index" json:"symbol"`
	Quantity       float64   `gorm:"not null" json:"quantity"`
	PurchasePrice  float64   `gorm:"not null" json:"purchase_price"`
	CurrentPrice   float64   `gorm:"default:0" json:"current_price"`
	PriceChange24h float64   `gorm:"column:price_change_24h;default:0" json:"price_change_24h"`
	LastUpdated    time.Time `json:"last_updated"`
}
