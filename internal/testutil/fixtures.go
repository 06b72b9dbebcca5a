package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cryptofolio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique
// username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", n))
}

// CreateTestUserWithName creates a user with the given username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@test.com", username),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestHolding creates a holding with the given symbol, quantity, and
// purchase price for the user.
func CreateTestHolding(t *testing.T, db *gorm.DB, userID, symbol string, quantity, purchasePrice float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Coin %d", nextID()),
		Symbol:        symbol,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		LastUpdated:   time.Now(),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestHoldingWithPrice creates a holding that already carries a stored
// current price, as if a valuation read had refreshed it.
func CreateTestHoldingWithPrice(t *testing.T, db *gorm.DB, userID, symbol string, quantity, purchasePrice, currentPrice float64) *models.Holding {
	t.Helper()

	holding := CreateTestHolding(t, db, userID, symbol, quantity, purchasePrice)
	holding.CurrentPrice = currentPrice
	if err := db.Save(holding).Error; err != nil {
		t.Fatalf("failed to set current price on test holding: %v", err)
	}
	return holding
}
