package testutil_test

import (
	"testing"

	"cryptofolio/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "holdings"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a generated ID")
	}

	second := testutil.CreateTestUser(t, db)
	if second.Username == user.Username {
		t.Error("fixture usernames should be unique")
	}

	holding := testutil.CreateTestHolding(t, db, user.ID, "BTC", 0.5, 40000)
	if holding.UserID != user.ID {
		t.Errorf("expected holding owned by %s, got %s", user.ID, holding.UserID)
	}
	if holding.CurrentPrice != 0 {
		t.Errorf("expected zero current price on a fresh holding, got %f", holding.CurrentPrice)
	}

	priced := testutil.CreateTestHoldingWithPrice(t, db, user.ID, "ETH", 2, 3000, 3300)
	if priced.CurrentPrice != 3300 {
		t.Errorf("expected current price 3300, got %f", priced.CurrentPrice)
	}
}
