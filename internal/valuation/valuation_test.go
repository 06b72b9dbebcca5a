package valuation

import (
	"math"
	"testing"

	"cryptofolio/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func holding(id, name, symbol string, qty, purchase, current float64) models.Holding {
	h := models.Holding{
		Name:          name,
		Symbol:        symbol,
		Quantity:      qty,
		PurchasePrice: purchase,
		CurrentPrice:  current,
	}
	h.ID = id
	return h
}

func TestCurrentValue(t *testing.T) {
	h := holding("h1", "Bitcoin", "BTC", 0.5, 40000, 45000)
	if got := CurrentValue(&h); !almostEqual(got, 22500) {
		t.Errorf("CurrentValue = %v, want 22500", got)
	}
}

func TestProfitLoss(t *testing.T) {
	h := holding("h1", "Bitcoin", "BTC", 0.5, 40000, 45000)
	if got := ProfitLoss(&h); !almostEqual(got, 2500) {
		t.Errorf("ProfitLoss = %v, want 2500", got)
	}
}

func TestProfitLossPercent(t *testing.T) {
	t.Run("gain", func(t *testing.T) {
		h := holding("h1", "Bitcoin", "BTC", 2, 100, 150)
		if got := ProfitLossPercent(&h); !almostEqual(got, 50) {
			t.Errorf("ProfitLossPercent = %v, want 50", got)
		}
	})

	t.Run("loss", func(t *testing.T) {
		h := holding("h1", "Bitcoin", "BTC", 2, 100, 80)
		if got := ProfitLossPercent(&h); !almostEqual(got, -20) {
			t.Errorf("ProfitLossPercent = %v, want -20", got)
		}
	})

	t.Run("zero purchase price reports flat", func(t *testing.T) {
		h := holding("h1", "Airdrop", "AIR", 1000, 0, 3)
		if got := ProfitLossPercent(&h); got != 0 {
			t.Errorf("ProfitLossPercent = %v, want 0", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("aggregates totals and picks performers", func(t *testing.T) {
		holdings := []models.Holding{
			holding("h1", "Bitcoin", "BTC", 0.5, 40000, 45000), // +12.5%
			holding("h2", "Ethereum", "ETH", 10, 3000, 2400),   // -20%
			holding("h3", "Solana", "SOL", 100, 20, 30),        // +50%
		}

		s := Summarize(holdings)

		if !almostEqual(s.TotalValue, 22500+24000+3000) {
			t.Errorf("TotalValue = %v, want 49500", s.TotalValue)
		}
		if !almostEqual(s.TotalInvested, 20000+30000+2000) {
			t.Errorf("TotalInvested = %v, want 52000", s.TotalInvested)
		}
		if !almostEqual(s.TotalProfitLoss, -2500) {
			t.Errorf("TotalProfitLoss = %v, want -2500", s.TotalProfitLoss)
		}
		if !almostEqual(s.ProfitLossPercent, -2500.0/52000*100) {
			t.Errorf("ProfitLossPercent = %v", s.ProfitLossPercent)
		}
		if s.BestPerformer == nil || s.BestPerformer.HoldingID != "h3" {
			t.Errorf("BestPerformer = %+v, want h3", s.BestPerformer)
		}
		if s.WorstPerformer == nil || s.WorstPerformer.HoldingID != "h2" {
			t.Errorf("WorstPerformer = %+v, want h2", s.WorstPerformer)
		}
	})

	t.Run("mixed gain and loss", func(t *testing.T) {
		holdings := []models.Holding{
			holding("h1", "Ethereum", "ETH", 2, 100, 150), // +50%
			holding("h2", "Litecoin", "LTC", 1, 50, 40),   // -20%
		}

		s := Summarize(holdings)

		if !almostEqual(s.TotalValue, 340) {
			t.Errorf("TotalValue = %v, want 340", s.TotalValue)
		}
		if !almostEqual(s.TotalInvested, 250) {
			t.Errorf("TotalInvested = %v, want 250", s.TotalInvested)
		}
		if !almostEqual(s.TotalProfitLoss, 90) {
			t.Errorf("TotalProfitLoss = %v, want 90", s.TotalProfitLoss)
		}
		if !almostEqual(s.ProfitLossPercent, 36) {
			t.Errorf("ProfitLossPercent = %v, want 36", s.ProfitLossPercent)
		}
		if s.BestPerformer == nil || s.BestPerformer.Symbol != "ETH" {
			t.Errorf("BestPerformer = %+v, want ETH", s.BestPerformer)
		}
		if s.WorstPerformer == nil || s.WorstPerformer.Symbol != "LTC" {
			t.Errorf("WorstPerformer = %+v, want LTC", s.WorstPerformer)
		}
	})

	t.Run("empty portfolio", func(t *testing.T) {
		s := Summarize(nil)
		if s.TotalValue != 0 || s.TotalInvested != 0 || s.TotalProfitLoss != 0 || s.ProfitLossPercent != 0 {
			t.Errorf("expected zero summary, got %+v", s)
		}
		if s.BestPerformer != nil || s.WorstPerformer != nil {
			t.Errorf("expected nil performers, got best=%+v worst=%+v", s.BestPerformer, s.WorstPerformer)
		}
	})

	t.Run("ties keep the first holding", func(t *testing.T) {
		holdings := []models.Holding{
			holding("h1", "Bitcoin", "BTC", 1, 100, 110),
			holding("h2", "Ethereum", "ETH", 1, 200, 220),
		}

		s := Summarize(holdings)

		if s.BestPerformer == nil || s.BestPerformer.HoldingID != "h1" {
			t.Errorf("BestPerformer = %+v, want h1", s.BestPerformer)
		}
		if s.WorstPerformer == nil || s.WorstPerformer.HoldingID != "h1" {
			t.Errorf("WorstPerformer = %+v, want h1", s.WorstPerformer)
		}
	})

	t.Run("zero purchase price holdings count toward totals but not performers", func(t *testing.T) {
		holdings := []models.Holding{
			holding("h1", "Airdrop", "AIR", 1000, 0, 3),
			holding("h2", "Bitcoin", "BTC", 1, 100, 90),
		}

		s := Summarize(holdings)

		if !almostEqual(s.TotalValue, 3090) {
			t.Errorf("TotalValue = %v, want 3090", s.TotalValue)
		}
		if s.BestPerformer == nil || s.BestPerformer.HoldingID != "h2" {
			t.Errorf("BestPerformer = %+v, want h2", s.BestPerformer)
		}
		if s.WorstPerformer == nil || s.WorstPerformer.HoldingID != "h2" {
			t.Errorf("WorstPerformer = %+v, want h2", s.WorstPerformer)
		}
	})

	t.Run("degraded quotes drag value down without failing", func(t *testing.T) {
		holdings := []models.Holding{
			holding("h1", "Bitcoin", "BTC", 1, 40000, 0), // provider returned nothing
			holding("h2", "Ethereum", "ETH", 1, 3000, 3300),
		}

		s := Summarize(holdings)

		if !almostEqual(s.TotalValue, 3300) {
			t.Errorf("TotalValue = %v, want 3300", s.TotalValue)
		}
		if !almostEqual(s.TotalProfitLoss, 3300-43000) {
			t.Errorf("TotalProfitLoss = %v, want -39700", s.TotalProfitLoss)
		}
	})
}
