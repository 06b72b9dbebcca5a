// Package valuation contains the pure portfolio math: per-holding value and
// profit/loss plus the aggregate summary. Callers refresh the holdings'
// price fields before invoking anything here; nothing in this package does
// I/O or mutates its inputs.
package valuation

import "cryptofolio/internal/models"

// CurrentValue returns the holding's market value at its current price.
func CurrentValue(h *models.Holding) float64 {
	return h.CurrentPrice * h.Quantity
}

// ProfitLoss returns the unrealized gain or loss against the cost basis.
func ProfitLoss(h *models.Holding) float64 {
	return (h.CurrentPrice - h.PurchasePrice) * h.Quantity
}

// ProfitLossPercent returns the per-unit performance as a percentage of the
// purchase price. A zero or negative cost basis reports flat performance
// rather than dividing by zero.
func ProfitLossPercent(h *models.Holding) float64 {
	if h.PurchasePrice <= 0 {
		return 0
	}
	return (h.CurrentPrice - h.PurchasePrice) / h.PurchasePrice * 100
}

// Performer identifies the best or worst holding by percentage performance.
type Performer struct {
	HoldingID   string  `json:"holding_id"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Performance float64 `json:"performance"`
}

// Summary aggregates a set of holdings into portfolio-level metrics.
// ProfitLossPercent is total profit/loss over total invested; holdings
// fetched at a zero price count as worthless in TotalValue, so a degraded
// provider drags the summary down rather than failing it.
type Summary struct {
	TotalValue        float64    `json:"total_value"`
	TotalInvested     float64    `json:"total_invested"`
	TotalProfitLoss   float64    `json:"total_profit_loss"`
	ProfitLossPercent float64    `json:"profit_loss_percentage"`
	BestPerformer     *Performer `json:"best_performer"`
	WorstPerformer    *Performer `json:"worst_performer"`
}

// Summarize computes the aggregate summary for the given holdings.
// Best and worst performers consider only holdings with a positive purchase
// price and are nil when there are none; on equal performance the first
// holding encountered wins.
func Summarize(holdings []models.Holding) Summary {
	var s Summary

	for i := range holdings {
		h := &holdings[i]
		s.TotalValue += CurrentValue(h)
		s.TotalInvested += h.Quantity * h.PurchasePrice

		if h.PurchasePrice <= 0 {
			continue
		}
		perf := ProfitLossPercent(h)
		if s.BestPerformer == nil || perf > s.BestPerformer.Performance {
			s.BestPerformer = &Performer{HoldingID: h.ID, Name: h.Name, Symbol: h.Symbol, Performance: perf}
		}
		if s.WorstPerformer == nil || perf < s.WorstPerformer.Performance {
			s.WorstPerformer = &Performer{HoldingID: h.ID, Name: h.Name, Symbol: h.Symbol, Performance: perf}
		}
	}

	s.TotalProfitLoss = s.TotalValue - s.TotalInvested
	if s.TotalInvested > 0 {
		s.ProfitLossPercent = s.TotalProfitLoss / s.TotalInvested * 100
	}
	return s
}
