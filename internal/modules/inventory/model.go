package inventory

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType classifies a stock mutation.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeRemove ChangeType = "remove"
	ChangeAdjust ChangeType = "adjust"
	ChangeExpire ChangeType = "expire"
)

// StockEntry is one append-only audit row per product stock mutation.
// Invariant: for add, NewStock = PreviousStock + Quantity; for remove,
// NewStock = PreviousStock - Quantity; for adjust/expire, Quantity is the
// magnitude of the difference.
type StockEntry struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	ChangeType    ChangeType `json:"change_type"`
	Quantity      int        `json:"quantity"`
	PreviousStock int        `json:"previous_stock"`
	NewStock      int        `json:"new_stock"`
	Notes         string     `json:"notes,omitempty"`
	PerformedBy   string     `json:"performed_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Consistent reports whether the entry satisfies the ledger invariant.
func (e *StockEntry) Consistent() bool {
	switch e.ChangeType {
	case ChangeAdd:
		return e.NewStock == e.PreviousStock+e.Quantity
	case ChangeRemove:
		return e.NewStock == e.PreviousStock-e.Quantity
	case ChangeAdjust, ChangeExpire:
		diff := e.NewStock - e.PreviousStock
		if diff < 0 {
			diff = -diff
		}
		return e.Quantity == diff
	default:
		return false
	}
}

// AdjustStockRequest is the payload for a manual stock adjustment.
type AdjustStockRequest struct {
	ChangeType string `json:"change_type"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

// StockChange summarizes the result of an adjustment.
type StockChange struct {
	ProductID     uuid.UUID `json:"product_id"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Difference    int       `json:"difference"`
}
