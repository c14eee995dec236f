package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to the stock ledger. Writes always go
// through AppendEntry inside a transaction.
type Repository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*StockEntry, error)
	ListAll(ctx context.Context, limit int) ([]*StockEntry, error)
}
