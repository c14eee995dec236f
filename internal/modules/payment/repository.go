package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/modules/order"
)

// UnitOfWork is the transaction handle RecordPayment threads through its
// order read and transaction insert; the row lock on the order serializes
// concurrent gateway callbacks for the same order.
type UnitOfWork interface {
	// OrderForUpdate re-reads the order under a row lock. nil means not
	// found.
	OrderForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)

	SetOrderStatus(ctx context.Context, id uuid.UUID, status order.Status) error

	CreateTransaction(ctx context.Context, t *Transaction) error
}

// TxRunner opens a unit of work, commits it when fn returns nil, and rolls
// back every write when fn returns an error.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// Repository defines non-transactional data access for payment transactions.
type Repository interface {
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Transaction, error)
	ListAll(ctx context.Context) ([]*Transaction, error)
}
