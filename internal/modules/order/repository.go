package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/modules/cart"
	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
	"github.com/supermartlabs/supermart-backend/internal/modules/inventory"
)

// UnitOfWork is the transaction handle checkout and cancellation thread
// through their collaborator calls. Every write made through one UnitOfWork
// becomes visible together or not at all; product reads take row locks so
// racing transactions serialize on stock.
type UnitOfWork interface {
	// CartForUser loads the caller's cart with items. nil means no cart.
	CartForUser(ctx context.Context, userID string) (*cart.Cart, error)

	// ProductForUpdate re-reads the live product under a row lock. nil means
	// the product no longer exists.
	ProductForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error)

	SetProductStock(ctx context.Context, id uuid.UUID, stock int) error

	AppendStockEntry(ctx context.Context, e *inventory.StockEntry) error

	CreateOrder(ctx context.Context, o *Order) error

	// OrderForUpdate loads the order with items under a row lock. nil means
	// not found.
	OrderForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	SetOrderStatus(ctx context.Context, id uuid.UUID, status Status) error

	ClearCart(ctx context.Context, cartID uuid.UUID) error
}

// TxRunner opens a unit of work, commits it when fn returns nil, and rolls
// back every write when fn returns an error.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// Repository defines non-transactional data access for orders.
type Repository interface {
	// GetByID returns the order with items, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	ListAll(ctx context.Context) ([]*Order, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
