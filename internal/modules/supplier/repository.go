package supplier

import (
	"context"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
)

// Repository defines data access for suppliers and purchase orders.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error

	// GetByID returns nil, nil when the supplier does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// GetByProductName returns nil, nil when no supplier carries the product.
	GetByProductName(ctx context.Context, productName string) (*Supplier, error)

	List(ctx context.Context) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreatePurchaseOrder(ctx context.Context, po *PurchaseOrder) error
	ListPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error)
}

// ProductStore is the slice of the catalog repository this package needs.
// catalog.Repository satisfies it.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
	ListLowStock(ctx context.Context) ([]*catalog.Product, error)
}
