package catalog

import (
	"context"
	"time"
)

// Repository defines data access for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// GetByID returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, id string) (*Product, error)

	// List returns products, optionally filtered by category and active flag.
	List(ctx context.Context, category string, activeOnly bool) ([]*Product, error)

	Update(ctx context.Context, p *Product) error

	// Delete removes the product and, cascading, its stock history.
	Delete(ctx context.Context, id string) error

	// ListLowStock returns products at or below their reorder threshold.
	ListLowStock(ctx context.Context) ([]*Product, error)

	// ListExpiring returns products whose expiry date falls within the window.
	ListExpiring(ctx context.Context, within time.Duration) ([]*Product, error)
}
