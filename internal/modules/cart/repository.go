package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
)

// Repository defines data access for carts.
type Repository interface {
	// GetOrCreate returns the user's cart with items, creating an empty one
	// if none exists.
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)

	// UpsertItem inserts the item or, when the product is already in the
	// cart, replaces its quantity.
	UpsertItem(ctx context.Context, item *CartItem) error

	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error

	Clear(ctx context.Context, cartID uuid.UUID) error
}

// ProductGetter is the slice of the catalog the cart needs: stock-advisory
// checks at add time and the price snapshot.
type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
}
