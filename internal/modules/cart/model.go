package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds one user's (or anonymous session's) pending selections.
type Cart struct {
	ID        uuid.UUID   `json:"id"`
	UserID    string      `json:"user_id"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CartItem is a product/quantity selection. PriceAtAdd is the price snapshot
// taken when the item entered the cart: checkout prices the order from it,
// but never trusts it for stock.
type CartItem struct {
	ID         uuid.UUID `json:"id"`
	CartID     uuid.UUID `json:"cart_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	PriceAtAdd float64   `json:"price_at_add"`
}
