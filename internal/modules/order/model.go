package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// validTransitions defines the allowed status moves. Terminal states are
// frozen; any non-terminal order may be force-set by an authorized operator,
// including straight to cancelled or refunded.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded},
	StatusProcessing: {StatusPending, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded},
	StatusShipped:    {StatusPending, StatusProcessing, StatusDelivered, StatusCancelled, StatusRefunded},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// Valid reports whether s is one of the defined status literals.
func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are defined from s.
func (s Status) Terminal() bool {
	return s.Valid() && len(validTransitions[s]) == 0
}

// CanTransitionTo reports whether an operator may move an order from s to t.
func (s Status) CanTransitionTo(t Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == t {
			return true
		}
	}
	return false
}

// PaymentMethod indicates how the customer pays.
type PaymentMethod string

const (
	PaymentOnline  PaymentMethod = "online-payment"
	PaymentInStore PaymentMethod = "in-store-payment"
)

// Valid reports whether m is one of the two accepted literals.
func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentInStore
}

// Order is the immutable snapshot created at checkout. Only Status mutates
// afterwards.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	UserID          string        `json:"user_id"`
	Items           []*OrderItem  `json:"items"`
	TotalPrice      float64       `json:"total_price"`
	BillingName     string        `json:"billing_name"`
	BillingEmail    string        `json:"billing_email"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Status          Status        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderItem is a single line item. Price is the cart's snapshot taken at
// add-to-cart time, deliberately not re-fetched at checkout.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

// CheckoutRequest is the payload for placing an order.
type CheckoutRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

// UpdateStatusRequest is the payload for force-setting an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
