package payment

import (
	"time"

	"github.com/google/uuid"
)

// TxStatus is the outcome reported by the payment gateway.
type TxStatus string

const (
	TxSuccess  TxStatus = "success"
	TxFailed   TxStatus = "failed"
	TxRefunded TxStatus = "refunded"
)

// Valid reports whether s is a known outcome literal.
func (s TxStatus) Valid() bool {
	return s == TxSuccess || s == TxFailed || s == TxRefunded
}

// Transaction records one payment attempt against an order. Card data is
// never stored beyond the last four digits.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Amount    float64   `json:"amount"`
	Status    TxStatus  `json:"status"`
	CardLast4 string    `json:"card_last4,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordPaymentRequest is the payload for reporting a payment outcome.
type RecordPaymentRequest struct {
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CardLast4 string  `json:"card_last4"`
}
