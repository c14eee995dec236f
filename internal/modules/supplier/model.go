package supplier

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
)

var (
	supplierIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{10}$`)
)

// Supplier is a vendor record tied to the single product line it supplies.
type Supplier struct {
	ID           uuid.UUID `json:"id"`
	SupplierID   string    `json:"supplier_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	ProductName  string    `json:"product_name"`
	CostPrice    float64   `json:"cost_price"`
	SellingPrice float64   `json:"selling_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSupplierRequest is the payload for creating or updating a supplier.
type CreateSupplierRequest struct {
	SupplierID   string  `json:"supplier_id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	ProductName  string  `json:"product_name"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
}

// Validate enforces the supplier-id and phone formats.
func (r CreateSupplierRequest) Validate() error {
	if r.SupplierID == "" || r.Name == "" || r.Phone == "" || r.ProductName == "" {
		return apperrors.Invalid("missing required supplier fields")
	}
	if !supplierIDPattern.MatchString(r.SupplierID) {
		return apperrors.Invalid("supplier id must be alphanumeric")
	}
	if !phonePattern.MatchString(r.Phone) {
		return apperrors.Invalid("phone number must be exactly 10 digits")
	}
	return nil
}

// PurchaseOrder is a persisted restock request sent to a supplier.
type PurchaseOrder struct {
	ID          uuid.UUID `json:"id"`
	PONumber    string    `json:"po_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// RestockAlert pairs a low-stock product with the supplier to reorder from.
type RestockAlert struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	Supplier     *Supplier `json:"supplier,omitempty"`
}
