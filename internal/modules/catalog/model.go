package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a storefront item with a mutable stock counter. CurrentStock
// never goes negative; MinStock is the advisory reorder threshold.
type Product struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Description  string     `json:"description,omitempty"`
	Price        float64    `json:"price"`
	CurrentStock int        `json:"current_stock"`
	MinStock     int        `json:"min_stock"`
	Unit         string     `json:"unit"`
	Barcode      string     `json:"barcode,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	IsActive     bool       `json:"is_active"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p *Product) LowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// CreateProductRequest is the payload for creating or updating a product.
type CreateProductRequest struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	CurrentStock int        `json:"current_stock"`
	MinStock     int        `json:"min_stock"`
	Unit         string     `json:"unit"`
	Barcode      string     `json:"barcode"`
	ImageURL     string     `json:"image_url"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}
