package supplier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/notify"
)

// Service defines the supplier back-office operations.
type Service interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	// RestockAlerts lists products at or below their reorder threshold,
	// each joined (by product name) to the supplier that carries it.
	RestockAlerts(ctx context.Context) ([]*RestockAlert, error)

	// GeneratePurchaseOrder persists a purchase order for the product's
	// supplier and mails it, best-effort.
	GeneratePurchaseOrder(ctx context.Context, productID string, quantity int) (*PurchaseOrder, error)

	ListPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error)
}

type service struct {
	repo     Repository
	products ProductStore
	notifier notify.Notifier
}

// NewService creates a new supplier service.
func NewService(repo Repository, products ProductStore, notifier notify.Notifier) Service {
	return &service{repo: repo, products: products, notifier: notifier}
}

func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sup := &Supplier{
		ID:           uuid.New(),
		SupplierID:   req.SupplierID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		ProductName:  req.ProductName,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Invalid("invalid supplier id")
	}
	sup, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, apperrors.NotFound("supplier not found")
	}
	return sup, nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (*Supplier, error) {
	sup, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sup.SupplierID = req.SupplierID
	sup.Name = req.Name
	sup.Phone = req.Phone
	sup.Email = req.Email
	sup.ProductName = req.ProductName
	sup.CostPrice = req.CostPrice
	sup.SellingPrice = req.SellingPrice

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) DeleteSupplier(ctx context.Context, id string) error {
	sup, err := s.GetSupplier(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, sup.ID)
}

func (s *service) RestockAlerts(ctx context.Context) ([]*RestockAlert, error) {
	low, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]*RestockAlert, 0, len(low))
	for _, p := range low {
		alert := &RestockAlert{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
		}
		// A product without a matching supplier still alerts; the join is
		// advisory.
		sup, err := s.repo.GetByProductName(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		alert.Supplier = sup
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (s *service) GeneratePurchaseOrder(ctx context.Context, productID string, quantity int) (*PurchaseOrder, error) {
	if quantity <= 0 {
		return nil, apperrors.Invalid("quantity must be positive")
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found")
	}

	sup, err := s.repo.GetByProductName(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, apperrors.NotFound("no supplier carries product: %s", p.Name)
	}

	po := &PurchaseOrder{
		ID:          uuid.New(),
		PONumber:    fmt.Sprintf("PO-%d", time.Now().UnixNano()),
		SupplierID:  sup.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
	}
	if err := s.repo.CreatePurchaseOrder(ctx, po); err != nil {
		return nil, err
	}

	if sup.Email != "" {
		notify.Async(s.notifier, notify.PurchaseOrderMail(
			sup.Email, sup.Name, p.Name, quantity, po.PONumber))
	}
	return po, nil
}

func (s *service) ListPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error) {
	return s.repo.ListPurchaseOrders(ctx)
}

// RestockWatcher periodically logs products that fell to their reorder
// threshold. It stops when ctx is cancelled.
func RestockWatcher(ctx context.Context, svc Service, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alerts, err := svc.RestockAlerts(ctx)
			if err != nil {
				log.Printf("restock watcher: %v", err)
				continue
			}
			for _, a := range alerts {
				log.Printf("restock alert: %s at %d (min %d)",
					a.ProductName, a.CurrentStock, a.MinStock)
			}
		}
	}
}
