package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/inventory"
	"github.com/supermartlabs/supermart-backend/internal/notify"
)

// Audit notes written by the transaction core.
const (
	checkoutNote = "Stock removed for order"
	cancelNote   = "Stock restored due to order cancellation"
)

// txTimeout bounds every checkout/cancel transaction; hitting the deadline
// aborts like any other failure.
const txTimeout = 10 * time.Second

// Service defines the order lifecycle business logic.
type Service interface {
	// Checkout converts the user's cart into a pending order, reserving
	// stock for every line item, all-or-nothing.
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (uuid.UUID, error)

	// Cancel reverses a pending order owned by userID: stock is restored and
	// the order transitions to cancelled.
	Cancel(ctx context.Context, userID, orderID string) error

	// UpdateStatus force-sets an order's status with no stock side effects.
	// The role check is the caller's responsibility.
	UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*Order, error)

	// GetOrder returns the order if callerID owns it or privileged is set.
	GetOrder(ctx context.Context, callerID string, privileged bool, orderID string) (*Order, error)

	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	ListAllOrders(ctx context.Context) ([]*Order, error)
}

// ProductCache drops cached product reads after a committed stock write.
// catalog.Service satisfies it; nil disables invalidation.
type ProductCache interface {
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

type service struct {
	tx         TxRunner
	repo       Repository
	notifier   notify.Notifier
	adminEmail string
	cache      ProductCache
}

// NewService creates a new order service.
func NewService(tx TxRunner, repo Repository, notifier notify.Notifier, adminEmail string, cache ProductCache) Service {
	return &service{tx: tx, repo: repo, notifier: notifier, adminEmail: adminEmail, cache: cache}
}

func (s *service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var placed *Order
	err := s.tx.WithinTx(ctx, func(uow UnitOfWork) error {
		crt, err := uow.CartForUser(ctx, userID)
		if err != nil {
			return err
		}
		if crt == nil || len(crt.Items) == 0 {
			return apperrors.Invalid("cart is empty")
		}

		if req.FullName == "" || req.Email == "" || req.ShippingAddress == "" || req.PaymentMethod == "" {
			return apperrors.Invalid("missing required checkout information")
		}
		method := PaymentMethod(req.PaymentMethod)
		if !method.Valid() {
			return apperrors.Invalid("invalid payment method")
		}

		orderID := uuid.New()
		items := make([]*OrderItem, 0, len(crt.Items))
		for _, line := range crt.Items {
			// Live stock decides sufficiency; the cart's product snapshot is
			// trusted only for price.
			p, err := uow.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return apperrors.NotFound("product not found: %s", line.ProductID)
			}
			if p.CurrentStock < line.Quantity {
				return apperrors.Conflict("insufficient stock for product: %s", p.Name)
			}

			prev := p.CurrentStock
			next := prev - line.Quantity
			if err := uow.SetProductStock(ctx, p.ID, next); err != nil {
				return err
			}
			if err := uow.AppendStockEntry(ctx, &inventory.StockEntry{
				ID:            uuid.New(),
				ProductID:     p.ID,
				ChangeType:    inventory.ChangeRemove,
				Quantity:      line.Quantity,
				PreviousStock: prev,
				NewStock:      next,
				Notes:         checkoutNote,
				PerformedBy:   userID,
			}); err != nil {
				return err
			}

			items = append(items, &OrderItem{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Price:     line.PriceAtAdd,
			})
		}

		var total float64
		for _, it := range items {
			total += it.Price * float64(it.Quantity)
		}

		o := &Order{
			ID:              orderID,
			UserID:          userID,
			Items:           items,
			TotalPrice:      total,
			BillingName:     req.FullName,
			BillingEmail:    req.Email,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   method,
			Status:          StatusPending,
		}
		if err := uow.CreateOrder(ctx, o); err != nil {
			return err
		}
		if err := uow.ClearCart(ctx, crt.ID); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.invalidateProducts(ctx, placed.Items)

	// Notifications go out only after the transaction committed, and a mail
	// failure can no longer affect the order. Online payments notify at
	// capture time instead.
	if placed.PaymentMethod == PaymentInStore {
		s.sendOrderMails(placed)
	}

	return placed.ID, nil
}

func (s *service) Cancel(ctx context.Context, userID, orderID string) error {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return apperrors.Invalid("invalid order id")
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var restored []*OrderItem
	err = s.tx.WithinTx(ctx, func(uow UnitOfWork) error {
		o, err := uow.OrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return apperrors.NotFound("order not found")
		}
		if o.UserID != userID {
			return apperrors.Forbidden("not authorized to cancel this order")
		}
		if o.Status != StatusPending {
			return apperrors.Conflict("order cannot be cancelled as it is already being processed")
		}

		for _, line := range o.Items {
			p, err := uow.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return apperrors.NotFound("product not found: %s", line.ProductID)
			}

			prev := p.CurrentStock
			next := prev + line.Quantity
			if err := uow.SetProductStock(ctx, p.ID, next); err != nil {
				return err
			}
			if err := uow.AppendStockEntry(ctx, &inventory.StockEntry{
				ID:            uuid.New(),
				ProductID:     p.ID,
				ChangeType:    inventory.ChangeAdd,
				Quantity:      line.Quantity,
				PreviousStock: prev,
				NewStock:      next,
				Notes:         cancelNote,
				PerformedBy:   userID,
			}); err != nil {
				return err
			}
		}

		// The order is kept, not deleted, so the audit trail stays complete.
		restored = o.Items
		return uow.SetOrderStatus(ctx, id, StatusCancelled)
	})
	if err != nil {
		return err
	}

	s.invalidateProducts(ctx, restored)
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperrors.Invalid("invalid order id")
	}
	target := Status(req.Status)
	if !target.Valid() {
		return nil, apperrors.Invalid("invalid status: %s", req.Status)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found")
	}
	if !o.Status.CanTransitionTo(target) {
		return nil, apperrors.Conflict("cannot transition order from %s to %s", o.Status, target)
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	o.Status = target
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, callerID string, privileged bool, orderID string) (*Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperrors.Invalid("invalid order id")
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found")
	}
	if !privileged && o.UserID != callerID {
		return nil, apperrors.Forbidden("not authorized to view this order")
	}
	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) invalidateProducts(ctx context.Context, items []*OrderItem) {
	if s.cache == nil || len(items) == 0 {
		return
	}
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	s.cache.Invalidate(ctx, ids...)
}

func (s *service) sendOrderMails(o *Order) {
	notify.Async(s.notifier, notify.OrderConfirmation(
		o.BillingEmail, o.BillingName, o.ID.String(), o.TotalPrice,
		string(o.PaymentMethod), o.ShippingAddress))
	notify.Async(s.notifier, notify.AdminOrderAlert(
		s.adminEmail, o.BillingName, o.BillingEmail, o.ID.String(),
		string(o.PaymentMethod), o.TotalPrice))
}
