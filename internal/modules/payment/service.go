package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/order"
	"github.com/supermartlabs/supermart-backend/internal/notify"
)

// Service records payment outcomes reported by the gateway callback.
type Service interface {
	// RecordPayment persists the gateway outcome for a pending
	// online-payment order. A successful payment moves the order to
	// processing and triggers the confirmation mails.
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Transaction, error)

	ListOrderTransactions(ctx context.Context, orderID string) ([]*Transaction, error)

	ListAllTransactions(ctx context.Context) ([]*Transaction, error)
}

type service struct {
	tx         TxRunner
	repo       Repository
	notifier   notify.Notifier
	adminEmail string
}

// NewService creates a new payment service.
func NewService(tx TxRunner, repo Repository, notifier notify.Notifier, adminEmail string) Service {
	return &service{tx: tx, repo: repo, notifier: notifier, adminEmail: adminEmail}
}

func (s *service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Transaction, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, apperrors.Invalid("invalid order id")
	}
	status := TxStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.Invalid("invalid transaction status: %s", req.Status)
	}
	if req.Amount <= 0 {
		return nil, apperrors.Invalid("amount must be positive")
	}
	if len(req.CardLast4) > 4 {
		return nil, apperrors.Invalid("card_last4 must be at most four digits")
	}

	// Eligibility is checked under the order's row lock, in the same
	// transaction as the insert, so two racing callbacks for one order
	// cannot both pass the pending check.
	var (
		t *Transaction
		o *order.Order
	)
	err = s.tx.WithinTx(ctx, func(uow UnitOfWork) error {
		o, err = uow.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperrors.NotFound("order not found")
		}
		if o.PaymentMethod != order.PaymentOnline {
			return apperrors.Conflict("order is not paid online")
		}
		if o.Status != order.StatusPending {
			return apperrors.Conflict("order is not awaiting payment")
		}

		t = &Transaction{
			ID:        uuid.New(),
			OrderID:   orderID,
			Amount:    req.Amount,
			Status:    status,
			CardLast4: req.CardLast4,
		}
		if err := uow.CreateTransaction(ctx, t); err != nil {
			return err
		}

		if status == TxSuccess {
			return uow.SetOrderStatus(ctx, orderID, order.StatusProcessing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == TxSuccess {
		// Payment capture is the online order's confirmation moment.
		notify.Async(s.notifier, notify.OrderConfirmation(
			o.BillingEmail, o.BillingName, o.ID.String(), o.TotalPrice,
			string(o.PaymentMethod), o.ShippingAddress))
		notify.Async(s.notifier, notify.AdminOrderAlert(
			s.adminEmail, o.BillingName, o.BillingEmail, o.ID.String(),
			string(o.PaymentMethod), o.TotalPrice))
	}

	return t, nil
}

func (s *service) ListOrderTransactions(ctx context.Context, orderID string) ([]*Transaction, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperrors.Invalid("invalid order id")
	}
	return s.repo.ListByOrder(ctx, id)
}

func (s *service) ListAllTransactions(ctx context.Context) ([]*Transaction, error) {
	return s.repo.ListAll(ctx)
}
