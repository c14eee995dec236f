package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/order"
	"github.com/supermartlabs/supermart-backend/internal/notify"
)

// memStore is an in-memory TxRunner + UnitOfWork + Repository. Transactions
// are serialized by a mutex and rolled back by snapshot, mirroring the row
// lock the real store takes on the order.
type memStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*order.Order
	txs    []*Transaction
}

var (
	_ TxRunner   = (*memStore)(nil)
	_ Repository = (*memStore)(nil)
)

func newMemStore(orders ...*order.Order) *memStore {
	s := &memStore{orders: map[uuid.UUID]*order.Order{}}
	for _, o := range orders {
		cp := *o
		s.orders[o.ID] = &cp
	}
	return s
}

func (s *memStore) WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	statuses := map[uuid.UUID]order.Status{}
	for id, o := range s.orders {
		statuses[id] = o.Status
	}
	txCount := len(s.txs)

	if err := fn(&memUnitOfWork{s: s}); err != nil {
		for id, st := range statuses {
			s.orders[id].Status = st
		}
		s.txs = s.txs[:txCount]
		return err
	}
	return nil
}

type memUnitOfWork struct{ s *memStore }

func (u *memUnitOfWork) OrderForUpdate(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := u.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (u *memUnitOfWork) SetOrderStatus(_ context.Context, id uuid.UUID, status order.Status) error {
	u.s.orders[id].Status = status
	return nil
}

func (u *memUnitOfWork) CreateTransaction(_ context.Context, t *Transaction) error {
	cp := *t
	u.s.txs = append(u.s.txs, &cp)
	return nil
}

func (s *memStore) ListByOrder(_ context.Context, orderID uuid.UUID) ([]*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Transaction
	for _, t := range s.txs {
		if t.OrderID == orderID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) ListAll(_ context.Context) ([]*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Transaction(nil), s.txs...), nil
}

func (s *memStore) orderStatus(id uuid.UUID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Status
}

func (s *memStore) txCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

type chanNotifier struct {
	sent chan notify.Message
}

func (n *chanNotifier) Send(_ context.Context, m notify.Message) error {
	n.sent <- m
	return nil
}

func pendingOnlineOrder() *order.Order {
	return &order.Order{
		ID:              uuid.New(),
		UserID:          "user-1",
		TotalPrice:      42.5,
		BillingName:     "Jane Doe",
		BillingEmail:    "jane@example.com",
		ShippingAddress: "1 Main Street",
		PaymentMethod:   order.PaymentOnline,
		Status:          order.StatusPending,
	}
}

func TestRecordPayment(t *testing.T) {
	t.Run("success moves order to processing and mails", func(t *testing.T) {
		o := pendingOnlineOrder()
		store := newMemStore(o)
		mails := &chanNotifier{sent: make(chan notify.Message, 4)}
		svc := NewService(store, store, mails, "admin@supermart.com")

		tx, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
			OrderID:   o.ID.String(),
			Amount:    42.5,
			Status:    "success",
			CardLast4: "4242",
		})
		require.NoError(t, err)
		assert.Equal(t, TxSuccess, tx.Status)
		assert.Equal(t, "4242", tx.CardLast4)
		assert.Equal(t, order.StatusProcessing, store.orderStatus(o.ID))
		assert.Equal(t, 1, store.txCount())

		recipients := map[string]bool{}
		for i := 0; i < 2; i++ {
			select {
			case m := <-mails.sent:
				recipients[m.To] = true
			case <-time.After(2 * time.Second):
				t.Fatal("expected two notifications")
			}
		}
		assert.True(t, recipients["jane@example.com"])
		assert.True(t, recipients["admin@supermart.com"])
	})

	t.Run("failed payment leaves the order pending", func(t *testing.T) {
		o := pendingOnlineOrder()
		store := newMemStore(o)
		mails := &chanNotifier{sent: make(chan notify.Message, 4)}
		svc := NewService(store, store, mails, "admin@supermart.com")

		tx, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
			OrderID: o.ID.String(),
			Amount:  42.5,
			Status:  "failed",
		})
		require.NoError(t, err)
		assert.Equal(t, TxFailed, tx.Status)
		assert.Equal(t, order.StatusPending, store.orderStatus(o.ID))

		select {
		case m := <-mails.sent:
			t.Fatalf("unexpected notification to %s", m.To)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("rejections", func(t *testing.T) {
		inStore := pendingOnlineOrder()
		inStore.PaymentMethod = order.PaymentInStore
		processing := pendingOnlineOrder()
		processing.Status = order.StatusProcessing

		tests := []struct {
			name     string
			req      RecordPaymentRequest
			orders   []*order.Order
			wantKind apperrors.Kind
		}{
			{
				name:     "malformed order id",
				req:      RecordPaymentRequest{OrderID: "nope", Amount: 1, Status: "success"},
				wantKind: apperrors.KindInvalid,
			},
			{
				name:     "unknown status",
				req:      RecordPaymentRequest{OrderID: uuid.NewString(), Amount: 1, Status: "declined"},
				wantKind: apperrors.KindInvalid,
			},
			{
				name:     "non-positive amount",
				req:      RecordPaymentRequest{OrderID: uuid.NewString(), Amount: 0, Status: "success"},
				wantKind: apperrors.KindInvalid,
			},
			{
				name:     "order not found",
				req:      RecordPaymentRequest{OrderID: uuid.NewString(), Amount: 1, Status: "success"},
				wantKind: apperrors.KindNotFound,
			},
			{
				name:     "in-store order",
				req:      RecordPaymentRequest{OrderID: inStore.ID.String(), Amount: 1, Status: "success"},
				orders:   []*order.Order{inStore},
				wantKind: apperrors.KindConflict,
			},
			{
				name:     "already processing",
				req:      RecordPaymentRequest{OrderID: processing.ID.String(), Amount: 1, Status: "success"},
				orders:   []*order.Order{processing},
				wantKind: apperrors.KindConflict,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := newMemStore(tt.orders...)
				svc := NewService(store, store, notify.LogNotifier{}, "admin@supermart.com")

				_, err := svc.RecordPayment(context.Background(), tt.req)
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				assert.Zero(t, store.txCount(), "no transaction row on rejection")
			})
		}
	})
}

// Two gateway callbacks for the same order race: the row lock serializes
// them, so exactly one records a success and the other sees the order
// already moved on.
func TestRecordPaymentConcurrentCallbacks(t *testing.T) {
	o := pendingOnlineOrder()
	store := newMemStore(o)
	svc := NewService(store, store, notify.LogNotifier{}, "admin@supermart.com")

	req := RecordPaymentRequest{
		OrderID: o.ID.String(),
		Amount:  42.5,
		Status:  "success",
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPayment(context.Background(), req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperrors.KindOf(err) == apperrors.KindConflict:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, store.txCount(), "exactly one transaction row")
	assert.Equal(t, order.StatusProcessing, store.orderStatus(o.ID))
}
