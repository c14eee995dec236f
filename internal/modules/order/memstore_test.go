package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/modules/cart"
	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
	"github.com/supermartlabs/supermart-backend/internal/modules/inventory"
)

// memStore is an in-memory TxRunner + Repository. Transactions are
// serialized by a mutex and rolled back by snapshot, so tests can exercise
// the real atomicity and no-oversell behavior without a database.
type memStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
	carts    map[string]*cart.Cart
	entries  []*inventory.StockEntry
	orders   map[uuid.UUID]*Order
}

var (
	_ TxRunner   = (*memStore)(nil)
	_ Repository = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		products: map[uuid.UUID]*catalog.Product{},
		carts:    map[string]*cart.Cart{},
		orders:   map[uuid.UUID]*Order{},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.snapshot()
	if err := fn(&memUnitOfWork{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	products map[uuid.UUID]*catalog.Product
	carts    map[string]*cart.Cart
	entries  []*inventory.StockEntry
	orders   map[uuid.UUID]*Order
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		products: map[uuid.UUID]*catalog.Product{},
		carts:    map[string]*cart.Cart{},
		entries:  append([]*inventory.StockEntry(nil), s.entries...),
		orders:   map[uuid.UUID]*Order{},
	}
	for id, p := range s.products {
		snap.products[id] = copyProduct(p)
	}
	for uid, c := range s.carts {
		snap.carts[uid] = copyCart(c)
	}
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.carts = snap.carts
	s.entries = snap.entries
	s.orders = snap.orders
}

func copyProduct(p *catalog.Product) *catalog.Product {
	cp := *p
	return &cp
}

func copyCart(c *cart.Cart) *cart.Cart {
	cp := *c
	cp.Items = make([]*cart.CartItem, len(c.Items))
	for i, it := range c.Items {
		item := *it
		cp.Items[i] = &item
	}
	return &cp
}

func copyOrder(o *Order) *Order {
	cp := *o
	cp.Items = make([]*OrderItem, len(o.Items))
	for i, it := range o.Items {
		item := *it
		cp.Items[i] = &item
	}
	return &cp
}

type memUnitOfWork struct{ s *memStore }

func (u *memUnitOfWork) CartForUser(_ context.Context, userID string) (*cart.Cart, error) {
	c, ok := u.s.carts[userID]
	if !ok {
		return nil, nil
	}
	return copyCart(c), nil
}

func (u *memUnitOfWork) ProductForUpdate(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := u.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (u *memUnitOfWork) SetProductStock(_ context.Context, id uuid.UUID, stock int) error {
	if stock < 0 {
		return fmt.Errorf("negative stock for product %s", id)
	}
	p, ok := u.s.products[id]
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}
	p.CurrentStock = stock
	return nil
}

func (u *memUnitOfWork) AppendStockEntry(_ context.Context, e *inventory.StockEntry) error {
	if !e.Consistent() {
		return fmt.Errorf("inconsistent stock entry for product %s", e.ProductID)
	}
	cp := *e
	u.s.entries = append(u.s.entries, &cp)
	return nil
}

func (u *memUnitOfWork) CreateOrder(_ context.Context, o *Order) error {
	if _, exists := u.s.orders[o.ID]; exists {
		return fmt.Errorf("duplicate order %s", o.ID)
	}
	u.s.orders[o.ID] = copyOrder(o)
	return nil
}

func (u *memUnitOfWork) OrderForUpdate(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := u.s.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (u *memUnitOfWork) SetOrderStatus(_ context.Context, id uuid.UUID, status Status) error {
	o, ok := u.s.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = status
	return nil
}

func (u *memUnitOfWork) ClearCart(_ context.Context, cartID uuid.UUID) error {
	for _, c := range u.s.carts {
		if c.ID == cartID {
			c.Items = nil
			return nil
		}
	}
	return fmt.Errorf("cart %s not found", cartID)
}

// ── Repository ───────────────────────────────────────────────────────────────

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (s *memStore) ListByUser(_ context.Context, userID string) ([]*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (s *memStore) ListAll(_ context.Context) ([]*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Order
	for _, o := range s.orders {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = status
	return nil
}

// test helpers operating on the raw state

func (s *memStore) productStock(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].CurrentStock
}

func (s *memStore) entriesFor(id uuid.UUID) []*inventory.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*inventory.StockEntry
	for _, e := range s.entries {
		if e.ProductID == id {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) cartItems(userID string) []*cart.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil
	}
	return copyCart(c).Items
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
