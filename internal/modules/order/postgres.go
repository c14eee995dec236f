package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/database"
	"github.com/supermartlabs/supermart-backend/internal/modules/cart"
	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
	"github.com/supermartlabs/supermart-backend/internal/modules/inventory"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates the PostgreSQL order repository; the returned
// value is also the TxRunner for checkout/cancellation.
func NewPostgresRepository(db *sql.DB) *postgresRepo { //nolint:revive
	return &postgresRepo{db: db}
}

var (
	_ Repository = (*postgresRepo)(nil)
	_ TxRunner   = (*postgresRepo)(nil)
)

// WithinTx runs fn against a unit of work backed by one database transaction.
func (r *postgresRepo) WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return database.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&pgUnitOfWork{tx: tx})
	})
}

// pgUnitOfWork threads a single *sql.Tx through the collaborator stores.
type pgUnitOfWork struct{ tx *sql.Tx }

func (u *pgUnitOfWork) CartForUser(ctx context.Context, userID string) (*cart.Cart, error) {
	return cart.GetCartByUser(ctx, u.tx, userID)
}

func (u *pgUnitOfWork) ProductForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return catalog.GetProductForUpdate(ctx, u.tx, id)
}

func (u *pgUnitOfWork) SetProductStock(ctx context.Context, id uuid.UUID, stock int) error {
	return catalog.SetProductStock(ctx, u.tx, id, stock)
}

func (u *pgUnitOfWork) AppendStockEntry(ctx context.Context, e *inventory.StockEntry) error {
	return inventory.AppendEntry(ctx, u.tx, e)
}

func (u *pgUnitOfWork) CreateOrder(ctx context.Context, o *Order) error {
	_, err := u.tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, user_id, total_price, billing_name, billing_email, shipping_address, payment_method, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.UserID, o.TotalPrice, o.BillingName, o.BillingEmail, o.ShippingAddress, o.PaymentMethod, o.Status)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = u.tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4,$5)`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}

func (u *pgUnitOfWork) OrderForUpdate(ctx context.Context, id uuid.UUID) (*Order, error) {
	return GetOrderForUpdate(ctx, u.tx, id)
}

func (u *pgUnitOfWork) SetOrderStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return SetOrderStatus(ctx, u.tx, id, status)
}

func (u *pgUnitOfWork) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return cart.ClearCartItems(ctx, u.tx, cartID)
}

// ── transaction-aware store functions ────────────────────────────────────────

// GetOrderForUpdate re-reads the order with items under a row lock, so
// transactions racing on the same order serialize. nil means not found.
func GetOrderForUpdate(ctx context.Context, tx database.DBTX, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(tx.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id))
	if err != nil || o == nil {
		return o, err
	}
	o.Items, err = listItems(ctx, tx, o.ID)
	return o, err
}

// SetOrderStatus persists the status through tx.
func SetOrderStatus(ctx context.Context, tx database.DBTX, id uuid.UUID, status Status) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

// ── non-transactional repository ─────────────────────────────────────────────

const orderColumns = `id, user_id, total_price, billing_name, billing_email,
       shipping_address, payment_method, status, created_at, updated_at`

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil || o == nil {
		return o, err
	}
	o.Items, err = listItems(ctx, r.db, o.ID)
	return o, err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return SetOrderStatus(ctx, r.db, id, status)
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := scanOrderRow(rows, o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Items, err = listItems(ctx, r.db, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	err := scanOrderRow(row, o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanOrderRow(row rowScanner, o *Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.TotalPrice, &o.BillingName, &o.BillingEmail,
		&o.ShippingAddress, &o.PaymentMethod, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}

func listItems(ctx context.Context, tx database.DBTX, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id=$1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
