package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL cart repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	c, err := GetCartByUser(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	c = &Cart{ID: uuid.New(), UserID: userID, Items: []*CartItem{}}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO carts (id, user_id) VALUES ($1, $2)`, c.ID, c.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) UpsertItem(ctx context.Context, item *CartItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, price_at_add)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, price_at_add = EXCLUDED.price_at_add`,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.PriceAtAdd)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE carts SET updated_at=$1 WHERE id=$2`, time.Now(), item.CartID)
	return err
}

func (r *postgresRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id=$1 AND product_id=$2`, cartID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return ClearCartItems(ctx, r.db, cartID)
}

// ── transaction-aware store functions ────────────────────────────────────────

// GetCartByUser loads the cart with its items. Returns nil, nil when the
// user has no cart yet.
func GetCartByUser(ctx context.Context, tx database.DBTX, userID string) (*Cart, error) {
	c := &Cart{}
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=$1`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, cart_id, product_id, quantity, price_at_add
		FROM cart_items WHERE cart_id=$1 ORDER BY product_id`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		it := &CartItem{}
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.PriceAtAdd); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

// ClearCartItems empties the cart. Checkout calls this inside its unit of
// work so the clear commits or rolls back with the rest of the order.
func ClearCartItems(ctx context.Context, tx database.DBTX, cartID uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `UPDATE carts SET updated_at=$1 WHERE id=$2`, time.Now(), cartID)
	return err
}
