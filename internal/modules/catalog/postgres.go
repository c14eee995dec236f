package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/database"
)

const productColumns = `id, name, category, description, price, current_stock, min_stock,
       unit, barcode, image_url, is_active, expiry_date, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, category, description, price, current_stock, min_stock,
		   unit, barcode, image_url, is_active, expiry_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.Name, p.Category, p.Description, p.Price, p.CurrentStock, p.MinStock,
		p.Unit, p.Barcode, p.ImageURL, p.IsActive, p.ExpiryDate)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, uid))
}

func (r *postgresRepository) List(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category=$%d`, len(args))
	}
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`
	return r.queryProducts(ctx, query, args...)
}

func (r *postgresRepository) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, category=$2, description=$3, price=$4, min_stock=$5,
		    unit=$6, barcode=$7, image_url=$8, is_active=$9, expiry_date=$10, updated_at=$11
		WHERE id=$12`,
		p.Name, p.Category, p.Description, p.Price, p.MinStock,
		p.Unit, p.Barcode, p.ImageURL, p.IsActive, p.ExpiryDate, time.Now(), p.ID)
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	return database.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stock_history WHERE product_id=$1`, uid); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
		return err
	})
}

func (r *postgresRepository) ListLowStock(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE current_stock <= min_stock AND is_active ORDER BY name`)
}

func (r *postgresRepository) ListExpiring(ctx context.Context, within time.Duration) ([]*Product, error) {
	cutoff := time.Now().Add(within)
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE expiry_date IS NOT NULL AND expiry_date <= $1 ORDER BY expiry_date`, cutoff)
}

func (r *postgresRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Product
	for rows.Next() {
		p := &Product{}
		if err := scanProductRow(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ── transaction-aware store functions ────────────────────────────────────────
// Checkout, cancellation, and manual adjustment call these through a unit of
// work; the FOR UPDATE read serializes racing stock mutations on one product.

// GetProductForUpdate re-reads the live product row with a row lock. Returns
// nil, nil when the product no longer exists.
func GetProductForUpdate(ctx context.Context, tx database.DBTX, id uuid.UUID) (*Product, error) {
	return scanProduct(tx.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1 FOR UPDATE`, id))
}

// SetProductStock persists a new stock level decided under the row lock.
func SetProductStock(ctx context.Context, tx database.DBTX, id uuid.UUID, stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock for product %s would go negative", id)
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE products SET current_stock=$1, updated_at=$2 WHERE id=$3`,
		stock, time.Now(), id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row *sql.Row) (*Product, error) {
	p := &Product{}
	err := scanProductRow(row, p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProductRow(row rowScanner, p *Product) error {
	var expiry sql.NullTime
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.CurrentStock, &p.MinStock,
		&p.Unit, &p.Barcode, &p.ImageURL, &p.IsActive, &expiry, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if expiry.Valid {
		t := expiry.Time
		p.ExpiryDate = &t
	}
	return nil
}
