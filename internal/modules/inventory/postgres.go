package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/database"
)

const entryColumns = `id, product_id, change_type, quantity, previous_stock, new_stock,
       notes, performed_by, created_at`

// AppendEntry writes one audit row. It refuses inconsistent entries so a bug
// in a caller cannot corrupt the ledger.
func AppendEntry(ctx context.Context, tx database.DBTX, e *StockEntry) error {
	if !e.Consistent() {
		return fmt.Errorf("inconsistent stock entry for product %s: %s %d (%d -> %d)",
			e.ProductID, e.ChangeType, e.Quantity, e.PreviousStock, e.NewStock)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO stock_history
		  (id, product_id, change_type, quantity, previous_stock, new_stock, notes, performed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.ProductID, e.ChangeType, e.Quantity, e.PreviousStock, e.NewStock, e.Notes, e.PerformedBy)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL stock-history repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*StockEntry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM stock_history WHERE product_id=$1 ORDER BY created_at DESC`,
		productID)
}

func (r *postgresRepository) ListAll(ctx context.Context, limit int) ([]*StockEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM stock_history ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *postgresRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*StockEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*StockEntry
	for rows.Next() {
		e := &StockEntry{}
		if err := rows.Scan(
			&e.ID, &e.ProductID, &e.ChangeType, &e.Quantity, &e.PreviousStock, &e.NewStock,
			&e.Notes, &e.PerformedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
