package supplier

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL supplier repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

var _ Repository = (*postgresRepository)(nil)

const supplierColumns = `id, supplier_id, name, phone, email, product_name,
       cost_price, selling_price, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers
		  (id, supplier_id, name, phone, email, product_name, cost_price, selling_price)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.SupplierID, s.Name, s.Phone, s.Email, s.ProductName, s.CostPrice, s.SellingPrice)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return scanSupplier(r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, id))
}

func (r *postgresRepository) GetByProductName(ctx context.Context, productName string) (*Supplier, error) {
	return scanSupplier(r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE lower(product_name)=lower($1)`, productName))
}

func (r *postgresRepository) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		s := &Supplier{}
		if err := scanSupplierRow(rows, s); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE suppliers
		SET supplier_id=$1, name=$2, phone=$3, email=$4, product_name=$5,
		    cost_price=$6, selling_price=$7, updated_at=$8
		WHERE id=$9`,
		s.SupplierID, s.Name, s.Phone, s.Email, s.ProductName,
		s.CostPrice, s.SellingPrice, time.Now(), s.ID)
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	return err
}

func (r *postgresRepository) CreatePurchaseOrder(ctx context.Context, po *PurchaseOrder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchase_orders (id, po_number, supplier_id, product_id, product_name, quantity)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		po.ID, po.PONumber, po.SupplierID, po.ProductID, po.ProductName, po.Quantity)
	return err
}

func (r *postgresRepository) ListPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, po_number, supplier_id, product_id, product_name, quantity, created_at
		FROM purchase_orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pos []*PurchaseOrder
	for rows.Next() {
		po := &PurchaseOrder{}
		if err := rows.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.ProductID,
			&po.ProductName, &po.Quantity, &po.CreatedAt); err != nil {
			return nil, err
		}
		pos = append(pos, po)
	}
	return pos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSupplier(row *sql.Row) (*Supplier, error) {
	s := &Supplier{}
	err := scanSupplierRow(row, s)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanSupplierRow(row rowScanner, s *Supplier) error {
	return row.Scan(
		&s.ID, &s.SupplierID, &s.Name, &s.Phone, &s.Email, &s.ProductName,
		&s.CostPrice, &s.SellingPrice, &s.CreatedAt, &s.UpdatedAt)
}
