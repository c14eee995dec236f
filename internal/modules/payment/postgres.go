package payment

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/database"
	"github.com/supermartlabs/supermart-backend/internal/modules/order"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates the PostgreSQL payment repository; the
// returned value is also the TxRunner for RecordPayment.
func NewPostgresRepository(db *sql.DB) *postgresRepository { //nolint:revive
	return &postgresRepository{db: db}
}

var (
	_ Repository = (*postgresRepository)(nil)
	_ TxRunner   = (*postgresRepository)(nil)
)

// WithinTx runs fn against a unit of work backed by one database transaction.
func (r *postgresRepository) WithinTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return database.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&pgUnitOfWork{tx: tx})
	})
}

type pgUnitOfWork struct{ tx *sql.Tx }

func (u *pgUnitOfWork) OrderForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return order.GetOrderForUpdate(ctx, u.tx, id)
}

func (u *pgUnitOfWork) SetOrderStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	return order.SetOrderStatus(ctx, u.tx, id, status)
}

func (u *pgUnitOfWork) CreateTransaction(ctx context.Context, t *Transaction) error {
	_, err := u.tx.ExecContext(ctx, `
		INSERT INTO transactions (id, order_id, amount, status, card_last4)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.OrderID, t.Amount, t.Status, t.CardLast4)
	return err
}

func (r *postgresRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Transaction, error) {
	return r.query(ctx, `
		SELECT id, order_id, amount, status, card_last4, created_at
		FROM transactions WHERE order_id=$1 ORDER BY created_at DESC`, orderID)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*Transaction, error) {
	return r.query(ctx, `
		SELECT id, order_id, amount, status, card_last4, created_at
		FROM transactions ORDER BY created_at DESC`)
}

func (r *postgresRepository) query(ctx context.Context, q string, args ...interface{}) ([]*Transaction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(&t.ID, &t.OrderID, &t.Amount, &t.Status, &t.CardLast4, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
