package inventory

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/database"
	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
)

// Service defines stock-ledger business logic.
type Service interface {
	// AdjustStock applies a manual stock mutation and records the audit row,
	// atomically.
	AdjustStock(ctx context.Context, productID string, req AdjustStockRequest, performedBy string) (*StockChange, error)

	ProductHistory(ctx context.Context, productID string) ([]*StockEntry, error)
	History(ctx context.Context, limit int) ([]*StockEntry, error)
}

// ProductCache drops cached product reads after a committed stock write.
// catalog.Service satisfies it; nil disables invalidation.
type ProductCache interface {
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

type service struct {
	db    *sql.DB
	repo  Repository
	cache ProductCache
}

// NewService creates a new inventory service.
func NewService(db *sql.DB, repo Repository, cache ProductCache) Service {
	return &service{db: db, repo: repo, cache: cache}
}

func (s *service) AdjustStock(ctx context.Context, productID string, req AdjustStockRequest, performedBy string) (*StockChange, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperrors.Invalid("invalid product id")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.Invalid("quantity must be > 0")
	}
	changeType := ChangeType(req.ChangeType)
	switch changeType {
	case ChangeAdd, ChangeRemove, ChangeAdjust:
	default:
		return nil, apperrors.Invalid("invalid change type: %s", req.ChangeType)
	}

	var change *StockChange
	err = database.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := catalog.GetProductForUpdate(ctx, tx, pid)
		if err != nil {
			return err
		}
		if p == nil {
			return apperrors.NotFound("product not found")
		}

		prev := p.CurrentStock
		next, magnitude := applyChange(changeType, prev, req.Quantity)

		if err := catalog.SetProductStock(ctx, tx, pid, next); err != nil {
			return err
		}
		if err := AppendEntry(ctx, tx, &StockEntry{
			ID:            uuid.New(),
			ProductID:     pid,
			ChangeType:    changeType,
			Quantity:      magnitude,
			PreviousStock: prev,
			NewStock:      next,
			Notes:         req.Notes,
			PerformedBy:   performedBy,
		}); err != nil {
			return err
		}

		change = &StockChange{
			ProductID:     pid,
			PreviousStock: prev,
			NewStock:      next,
			Difference:    next - prev,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, pid)
	}
	return change, nil
}

// applyChange computes the post-mutation stock level and the audit magnitude.
// Removals floor at zero; adjust sets an absolute level.
func applyChange(changeType ChangeType, prev, quantity int) (next, magnitude int) {
	switch changeType {
	case ChangeAdd:
		next = prev + quantity
	case ChangeRemove:
		next = prev - quantity
		if next < 0 {
			next = 0
		}
	case ChangeAdjust, ChangeExpire:
		next = quantity
	}
	// The recorded magnitude is the stock actually moved, which differs from
	// the requested quantity when a removal floors at zero.
	magnitude = next - prev
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return next, magnitude
}

func (s *service) ProductHistory(ctx context.Context, productID string) ([]*StockEntry, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperrors.Invalid("invalid product id")
	}
	return s.repo.ListByProduct(ctx, pid)
}

func (s *service) History(ctx context.Context, limit int) ([]*StockEntry, error) {
	return s.repo.ListAll(ctx, limit)
}
