package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
)

func TestApplyChange(t *testing.T) {
	tests := []struct {
		name          string
		changeType    ChangeType
		prev, qty     int
		wantNext      int
		wantMagnitude int
	}{
		{name: "add", changeType: ChangeAdd, prev: 5, qty: 3, wantNext: 8, wantMagnitude: 3},
		{name: "remove", changeType: ChangeRemove, prev: 5, qty: 3, wantNext: 2, wantMagnitude: 3},
		{name: "remove floors at zero", changeType: ChangeRemove, prev: 2, qty: 10, wantNext: 0, wantMagnitude: 2},
		{name: "adjust up", changeType: ChangeAdjust, prev: 5, qty: 12, wantNext: 12, wantMagnitude: 7},
		{name: "adjust down", changeType: ChangeAdjust, prev: 12, qty: 5, wantNext: 5, wantMagnitude: 7},
		{name: "adjust to same level", changeType: ChangeAdjust, prev: 5, qty: 5, wantNext: 5, wantMagnitude: 0},
		{name: "expire", changeType: ChangeExpire, prev: 9, qty: 0, wantNext: 0, wantMagnitude: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, magnitude := applyChange(tt.changeType, tt.prev, tt.qty)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantMagnitude, magnitude)

			// Whatever applyChange produces must survive the ledger check.
			e := &StockEntry{
				ChangeType:    tt.changeType,
				Quantity:      magnitude,
				PreviousStock: tt.prev,
				NewStock:      next,
			}
			assert.True(t, e.Consistent())
		})
	}
}

func TestStockEntryConsistent(t *testing.T) {
	tests := []struct {
		name  string
		entry StockEntry
		want  bool
	}{
		{
			name:  "balanced removal",
			entry: StockEntry{ChangeType: ChangeRemove, Quantity: 2, PreviousStock: 5, NewStock: 3},
			want:  true,
		},
		{
			name:  "balanced addition",
			entry: StockEntry{ChangeType: ChangeAdd, Quantity: 2, PreviousStock: 3, NewStock: 5},
			want:  true,
		},
		{
			name:  "removal that drops too far",
			entry: StockEntry{ChangeType: ChangeRemove, Quantity: 2, PreviousStock: 5, NewStock: 2},
			want:  false,
		},
		{
			name:  "addition recorded as removal",
			entry: StockEntry{ChangeType: ChangeRemove, Quantity: 2, PreviousStock: 3, NewStock: 5},
			want:  false,
		},
		{
			name:  "adjust magnitude mismatch",
			entry: StockEntry{ChangeType: ChangeAdjust, Quantity: 1, PreviousStock: 5, NewStock: 9},
			want:  false,
		},
		{
			name:  "unknown change type",
			entry: StockEntry{ChangeType: "transfer", Quantity: 1, PreviousStock: 5, NewStock: 4},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Consistent())
		})
	}
}

func TestAdjustStockValidation(t *testing.T) {
	svc := NewService(nil, nil, nil)

	_, err := svc.AdjustStock(context.Background(), "not-a-uuid",
		AdjustStockRequest{ChangeType: "add", Quantity: 1}, "staff-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))

	_, err = svc.AdjustStock(context.Background(), uuid.NewString(),
		AdjustStockRequest{ChangeType: "add", Quantity: 0}, "staff-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))

	_, err = svc.AdjustStock(context.Background(), uuid.NewString(),
		AdjustStockRequest{ChangeType: "teleport", Quantity: 1}, "staff-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
}
