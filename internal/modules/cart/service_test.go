package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *mockRepository) UpsertItem(ctx context.Context, item *CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return m.Called(ctx, cartID, productID).Error(0)
}

func (m *mockRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

type mockProductGetter struct {
	mock.Mock
}

func (m *mockProductGetter) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func oliveOil(stock int) *catalog.Product {
	return &catalog.Product{
		ID:           uuid.New(),
		Name:         "Olive Oil",
		Price:        10,
		CurrentStock: stock,
	}
}

func TestAddItem(t *testing.T) {
	t.Run("snapshots the current price", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		p := oliveOil(5)
		c := &Cart{ID: uuid.New(), UserID: "user-1"}

		products.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)
		repo.On("GetOrCreate", mock.Anything, "user-1").Return(c, nil)
		repo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(it *CartItem) bool {
			return it.ProductID == p.ID && it.Quantity == 2 && it.PriceAtAdd == 10
		})).Return(nil)

		_, err := svc.AddItem(context.Background(), "user-1", p.ID.String(), 2)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("merges quantities for an existing line", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		p := oliveOil(5)
		c := &Cart{ID: uuid.New(), UserID: "user-1", Items: []*CartItem{
			{ID: uuid.New(), ProductID: p.ID, Quantity: 2, PriceAtAdd: 8},
		}}

		products.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)
		repo.On("GetOrCreate", mock.Anything, "user-1").Return(c, nil)
		repo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(it *CartItem) bool {
			return it.Quantity == 5
		})).Return(nil)

		_, err := svc.AddItem(context.Background(), "user-1", p.ID.String(), 3)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("advisory stock check rejects oversized lines", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		p := oliveOil(3)
		c := &Cart{ID: uuid.New(), UserID: "user-1", Items: []*CartItem{
			{ID: uuid.New(), ProductID: p.ID, Quantity: 2},
		}}

		products.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)
		repo.On("GetOrCreate", mock.Anything, "user-1").Return(c, nil)

		_, err := svc.AddItem(context.Background(), "user-1", p.ID.String(), 2)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		assert.Contains(t, err.Error(), "Olive Oil")
		repo.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := NewService(new(mockRepository), new(mockProductGetter))

		_, err := svc.AddItem(context.Background(), "user-1", uuid.NewString(), 0)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
	})

	t.Run("product deleted since browsing", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		id := uuid.NewString()
		products.On("GetByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.AddItem(context.Background(), "user-1", id, 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		repo.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("zero quantity removes the line", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		p := oliveOil(5)
		c := &Cart{ID: uuid.New(), UserID: "user-1", Items: []*CartItem{
			{ID: uuid.New(), ProductID: p.ID, Quantity: 2},
		}}

		products.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)
		repo.On("GetOrCreate", mock.Anything, "user-1").Return(c, nil)
		repo.On("RemoveItem", mock.Anything, c.ID, p.ID).Return(nil)

		_, err := svc.UpdateItem(context.Background(), "user-1", p.ID.String(), 0)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown line", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		p := oliveOil(5)
		products.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)
		repo.On("GetOrCreate", mock.Anything, "user-1").
			Return(&Cart{ID: uuid.New(), UserID: "user-1"}, nil)

		_, err := svc.UpdateItem(context.Background(), "user-1", p.ID.String(), 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("product deleted since browsing", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		id := uuid.NewString()
		products.On("GetByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.UpdateItem(context.Background(), "user-1", id, 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("refreshes the price snapshot", func(t *testing.T) {
		repo := new(mockRepository)
		products := new(mockProductGetter)
		svc := NewService(repo, products)

		p := oliveOil(5)
		c := &Cart{ID: uuid.New(), UserID: "user-1", Items: []*CartItem{
			{ID: uuid.New(), ProductID: p.ID, Quantity: 2, PriceAtAdd: 8},
		}}

		products.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)
		repo.On("GetOrCreate", mock.Anything, "user-1").Return(c, nil)
		repo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(it *CartItem) bool {
			return it.Quantity == 4 && it.PriceAtAdd == 10
		})).Return(nil)

		_, err := svc.UpdateItem(context.Background(), "user-1", p.ID.String(), 4)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestClearCart(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, new(mockProductGetter))

	c := &Cart{ID: uuid.New(), UserID: "user-1"}
	repo.On("GetOrCreate", mock.Anything, "user-1").Return(c, nil)
	repo.On("Clear", mock.Anything, c.ID).Return(nil)

	_, err := svc.ClearCart(context.Background(), "user-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
