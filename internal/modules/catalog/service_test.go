package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	args := m.Called(ctx, category, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) ListLowStock(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *mockRepository) ListExpiring(ctx context.Context, within time.Duration) ([]*Product, error) {
	args := m.Called(ctx, within)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func TestCreateProduct(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo, nil)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Product) bool {
			return p.Unit == "item" && p.MinStock == 5 && p.IsActive
		})).Return(nil)

		p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
			Name:         "Olive Oil",
			Category:     "Pantry",
			Price:        10,
			CurrentStock: 20,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name string
			req  CreateProductRequest
		}{
			{name: "missing name", req: CreateProductRequest{Category: "Pantry"}},
			{name: "missing category", req: CreateProductRequest{Name: "Olive Oil"}},
			{name: "negative price", req: CreateProductRequest{Name: "Olive Oil", Category: "Pantry", Price: -1}},
			{name: "negative stock", req: CreateProductRequest{Name: "Olive Oil", Category: "Pantry", CurrentStock: -1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(mockRepository)
				svc := NewService(repo, nil)

				_, err := svc.CreateProduct(context.Background(), tt.req)
				require.Error(t, err)
				assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo, nil)

		id := uuid.NewString()
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.GetProduct(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("found", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo, nil)

		p := &Product{ID: uuid.New(), Name: "Olive Oil"}
		repo.On("GetByID", mock.Anything, p.ID.String()).Return(p, nil)

		got, err := svc.GetProduct(context.Background(), p.ID.String())
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})
}

func TestListExpiringDefaultsWindow(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	repo.On("ListExpiring", mock.Anything, 7*24*time.Hour).Return([]*Product{}, nil)

	_, err := svc.ListExpiring(context.Background(), 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestInvalidateWithoutRedis(t *testing.T) {
	svc := NewService(new(mockRepository), nil)
	assert.NotPanics(t, func() {
		svc.Invalidate(context.Background(), uuid.New())
	})
}

func TestLowStock(t *testing.T) {
	p := &Product{CurrentStock: 5, MinStock: 5}
	assert.True(t, p.LowStock())
	p.CurrentStock = 6
	assert.False(t, p.LowStock())
}
