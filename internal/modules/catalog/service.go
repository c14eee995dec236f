package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListLowStock(ctx context.Context) ([]*Product, error)
	ListExpiring(ctx context.Context, withinDays int) ([]*Product, error)

	// Invalidate drops the cached reads for the given products. Stock-writing
	// services call it after their transaction commits so the cache never
	// outlives a stock change.
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

const (
	productCacheTTL = time.Minute
	listCacheKey    = "products:all"
)

// service serves storefront reads through an optional redis cache. The cache
// is never consulted for stock decisions: checkout re-reads products inside
// its transaction.
type service struct {
	repo Repository
	rdb  *redis.Client
}

// NewService creates a new catalog service. rdb may be nil to disable
// caching.
func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" || req.Category == "" {
		return nil, apperrors.Invalid("name and category are required")
	}
	if req.Price < 0 {
		return nil, apperrors.Invalid("price must be >= 0")
	}
	if req.CurrentStock < 0 {
		return nil, apperrors.Invalid("current_stock must be >= 0")
	}

	unit := req.Unit
	if unit == "" {
		unit = "item"
	}
	minStock := req.MinStock
	if minStock == 0 {
		minStock = 5
	}

	p := &Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CurrentStock: req.CurrentStock,
		MinStock:     minStock,
		Unit:         unit,
		Barcode:      req.Barcode,
		ImageURL:     req.ImageURL,
		IsActive:     true,
		ExpiryDate:   req.ExpiryDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, productCacheKey(id)).Result()
		if err == nil {
			p := &Product{}
			if err := json.Unmarshal([]byte(cached), p); err == nil {
				return p, nil
			}
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found")
	}

	if s.rdb != nil {
		if data, err := json.Marshal(p); err == nil {
			s.rdb.Set(ctx, productCacheKey(id), data, productCacheTTL)
		}
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	// Only the unfiltered storefront listing is cached; filtered queries go
	// straight to the store.
	cacheable := category == "" && activeOnly
	if cacheable && s.rdb != nil {
		cached, err := s.rdb.Get(ctx, listCacheKey).Result()
		if err == nil {
			var out []*Product
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := s.repo.List(ctx, category, activeOnly)
	if err != nil {
		return nil, err
	}

	if cacheable && s.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			s.rdb.Set(ctx, listCacheKey, data, productCacheTTL)
		}
	}
	return out, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found")
	}
	if req.Price < 0 {
		return nil, apperrors.Invalid("price must be >= 0")
	}

	p.Name = req.Name
	p.Category = req.Category
	p.Description = req.Description
	p.Price = req.Price
	p.MinStock = req.MinStock
	p.Unit = req.Unit
	p.Barcode = req.Barcode
	p.ImageURL = req.ImageURL
	p.ExpiryDate = req.ExpiryDate

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperrors.NotFound("product not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return nil
}

func (s *service) ListLowStock(ctx context.Context) ([]*Product, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) ListExpiring(ctx context.Context, withinDays int) ([]*Product, error) {
	if withinDays <= 0 {
		withinDays = 7
	}
	return s.repo.ListExpiring(ctx, time.Duration(withinDays)*24*time.Hour)
}

func (s *service) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	for _, id := range ids {
		s.invalidate(ctx, id)
	}
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, productCacheKey(id.String()), listCacheKey)
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
