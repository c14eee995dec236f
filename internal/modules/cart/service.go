package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
)

// Service defines cart business logic.
type Service interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*Cart, error)
	ClearCart(ctx context.Context, userID string) (*Cart, error)
}

type service struct {
	repo     Repository
	products ProductGetter
}

// NewService creates a new cart service.
func NewService(repo Repository, products ProductGetter) Service {
	return &service{repo: repo, products: products}
}

func (s *service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.Invalid("quantity must be > 0")
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found")
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Merge with an existing line for the same product. The stock check is
	// advisory: the authoritative check happens inside the checkout
	// transaction.
	total := quantity
	for _, it := range c.Items {
		if it.ProductID == p.ID {
			total += it.Quantity
		}
	}
	if p.CurrentStock < total {
		return nil, apperrors.Conflict("insufficient stock for product: %s", p.Name)
	}

	item := &CartItem{
		ID:         uuid.New(),
		CartID:     c.ID,
		ProductID:  p.ID,
		Quantity:   total,
		PriceAtAdd: p.Price,
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product not found")
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var existing *CartItem
	for _, it := range c.Items {
		if it.ProductID == p.ID {
			existing = it
			break
		}
	}
	if existing == nil {
		return nil, apperrors.NotFound("item not found in cart")
	}

	if quantity <= 0 {
		if err := s.repo.RemoveItem(ctx, c.ID, p.ID); err != nil {
			return nil, err
		}
		return s.repo.GetOrCreate(ctx, userID)
	}

	if p.CurrentStock < quantity {
		return nil, apperrors.Conflict("insufficient stock for product: %s", p.Name)
	}

	existing.Quantity = quantity
	existing.PriceAtAdd = p.Price
	if err := s.repo.UpsertItem(ctx, existing); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperrors.Invalid("invalid product id")
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveItem(ctx, c.ID, pid); err != nil {
		return nil, apperrors.NotFound("item not found in cart")
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Clear(ctx, c.ID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}
