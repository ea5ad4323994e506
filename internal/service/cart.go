package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/repo"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.Repo.GetCartItems(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, item *models.CartItem) error {
	if item.VariantID == uuid.Nil {
		return fmt.Errorf("variant id must not be nil: %w", ErrValidation)
	}
	if item.Quantity == 0 {
		return fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	return s.Repo.AddToCart(ctx, item)
}

// UpdateCartItem sets the line's quantity. A non-positive quantity delegates
// to removal; the returned bool reports whether the line was removed.
func (s *CartService) UpdateCartItem(ctx context.Context, lineID, userID uuid.UUID, quantity int) (*models.CartItem, bool, error) {
	if lineID == uuid.Nil {
		return nil, false, fmt.Errorf("line id must not be nil: %w", ErrValidation)
	}

	if quantity <= 0 {
		if err := s.RemoveFromCart(ctx, lineID, userID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	item, err := s.Repo.UpdateCartItem(ctx, lineID, userID, uint(quantity))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	return item, false, err
}

func (s *CartService) RemoveFromCart(ctx context.Context, lineID, userID uuid.UUID) error {
	if lineID == uuid.Nil {
		return fmt.Errorf("line id must not be nil: %w", ErrValidation)
	}

	err := s.Repo.RemoveFromCart(ctx, lineID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	return err
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, userID)
}
