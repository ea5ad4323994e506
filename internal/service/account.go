package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/repo"
	"github.com/letteringshop/storefront/internal/transport"
)

type AccountService struct {
	Repo *repo.GormRepo
}

func (s *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account, err := s.Repo.GetAccountByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("account not found: %w", ErrNotFound)
	}
	return account, err
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req transport.UpdateProfileRequest) error {
	if len(req.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters: %w", ErrValidation)
	}
	if len(req.Name) > 255 {
		return fmt.Errorf("name must be at most 255 characters: %w", ErrValidation)
	}

	updates := map[string]any{
		"name":        req.Name,
		"phone":       req.Phone,
		"address":     req.Address,
		"city":        req.City,
		"postal_code": req.PostalCode,
		"country":     req.Country,
	}

	err := s.Repo.UpdateProfile(ctx, userID, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("account not found: %w", ErrNotFound)
	}
	return err
}
