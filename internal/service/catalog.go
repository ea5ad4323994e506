package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/repo"
	"github.com/letteringshop/storefront/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	_, err := s.Repo.CreateProduct(ctx, product)
	return err
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	if req.Price != nil && req.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product not found: %w", ErrNotFound)
	}
	return err
}
