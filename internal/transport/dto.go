package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/letteringshop/storefront/internal/models"
)

type AddToCartRequest struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  uint      `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccessExp    int64  `json:"access_exp"`
	RefreshExp   int64  `json:"refresh_exp"`
	IsAdmin      bool   `json:"is_admin"`
}

type CreateProductRequest struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Price        decimal.Decimal        `json:"price"`
	DeliveryDate string                 `json:"delivery_date"`
	Variants     []CreateVariantRequest `json:"variants"`
}

type CreateVariantRequest struct {
	Color    string `json:"color"`
	ImageURL string `json:"image_url"`
	Stock    uint   `json:"stock"`
}

type PatchProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	DeliveryDate *string          `json:"delivery_date"`
}

type ProductListResponse struct {
	Total int64            `json:"total"`
	Items []models.Product `json:"items"`
}

type UpdateProfileRequest struct {
	Name       string  `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}
