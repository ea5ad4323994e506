package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Name         string    `gorm:"not null"                 json:"name"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	PostalCode   *string   `json:"postal_code"`
	Country      *string   `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (Account) TableName() string {
	return "accounts"
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"               json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null"     json:"jti"`
	Token     string    `gorm:"unique;not null"          json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt int64     `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"default:false"            json:"revoked"`
}

type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"  json:"id"`
	Name         string           `gorm:"not null"              json:"name"`
	Description  string           `gorm:"not null"              json:"description"`
	Price        decimal.Decimal  `gorm:"type:numeric;not null" json:"price"`
	DeliveryDate string           `gorm:"not null"              json:"delivery_date"`
	Variants     []ProductVariant `gorm:"foreignKey:ProductID"  json:"variants,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// ProductVariant is one purchasable option of a product (a color). Read-only
// from the cart's perspective; stock is exposed for UI clamping only.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Color     string    `gorm:"not null"                 json:"color"`
	ImageURL  string    `json:"image_url"`
	Stock     uint      `json:"stock"`
	Product   *Product  `gorm:"foreignKey:ProductID"     json:"product,omitempty"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// CartItem holds one variant's quantity in one user's cart. At most one row
// per (user, variant) pair.
type CartItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"                            json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_user_variant;not null" json:"user_id"`
	VariantID uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_user_variant;not null" json:"variant_id"`
	Quantity  uint           `gorm:"default:1;check:quantity>0"                      json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	Variant   ProductVariant `gorm:"foreignKey:VariantID"                            json:"variant,omitempty"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
