package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
)

func (r *GormRepo) GetCartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Variant").
		Preload("Variant.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments the quantity of an existing (user, variant) line or
// inserts a new one. The increment is a single conditional UPDATE, so two
// concurrent adds never lose a write.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND variant_id = ?", item.UserID, item.VariantID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND variant_id = ?", item.UserID, item.VariantID).First(item).Error
		}

		return tx.Create(item).Error
	})
}

func (r *GormRepo) UpdateCartItem(ctx context.Context, lineID, userID uuid.UUID, quantity uint) (*models.CartItem, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", lineID, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, lineID, userID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
