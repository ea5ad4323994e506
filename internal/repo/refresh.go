package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/pkg/jwtutil"
)

var ErrRefreshExpiredOrRevoked = errors.New("token expired or revoked")

func (r *GormRepo) StoreRefreshToken(ctx context.Context, jti, token string, userID uuid.UUID, expiresAt time.Time) error {
	refreshModel := models.RefreshToken{
		JTI:       jti,
		Token:     jwtutil.Sha256Hex(token),
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&refreshModel).Error
}

func (r *GormRepo) FindRefreshByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", jwtutil.Sha256Hex(token)).
		Update("revoked", true).Error
}

func refreshExpiredOrRevoked(db *gorm.DB, jti string) (bool, error) {
	var refresh models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&refresh).Error; err != nil {
		return false, err
	}
	if refresh.ExpiresAt < time.Now().Unix() || refresh.Revoked {
		return true, nil
	}
	return false, nil
}

// RotateRefreshToken revokes the old JTI and stores the replacement in one
// transaction, so a stolen old token cannot race a legitimate refresh.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI string, newToken models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired, err := refreshExpiredOrRevoked(tx, oldJTI)
		if err != nil {
			return err
		}
		if expired {
			return ErrRefreshExpiredOrRevoked
		}

		if err := tx.Model(&models.RefreshToken{}).
			Where("jti = ?", oldJTI).
			Update("revoked", true).Error; err != nil {
			return err
		}

		return tx.Create(&newToken).Error
	})
}
