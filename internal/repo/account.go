package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/pkg/hash"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
)

func (r *GormRepo) VerifyCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

func (r *GormRepo) CreateAccountIfNotExists(ctx context.Context, a *models.Account) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", a.Email).FirstOrCreate(a)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAccountExists
	}
	return nil
}

func (r *GormRepo) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateProfile writes exactly the profile columns, scoped to the owning
// account. Role, email and password are never touched here.
func (r *GormRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
