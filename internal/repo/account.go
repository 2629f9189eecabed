package repo

import (
	"context"

	"github.com/Nevskiy911/contacts-api/internal/models"
)

func (r *GormRepo) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (r *GormRepo) CreateAccount(ctx context.Context, acc *models.Account) error {
	return r.DB.WithContext(ctx).Create(acc).Error
}

// UpdateRefreshToken replaces the single stored refresh token for the
// account. Passing nil clears it, which invalidates every outstanding
// refresh token.
func (r *GormRepo) UpdateRefreshToken(ctx context.Context, acc *models.Account, token *string) error {
	acc.RefreshToken = token
	return r.DB.WithContext(ctx).Model(acc).Update("refresh_token", token).Error
}

func (r *GormRepo) ConfirmEmail(ctx context.Context, email string) error {
	result := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("email = ?", email).
		Update("confirmed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
