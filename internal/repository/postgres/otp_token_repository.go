package postgres

import (
	"context"
	"time"

	"laundryTrack/domain"

	"gorm.io/gorm"
)

type OtpTokenRepository struct {
	DB *gorm.DB
}

func NewOtpTokenRepository(db *gorm.DB) *OtpTokenRepository {
	return &OtpTokenRepository{
		DB: db,
	}
}

func (r *OtpTokenRepository) Create(ctx context.Context, token *domain.OtpToken) error {
	if err := r.DB.WithContext(ctx).Create(token).Error; err != nil {
		return err
	}

	return nil
}

// FindValidByEmail returns the unexpired tokens for an email, newest first.
// Delete-before-insert keeps this at most one row in practice.
func (r *OtpTokenRepository) FindValidByEmail(ctx context.Context, email string) ([]domain.OtpToken, error) {
	var tokens []domain.OtpToken

	err := r.DB.WithContext(ctx).
		Where("email = ? AND expires_at > ?", email, time.Now()).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

func (r *OtpTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	result := r.DB.WithContext(ctx).Where("email = ?", email).Delete(&domain.OtpToken{})
	if result.Error != nil {
		return result.Error
	}

	return nil
}
