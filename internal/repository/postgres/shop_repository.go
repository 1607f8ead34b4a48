package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundryTrack/domain"

	"gorm.io/gorm"
)

type ShopRepository struct {
	DB *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{
		DB: db,
	}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(shop).Error; err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	return nil
}

// FindByID scopes the lookup to the owning user, so a foreign shop behaves
// exactly like a missing one.
func (r *ShopRepository) FindByID(ctx context.Context, userID, id uint) (domain.Shop, error) {
	var shop domain.Shop

	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Shop{}, errors.New("shop not found")
		}
		return domain.Shop{}, fmt.Errorf("failed to find shop: %w", err)
	}

	return shop, nil
}

func (r *ShopRepository) FindAll(ctx context.Context, userID uint, activeOnly bool) ([]domain.Shop, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var shops []domain.Shop
	if err := query.Order("is_default DESC, name ASC").Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to find shops: %w", err)
	}

	return shops, nil
}

func (r *ShopRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	err := r.DB.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count shops: %w", err)
	}

	return count, nil
}

func (r *ShopRepository) UpdateName(ctx context.Context, id uint, name string) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update shop: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("shop not found")
	}

	return nil
}

func (r *ShopRepository) SetActive(ctx context.Context, id uint, isActive bool) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.Shop{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": isActive, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update shop: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("shop not found")
	}

	return nil
}

// SetDefault unsets every other default and marks the target inside one
// transaction, so the one-default invariant survives a failure in between.
func (r *ShopRepository) SetDefault(ctx context.Context, userID, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Shop{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("failed to clear default shops: %w", err)
		}

		result := tx.Model(&domain.Shop{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{"is_default": true, "updated_at": time.Now()})
		if result.Error != nil {
			return fmt.Errorf("failed to set default shop: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return errors.New("shop not found")
		}

		return nil
	})
}
