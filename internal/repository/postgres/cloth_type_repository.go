package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundryTrack/domain"

	"gorm.io/gorm"
)

type ClothTypeRepository struct {
	DB *gorm.DB
}

func NewClothTypeRepository(db *gorm.DB) *ClothTypeRepository {
	return &ClothTypeRepository{
		DB: db,
	}
}

func (r *ClothTypeRepository) Create(ctx context.Context, clothType *domain.ClothType) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(clothType).Error; err != nil {
		return fmt.Errorf("failed to create cloth type: %w", err)
	}

	return nil
}

func (r *ClothTypeRepository) FindByID(ctx context.Context, userID, id uint) (domain.ClothType, error) {
	var clothType domain.ClothType

	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&clothType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClothType{}, errors.New("cloth type not found")
		}
		return domain.ClothType{}, fmt.Errorf("failed to find cloth type: %w", err)
	}

	return clothType, nil
}

func (r *ClothTypeRepository) FindAll(ctx context.Context, userID uint, activeOnly bool) ([]domain.ClothType, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var clothTypes []domain.ClothType
	if err := query.Order("name ASC").Find(&clothTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to find cloth types: %w", err)
	}

	return clothTypes, nil
}

func (r *ClothTypeRepository) Update(ctx context.Context, clothType *domain.ClothType) error {
	updateData := map[string]interface{}{
		"name":           clothType.Name,
		"iron_rate":      clothType.IronRate,
		"wash_rate":      clothType.WashRate,
		"dry_clean_rate": clothType.DryCleanRate,
		"updated_at":     time.Now(),
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.ClothType{}).
		Where("id = ?", clothType.ID).
		Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update cloth type: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("cloth type not found")
	}

	return nil
}

func (r *ClothTypeRepository) SetActive(ctx context.Context, id uint, isActive bool) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.ClothType{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": isActive, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update cloth type: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("cloth type not found")
	}

	return nil
}
