package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundryTrack/domain"

	"gorm.io/gorm"
)

type LoadRepository struct {
	DB *gorm.DB
}

func NewLoadRepository(db *gorm.DB) *LoadRepository {
	return &LoadRepository{
		DB: db,
	}
}

// Create inserts the load together with its items.
func (r *LoadRepository) Create(ctx context.Context, load *domain.Load) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("Shop").Create(load).Error; err != nil {
		return fmt.Errorf("failed to create load: %w", err)
	}

	return nil
}

// Replace rewrites the load row and swaps the full item collection in a
// single transaction, so a failure cannot leave a load with zero items.
func (r *LoadRepository) Replace(ctx context.Context, load *domain.Load) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("load_id = ?", load.ID).Delete(&domain.LoadItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete load items: %w", err)
		}

		updateData := map[string]interface{}{
			"shop_id":     load.ShopID,
			"load_type":   load.LoadType,
			"pickup_date": load.PickupDate,
			"updated_at":  time.Now(),
		}

		result := tx.Model(&domain.Load{}).Where("id = ?", load.ID).Updates(updateData)
		if result.Error != nil {
			return fmt.Errorf("failed to update load: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("load not found")
		}

		for i := range load.Items {
			load.Items[i].ID = 0
			load.Items[i].LoadID = load.ID
		}

		if err := tx.Create(&load.Items).Error; err != nil {
			return fmt.Errorf("failed to create load items: %w", err)
		}

		return nil
	})
}

func (r *LoadRepository) Delete(ctx context.Context, id uint) error {
	// items go with it via ON DELETE CASCADE
	result := r.DB.WithContext(ctx).Delete(&domain.Load{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete load: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("load not found")
	}

	return nil
}

func (r *LoadRepository) FindByID(ctx context.Context, userID, id uint) (domain.Load, error) {
	var load domain.Load

	err := r.DB.WithContext(ctx).
		Preload("Shop").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("load_items.id ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&load).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Load{}, errors.New("load not found")
		}
		return domain.Load{}, fmt.Errorf("failed to find load: %w", err)
	}

	return load, nil
}

func (r *LoadRepository) FindAll(ctx context.Context, userID uint) ([]domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var loads []domain.Load
	err := r.DB.WithContext(ctx).
		Preload("Shop").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("load_items.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&loads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find loads: %w", err)
	}

	return loads, nil
}

// FindSince fetches the loads with a pickup date at or after the cutoff,
// items included. Used by the expenditure aggregation.
func (r *LoadRepository) FindSince(ctx context.Context, userID uint, since time.Time) ([]domain.Load, error) {
	var loads []domain.Load

	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND pickup_date >= ?", userID, since).
		Find(&loads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find loads: %w", err)
	}

	return loads, nil
}

// FindRecentItems returns every item of the user's loads, newest load first.
func (r *LoadRepository) FindRecentItems(ctx context.Context, userID uint) ([]domain.LoadItem, error) {
	var items []domain.LoadItem

	err := r.DB.WithContext(ctx).
		Model(&domain.LoadItem{}).
		Joins("JOIN loads ON loads.id = load_items.load_id").
		Where("loads.user_id = ?", userID).
		Order("loads.created_at DESC, load_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find load items: %w", err)
	}

	return items, nil
}

func (r *LoadRepository) SetDelivered(ctx context.Context, id uint, delivered bool, deliveredAt *time.Time) error {
	updateData := map[string]interface{}{
		"is_delivered": delivered,
		"delivered_at": deliveredAt,
		"updated_at":   time.Now(),
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Load{}).
		Where("id = ?", id).
		Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update load: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.New("load not found")
	}

	return nil
}
