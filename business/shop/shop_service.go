package shop

import (
	"context"
	"errors"
	"fmt"

	"laundryTrack/domain"
	"laundryTrack/pkg/logger"
)

// ShopRepository contract interface
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	FindByID(ctx context.Context, userID, id uint) (domain.Shop, error)
	FindAll(ctx context.Context, userID uint, activeOnly bool) ([]domain.Shop, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	UpdateName(ctx context.Context, id uint, name string) error
	SetActive(ctx context.Context, id uint, isActive bool) error
	SetDefault(ctx context.Context, userID, id uint) error
}

var ErrShopNotFound = errors.New("shop not found")

type shopService struct {
	shopRepo ShopRepository
}

func NewShopService(shopRepo ShopRepository) *shopService {
	return &shopService{
		shopRepo: shopRepo,
	}
}

// Create adds a shop for the user. The user's very first shop becomes the
// default one automatically.
func (s *shopService) Create(ctx context.Context, userID uint, name string) (domain.Shop, error) {
	if err := ctx.Err(); err != nil {
		return domain.Shop{}, fmt.Errorf("context error: %w", err)
	}

	if name == "" {
		logger.Error("Invalid shop data: name is required")
		return domain.Shop{}, errors.New("shop name is required")
	}

	count, err := s.shopRepo.CountByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to count shops", err)
		return domain.Shop{}, err
	}

	shop := domain.Shop{
		UserID:    userID,
		Name:      name,
		IsDefault: count == 0,
		IsActive:  true,
	}

	if err := s.shopRepo.Create(ctx, &shop); err != nil {
		logger.Error("Failed to create shop", err)
		return domain.Shop{}, err
	}

	return shop, nil
}

func (s *shopService) Update(ctx context.Context, userID, id uint, name string) error {
	if name == "" {
		logger.Error("Invalid shop data: name is required")
		return errors.New("shop name is required")
	}

	if _, err := s.shopRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Shop not found for update", err)
		return ErrShopNotFound
	}

	if err := s.shopRepo.UpdateName(ctx, id, name); err != nil {
		logger.Error("Failed to update shop", err)
		return err
	}

	return nil
}

// ToggleActive flips the active flag. Inactive shops stay out of selection
// lists but keep their load history.
func (s *shopService) ToggleActive(ctx context.Context, userID, id uint) error {
	shop, err := s.shopRepo.FindByID(ctx, userID, id)
	if err != nil {
		logger.Error("Shop not found for toggle", err)
		return ErrShopNotFound
	}

	if err := s.shopRepo.SetActive(ctx, id, !shop.IsActive); err != nil {
		logger.Error("Failed to toggle shop", err)
		return err
	}

	return nil
}

func (s *shopService) SetDefault(ctx context.Context, userID, id uint) error {
	if _, err := s.shopRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Shop not found for set default", err)
		return ErrShopNotFound
	}

	if err := s.shopRepo.SetDefault(ctx, userID, id); err != nil {
		logger.Error("Failed to set default shop", err)
		return err
	}

	return nil
}

func (s *shopService) List(ctx context.Context, userID uint) ([]domain.Shop, error) {
	shops, err := s.shopRepo.FindAll(ctx, userID, false)
	if err != nil {
		logger.Error("Failed to list shops", err)
		return nil, err
	}

	return shops, nil
}

func (s *shopService) ListActive(ctx context.Context, userID uint) ([]domain.Shop, error) {
	shops, err := s.shopRepo.FindAll(ctx, userID, true)
	if err != nil {
		logger.Error("Failed to list active shops", err)
		return nil, err
	}

	return shops, nil
}
