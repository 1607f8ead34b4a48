package clothtype

import (
	"context"
	"errors"
	"fmt"

	"laundryTrack/domain"
	"laundryTrack/pkg/logger"
)

// ClothTypeRepository contract interface
type ClothTypeRepository interface {
	Create(ctx context.Context, clothType *domain.ClothType) error
	FindByID(ctx context.Context, userID, id uint) (domain.ClothType, error)
	FindAll(ctx context.Context, userID uint, activeOnly bool) ([]domain.ClothType, error)
	Update(ctx context.Context, clothType *domain.ClothType) error
	SetActive(ctx context.Context, id uint, isActive bool) error
}

var ErrClothTypeNotFound = errors.New("cloth type not found")

type clothTypeService struct {
	clothTypeRepo ClothTypeRepository
}

func NewClothTypeService(clothTypeRepo ClothTypeRepository) *clothTypeService {
	return &clothTypeService{
		clothTypeRepo: clothTypeRepo,
	}
}

func validateRates(ironRate, washRate, dryCleanRate float64) error {
	if ironRate < 0 || washRate < 0 || dryCleanRate < 0 {
		return errors.New("rates cannot be negative")
	}
	return nil
}

func (s *clothTypeService) Create(ctx context.Context, userID uint, name string, ironRate, washRate, dryCleanRate float64) (domain.ClothType, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClothType{}, fmt.Errorf("context error: %w", err)
	}

	if name == "" {
		logger.Error("Invalid cloth type data: name is required")
		return domain.ClothType{}, errors.New("cloth type name is required")
	}

	if err := validateRates(ironRate, washRate, dryCleanRate); err != nil {
		logger.Error("Invalid cloth type rates", err)
		return domain.ClothType{}, err
	}

	clothType := domain.ClothType{
		UserID:       userID,
		Name:         name,
		IronRate:     ironRate,
		WashRate:     washRate,
		DryCleanRate: dryCleanRate,
		IsActive:     true,
	}

	if err := s.clothTypeRepo.Create(ctx, &clothType); err != nil {
		logger.Error("Failed to create cloth type", err)
		return domain.ClothType{}, err
	}

	return clothType, nil
}

func (s *clothTypeService) Update(ctx context.Context, userID, id uint, name string, ironRate, washRate, dryCleanRate float64) error {
	if name == "" {
		logger.Error("Invalid cloth type data: name is required")
		return errors.New("cloth type name is required")
	}

	if err := validateRates(ironRate, washRate, dryCleanRate); err != nil {
		logger.Error("Invalid cloth type rates", err)
		return err
	}

	if _, err := s.clothTypeRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Cloth type not found for update", err)
		return ErrClothTypeNotFound
	}

	clothType := domain.ClothType{
		ID:           id,
		Name:         name,
		IronRate:     ironRate,
		WashRate:     washRate,
		DryCleanRate: dryCleanRate,
	}

	if err := s.clothTypeRepo.Update(ctx, &clothType); err != nil {
		logger.Error("Failed to update cloth type", err)
		return err
	}

	return nil
}

func (s *clothTypeService) ToggleActive(ctx context.Context, userID, id uint) error {
	clothType, err := s.clothTypeRepo.FindByID(ctx, userID, id)
	if err != nil {
		logger.Error("Cloth type not found for toggle", err)
		return ErrClothTypeNotFound
	}

	if err := s.clothTypeRepo.SetActive(ctx, id, !clothType.IsActive); err != nil {
		logger.Error("Failed to toggle cloth type", err)
		return err
	}

	return nil
}

func (s *clothTypeService) List(ctx context.Context, userID uint) ([]domain.ClothType, error) {
	clothTypes, err := s.clothTypeRepo.FindAll(ctx, userID, false)
	if err != nil {
		logger.Error("Failed to list cloth types", err)
		return nil, err
	}

	return clothTypes, nil
}

func (s *clothTypeService) ListActive(ctx context.Context, userID uint) ([]domain.ClothType, error) {
	clothTypes, err := s.clothTypeRepo.FindAll(ctx, userID, true)
	if err != nil {
		logger.Error("Failed to list active cloth types", err)
		return nil, err
	}

	return clothTypes, nil
}
