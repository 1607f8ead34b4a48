package load

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundryTrack/domain"
	"laundryTrack/pkg/logger"
)

// LoadRepository contract interface
type LoadRepository interface {
	Create(ctx context.Context, load *domain.Load) error
	Replace(ctx context.Context, load *domain.Load) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, userID, id uint) (domain.Load, error)
	FindAll(ctx context.Context, userID uint) ([]domain.Load, error)
	FindRecentItems(ctx context.Context, userID uint) ([]domain.LoadItem, error)
	SetDelivered(ctx context.Context, id uint, delivered bool, deliveredAt *time.Time) error
}

// ShopRepository contract interface
type ShopRepository interface {
	FindByID(ctx context.Context, userID, id uint) (domain.Shop, error)
}

var (
	ErrLoadNotFound = errors.New("load not found")
	ErrShopNotFound = errors.New("shop not found")
)

// ItemInput is one line of a submitted load.
type ItemInput struct {
	ClothType string
	Rate      float64
	Count     int
}

// Input carries everything needed to create or replace a load.
type Input struct {
	ShopID     uint
	LoadType   string
	PickupDate time.Time
	Items      []ItemInput
}

var validLoadTypes = map[string]bool{
	domain.LoadTypeIron:     true,
	domain.LoadTypeWash:     true,
	domain.LoadTypeDryClean: true,
}

type loadService struct {
	loadRepo LoadRepository
	shopRepo ShopRepository
}

func NewLoadService(loadRepo LoadRepository, shopRepo ShopRepository) *loadService {
	return &loadService{
		loadRepo: loadRepo,
		shopRepo: shopRepo,
	}
}

func validateInput(input Input) error {
	if !validLoadTypes[input.LoadType] {
		return errors.New("invalid load type")
	}

	if input.PickupDate.IsZero() {
		return errors.New("pickup date is required")
	}

	if len(input.Items) == 0 {
		return errors.New("at least one item is required")
	}

	for _, item := range input.Items {
		if item.ClothType == "" {
			return errors.New("item cloth type is required")
		}
		if item.Rate <= 0 {
			return errors.New("item rate must be positive")
		}
		if item.Count <= 0 {
			return errors.New("item count must be positive")
		}
	}

	return nil
}

func buildItems(items []ItemInput) []domain.LoadItem {
	out := make([]domain.LoadItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.LoadItem{
			ClothType: item.ClothType,
			Rate:      item.Rate,
			Count:     item.Count,
		})
	}
	return out
}

func (s *loadService) Create(ctx context.Context, userID uint, input Input) (domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return domain.Load{}, fmt.Errorf("context error: %w", err)
	}

	if err := validateInput(input); err != nil {
		logger.Error("Invalid load data", err)
		return domain.Load{}, err
	}

	if _, err := s.shopRepo.FindByID(ctx, userID, input.ShopID); err != nil {
		logger.Error("Shop not found for load create", err)
		return domain.Load{}, ErrShopNotFound
	}

	load := domain.Load{
		UserID:     userID,
		ShopID:     input.ShopID,
		LoadType:   input.LoadType,
		PickupDate: input.PickupDate,
		Items:      buildItems(input.Items),
	}

	if err := s.loadRepo.Create(ctx, &load); err != nil {
		logger.Error("Failed to create load", err)
		return domain.Load{}, err
	}

	return load, nil
}

// Update replaces the whole load: row fields plus the full item collection.
func (s *loadService) Update(ctx context.Context, userID, id uint, input Input) error {
	if err := validateInput(input); err != nil {
		logger.Error("Invalid load data", err)
		return err
	}

	if _, err := s.loadRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Load not found for update", err)
		return ErrLoadNotFound
	}

	if _, err := s.shopRepo.FindByID(ctx, userID, input.ShopID); err != nil {
		logger.Error("Shop not found for load update", err)
		return ErrShopNotFound
	}

	load := domain.Load{
		ID:         id,
		UserID:     userID,
		ShopID:     input.ShopID,
		LoadType:   input.LoadType,
		PickupDate: input.PickupDate,
		Items:      buildItems(input.Items),
	}

	if err := s.loadRepo.Replace(ctx, &load); err != nil {
		logger.Error("Failed to replace load", err)
		return err
	}

	return nil
}

func (s *loadService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.loadRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Load not found for delete", err)
		return ErrLoadNotFound
	}

	if err := s.loadRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete load", err)
		return err
	}

	return nil
}

func (s *loadService) MarkDelivered(ctx context.Context, userID, id uint) error {
	if _, err := s.loadRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Load not found for mark delivered", err)
		return ErrLoadNotFound
	}

	now := time.Now()
	if err := s.loadRepo.SetDelivered(ctx, id, true, &now); err != nil {
		logger.Error("Failed to mark load delivered", err)
		return err
	}

	return nil
}

func (s *loadService) UnmarkDelivered(ctx context.Context, userID, id uint) error {
	if _, err := s.loadRepo.FindByID(ctx, userID, id); err != nil {
		logger.Error("Load not found for unmark delivered", err)
		return ErrLoadNotFound
	}

	if err := s.loadRepo.SetDelivered(ctx, id, false, nil); err != nil {
		logger.Error("Failed to unmark load delivered", err)
		return err
	}

	return nil
}

func (s *loadService) GetByID(ctx context.Context, userID, id uint) (domain.Load, error) {
	load, err := s.loadRepo.FindByID(ctx, userID, id)
	if err != nil {
		logger.Error("Load not found", err)
		return domain.Load{}, ErrLoadNotFound
	}

	return load, nil
}

func (s *loadService) List(ctx context.Context, userID uint) ([]domain.Load, error) {
	loads, err := s.loadRepo.FindAll(ctx, userID)
	if err != nil {
		logger.Error("Failed to list loads", err)
		return nil, err
	}

	return loads, nil
}

// GetLastRates returns the most recently used rate per cloth-type label,
// label matching case-insensitive, newest load first.
func (s *loadService) GetLastRates(ctx context.Context, userID uint) (map[string]float64, error) {
	items, err := s.loadRepo.FindRecentItems(ctx, userID)
	if err != nil {
		logger.Error("Failed to get recent load items", err)
		return nil, err
	}

	rateMap := make(map[string]float64)
	for _, item := range items {
		key := strings.ToLower(item.ClothType)
		if _, ok := rateMap[key]; !ok {
			rateMap[key] = item.Rate
		}
	}

	return rateMap, nil
}
