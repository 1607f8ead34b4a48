package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"laundryTrack/app/echo-server/metrics"
	"laundryTrack/business/load"
	"laundryTrack/domain"
	"laundryTrack/internal/middleware"
	"laundryTrack/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type LoadService interface {
	Create(ctx context.Context, userID uint, input load.Input) (domain.Load, error)
	Update(ctx context.Context, userID, id uint, input load.Input) error
	Delete(ctx context.Context, userID, id uint) error
	MarkDelivered(ctx context.Context, userID, id uint) error
	UnmarkDelivered(ctx context.Context, userID, id uint) error
	GetByID(ctx context.Context, userID, id uint) (domain.Load, error)
	List(ctx context.Context, userID uint) ([]domain.Load, error)
	GetLastRates(ctx context.Context, userID uint) (map[string]float64, error)
}

type LoadHandler struct {
	loadService LoadService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewLoadHandler(loadService LoadService) *LoadHandler {
	return &LoadHandler{
		loadService: loadService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type LoadItemRequest struct {
	ClothType string  `json:"cloth_type" validate:"required,min=1"`
	Rate      float64 `json:"rate" validate:"required,gt=0"`
	Count     int     `json:"count" validate:"required,gt=0"`
}

type LoadRequest struct {
	ShopID     uint              `json:"shop_id" validate:"required"`
	LoadType   string            `json:"load_type" validate:"required,oneof=IRON WASH DRY_CLEAN"`
	PickupDate time.Time         `json:"pickup_date" validate:"required"`
	Items      []LoadItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r LoadRequest) toInput() load.Input {
	items := make([]load.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, load.ItemInput{
			ClothType: item.ClothType,
			Rate:      item.Rate,
			Count:     item.Count,
		})
	}

	return load.Input{
		ShopID:     r.ShopID,
		LoadType:   r.LoadType,
		PickupDate: r.PickupDate,
		Items:      items,
	}
}

func loadID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func loadStatusFromError(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(err.Error(), "required") ||
		strings.Contains(err.Error(), "must be positive") ||
		strings.Contains(err.Error(), "invalid load type") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *LoadHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req LoadRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate load request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.loadService.Create(ctx, userID, req.toInput())
	if err != nil {
		logger.Error("Failed to create load", err)
		return c.JSON(loadStatusFromError(err), ResponseError{Message: err.Error()})
	}

	metrics.LoadsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id": created.ID,
	})
}

func (h *LoadHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := loadID(c)
	if err != nil {
		logger.Error("Invalid load id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid load id"})
	}

	var req LoadRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate load request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.loadService.Update(ctx, userID, id, req.toInput()); err != nil {
		logger.Error("Failed to update load", err)
		return c.JSON(loadStatusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LoadHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := loadID(c)
	if err != nil {
		logger.Error("Invalid load id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid load id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.loadService.Delete(ctx, userID, id); err != nil {
		logger.Error("Failed to delete load", err)
		return c.JSON(loadStatusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LoadHandler) MarkDelivered(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := loadID(c)
	if err != nil {
		logger.Error("Invalid load id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid load id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.loadService.MarkDelivered(ctx, userID, id); err != nil {
		logger.Error("Failed to mark load delivered", err)
		return c.JSON(loadStatusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LoadHandler) UnmarkDelivered(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := loadID(c)
	if err != nil {
		logger.Error("Invalid load id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid load id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.loadService.UnmarkDelivered(ctx, userID, id); err != nil {
		logger.Error("Failed to unmark load delivered", err)
		return c.JSON(loadStatusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LoadHandler) GetByID(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := loadID(c)
	if err != nil {
		logger.Error("Invalid load id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid load id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.loadService.GetByID(ctx, userID, id)
	if err != nil {
		logger.Error("Failed to get load", err)
		return c.JSON(loadStatusFromError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"load":  found,
		"total": found.Total(),
	})
}

func (h *LoadHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	loads, err := h.loadService.List(ctx, userID)
	if err != nil {
		logger.Error("Failed to list loads", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"loads": loads,
	})
}

// GetLastRates pre-fills the load form with the rate last charged per
// cloth-type label.
func (h *LoadHandler) GetLastRates(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rates, err := h.loadService.GetLastRates(ctx, userID)
	if err != nil {
		logger.Error("Failed to get last rates", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rates": rates,
	})
}
