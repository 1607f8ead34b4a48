package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"laundryTrack/domain"
	"laundryTrack/internal/middleware"
	"laundryTrack/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ClothTypeService interface {
	Create(ctx context.Context, userID uint, name string, ironRate, washRate, dryCleanRate float64) (domain.ClothType, error)
	Update(ctx context.Context, userID, id uint, name string, ironRate, washRate, dryCleanRate float64) error
	ToggleActive(ctx context.Context, userID, id uint) error
	List(ctx context.Context, userID uint) ([]domain.ClothType, error)
	ListActive(ctx context.Context, userID uint) ([]domain.ClothType, error)
}

type ClothTypeHandler struct {
	clothTypeService ClothTypeService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewClothTypeHandler(clothTypeService ClothTypeService) *ClothTypeHandler {
	return &ClothTypeHandler{
		clothTypeService: clothTypeService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type ClothTypeRequest struct {
	Name         string  `json:"name" validate:"required,min=1"`
	IronRate     float64 `json:"iron_rate" validate:"gte=0"`
	WashRate     float64 `json:"wash_rate" validate:"gte=0"`
	DryCleanRate float64 `json:"dry_clean_rate" validate:"gte=0"`
}

func clothTypeID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ClothTypeHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ClothTypeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cloth type request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	clothType, err := h.clothTypeService.Create(ctx, userID, req.Name, req.IronRate, req.WashRate, req.DryCleanRate)
	if err != nil {
		logger.Error("Failed to create cloth type", err)
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "negative") {
			return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(clothType))
}

func (h *ClothTypeHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := clothTypeID(c)
	if err != nil {
		logger.Error("Invalid cloth type id", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("invalid cloth type id"))
	}

	var req ClothTypeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cloth type request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.clothTypeService.Update(ctx, userID, id, req.Name, req.IronRate, req.WashRate, req.DryCleanRate); err != nil {
		logger.Error("Failed to update cloth type", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "negative") {
			return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cloth type updated successfully"))
}

func (h *ClothTypeHandler) ToggleActive(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := clothTypeID(c)
	if err != nil {
		logger.Error("Invalid cloth type id", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("invalid cloth type id"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.clothTypeService.ToggleActive(ctx, userID, id); err != nil {
		logger.Error("Failed to toggle cloth type", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cloth type toggled successfully"))
}

func (h *ClothTypeHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	clothTypes, err := h.clothTypeService.List(ctx, userID)
	if err != nil {
		logger.Error("Failed to list cloth types", err)
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(clothTypes))
}

func (h *ClothTypeHandler) ListActive(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	clothTypes, err := h.clothTypeService.ListActive(ctx, userID)
	if err != nil {
		logger.Error("Failed to list active cloth types", err)
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(clothTypes))
}
