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

type ShopService interface {
	Create(ctx context.Context, userID uint, name string) (domain.Shop, error)
	Update(ctx context.Context, userID, id uint, name string) error
	ToggleActive(ctx context.Context, userID, id uint) error
	SetDefault(ctx context.Context, userID, id uint) error
	List(ctx context.Context, userID uint) ([]domain.Shop, error)
	ListActive(ctx context.Context, userID uint) ([]domain.Shop, error)
}

type ShopHandler struct {
	shopService ShopService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewShopHandler(shopService ShopService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type ShopRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

func shopID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ShopHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ShopRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate shop request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	shop, err := h.shopService.Create(ctx, userID, req.Name)
	if err != nil {
		logger.Error("Failed to create shop", err)
		if strings.Contains(err.Error(), "required") {
			return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(shop))
}

func (h *ShopHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := shopID(c)
	if err != nil {
		logger.Error("Invalid shop id", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("invalid shop id"))
	}

	var req ShopRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate shop request", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.shopService.Update(ctx, userID, id, req.Name); err != nil {
		logger.Error("Failed to update shop", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "required") {
			return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Shop updated successfully"))
}

func (h *ShopHandler) ToggleActive(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := shopID(c)
	if err != nil {
		logger.Error("Invalid shop id", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("invalid shop id"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.shopService.ToggleActive(ctx, userID, id); err != nil {
		logger.Error("Failed to toggle shop", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Shop toggled successfully"))
}

func (h *ShopHandler) SetDefault(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := shopID(c)
	if err != nil {
		logger.Error("Invalid shop id", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("invalid shop id"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.shopService.SetDefault(ctx, userID, id); err != nil {
		logger.Error("Failed to set default shop", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Default shop updated successfully"))
}

func (h *ShopHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	shops, err := h.shopService.List(ctx, userID)
	if err != nil {
		logger.Error("Failed to list shops", err)
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(shops))
}

func (h *ShopHandler) ListActive(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	shops, err := h.shopService.ListActive(ctx, userID)
	if err != nil {
		logger.Error("Failed to list active shops", err)
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(shops))
}
