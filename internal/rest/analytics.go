package rest

import (
	"context"
	"net/http"
	"time"

	"laundryTrack/business/analytics"
	"laundryTrack/internal/middleware"
	"laundryTrack/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AnalyticsService interface {
	GetExpenditure(ctx context.Context, userID uint) (analytics.Expenditure, error)
}

type AnalyticsHandler struct {
	analyticsService AnalyticsService
	timeout          time.Duration
}

func NewAnalyticsHandler(analyticsService AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		timeout:          10 * time.Second,
	}
}

func (h *AnalyticsHandler) GetExpenditure(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	expenditure, err := h.analyticsService.GetExpenditure(ctx, userID)
	if err != nil {
		logger.Error("Failed to get expenditure", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, expenditure)
}
