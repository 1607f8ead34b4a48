package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"laundryTrack/business/auth"
	"laundryTrack/internal/middleware"
	"laundryTrack/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	SendOtp(ctx context.Context, email string) error
	VerifyOtp(ctx context.Context, email, otp string) (auth.SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (auth.SessionInfo, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type SendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *AuthHandler) SendOtp(c echo.Context) error {
	var req SendOtpRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate send otp request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.SendOtp(ctx, req.Email); err != nil {
		logger.Error("Failed to send OTP", err)
		if strings.Contains(err.Error(), "invalid email") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	var req VerifyOtpRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate verify otp request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.authService.VerifyOtp(ctx, req.Email, req.Otp)
	if err != nil {
		logger.Error("Failed to verify OTP", err)
		if strings.Contains(err.Error(), "invalid or expired") || strings.Contains(err.Error(), "invalid email") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": session.SessionID,
	})
}

// GetSession resolves the caller's bearer credential. An absent or dead
// session is not an error here, the body is just null.
func (h *AuthHandler) GetSession(c echo.Context) error {
	sessionID := middleware.BearerSessionID(c)
	if sessionID == "" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"session": nil,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.authService.GetSession(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"session": nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session": map[string]interface{}{
			"user_id": session.UserID,
			"email":   session.Email,
		},
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := middleware.BearerSessionID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.authService.Logout(ctx, sessionID); err != nil {
		logger.Error("Failed to logout", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
