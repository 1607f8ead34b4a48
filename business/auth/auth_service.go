package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"laundryTrack/domain"
	rediscache "laundryTrack/internal/repository/redis"
	"laundryTrack/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// SessionRepository contract interface
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindValidByID(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// OtpTokenRepository contract interface
type OtpTokenRepository interface {
	Create(ctx context.Context, token *domain.OtpToken) error
	FindValidByEmail(ctx context.Context, email string) ([]domain.OtpToken, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

// SessionCache is the optional Redis-backed lookup in front of the sessions
// table. All cache failures are soft.
type SessionCache interface {
	Store(ctx context.Context, data rediscache.SessionData) error
	Get(ctx context.Context, sessionID string) (rediscache.SessionData, error)
	Delete(ctx context.Context, sessionID string) error
}

const (
	otpTTL     = 10 * time.Minute
	sessionTTL = 30 * 24 * time.Hour

	SubjectLoginOtp   = "Your Login OTP"
	EmailBodyLoginOtp = `<div style="font-family: Arial, sans-serif; max-width: 400px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Login to LaundryTrack</h2>
  <p style="color: #666;">Your one-time password is:</p>
  <div style="background: #f5f5f5; padding: 15px; border-radius: 8px; text-align: center; margin: 20px 0;">
    <span style="font-size: 32px; font-weight: bold; letter-spacing: 4px; color: #333;">%v</span>
  </div>
  <p style="color: #999; font-size: 12px;">This OTP will expire in 10 minutes.</p>
</div>`
)

var (
	ErrInvalidOtp      = errors.New("invalid or expired OTP")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionInfo is what a resolved session exposes to callers.
type SessionInfo struct {
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
}

type authService struct {
	userRepo     UserRepository
	sessionRepo  SessionRepository
	otpRepo      OtpTokenRepository
	notifRepo    NotificationRepository
	sessionCache SessionCache
	validate     *validator.Validate
}

func NewAuthService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	otpRepo OtpTokenRepository,
	notifRepo NotificationRepository,
	sessionCache SessionCache,
	validate *validator.Validate,
) *authService {
	return &authService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		otpRepo:      otpRepo,
		notifRepo:    notifRepo,
		sessionCache: sessionCache,
		validate:     validate,
	}
}

// generateOtp draws a uniform 6-digit code from crypto/rand.
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// SendOtp purges any live codes for the email, issues a fresh one with a
// 10-minute expiry and mails it out. Only the bcrypt hash is stored.
func (s *authService) SendOtp(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return errors.New("invalid email format")
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		logger.Error("Failed to purge previous OTP tokens", err)
		return err
	}

	otp, err := generateOtp()
	if err != nil {
		logger.Error("Failed to generate OTP", err)
		return err
	}

	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash OTP", err)
		return errors.New("failed to hash OTP")
	}

	token := domain.OtpToken{
		Email:     email,
		OtpHash:   string(otpHash),
		ExpiresAt: time.Now().Add(otpTTL),
	}

	if err := s.otpRepo.Create(ctx, &token); err != nil {
		logger.Error("Failed to store OTP token", err)
		return err
	}

	if err := s.notifRepo.SendEmail(email, email, SubjectLoginOtp, fmt.Sprintf(EmailBodyLoginOtp, otp)); err != nil {
		logger.Error("Failed to send OTP email", err)
		return errors.New("failed to send OTP email")
	}

	OtpIssuedTotal.Inc()
	logger.Info("OTP issued", "email", email)

	return nil
}

// VerifyOtp checks the submitted code against the live tokens for the email.
// A failed attempt leaves the token usable for a retry within its window; a
// successful one consumes every token for the email and opens a session.
func (s *authService) VerifyOtp(ctx context.Context, email, otp string) (SessionInfo, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return SessionInfo{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(otp, "required,len=6,numeric"); err != nil {
		logger.Error("Invalid OTP format", err)
		return SessionInfo{}, ErrInvalidOtp
	}

	tokens, err := s.otpRepo.FindValidByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to look up OTP tokens", err)
		return SessionInfo{}, err
	}

	matched := false
	for _, token := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(token.OtpHash), []byte(otp)) == nil {
			matched = true
			break
		}
	}

	if !matched {
		OtpVerifiedTotal.WithLabelValues("failure").Inc()
		return SessionInfo{}, ErrInvalidOtp
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		logger.Error("Failed to consume OTP tokens", err)
		return SessionInfo{}, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		user = domain.User{Email: email}
		if err := s.userRepo.Create(ctx, &user); err != nil {
			logger.Error("Failed to create user", err)
			return SessionInfo{}, err
		}
		logger.Info("User created on first login", "email", email)
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		logger.Error("Failed to create session", err)
		return SessionInfo{}, err
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Store(ctx, rediscache.SessionData{
			SessionID: session.ID,
			UserID:    user.ID,
			Email:     user.Email,
			ExpiresAt: session.ExpiresAt,
		}); err != nil {
			logger.Warn("Failed to cache session", err)
		}
	}

	OtpVerifiedTotal.WithLabelValues("success").Inc()

	return SessionInfo{
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
	}, nil
}

// GetSession resolves a bearer session id, cache first, store second. Expiry
// is rechecked on every lookup.
func (s *authService) GetSession(ctx context.Context, sessionID string) (SessionInfo, error) {
	if sessionID == "" {
		return SessionInfo{}, ErrSessionNotFound
	}

	if s.sessionCache != nil {
		cached, err := s.sessionCache.Get(ctx, sessionID)
		if err == nil && time.Now().Before(cached.ExpiresAt) {
			return SessionInfo{
				SessionID: cached.SessionID,
				UserID:    cached.UserID,
				Email:     cached.Email,
			}, nil
		}
		if err != nil && !errors.Is(err, rediscache.ErrCacheMiss) {
			logger.Warn("Session cache lookup failed", err)
		}
	}

	session, err := s.sessionRepo.FindValidByID(ctx, sessionID)
	if err != nil {
		return SessionInfo{}, ErrSessionNotFound
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Store(ctx, rediscache.SessionData{
			SessionID: session.ID,
			UserID:    session.UserID,
			Email:     session.User.Email,
			ExpiresAt: session.ExpiresAt,
		}); err != nil {
			logger.Warn("Failed to cache session", err)
		}
	}

	return SessionInfo{
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.User.Email,
	}, nil
}

// Logout drops the session row and its cache entry. Logging out an already
// dead session succeeds.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		logger.Error("Failed to delete session", err)
		return err
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Delete(ctx, sessionID); err != nil {
			logger.Warn("Failed to evict cached session", err)
		}
	}

	return nil
}
