package postgres

import (
	"context"
	"errors"
	"time"

	"laundryTrack/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := r.DB.WithContext(ctx).Create(session).Error; err != nil {
		return err
	}

	return nil
}

// FindValidByID resolves an unexpired session together with its user. Expiry
// is enforced on every lookup, not only at creation.
func (r *SessionRepository) FindValidByID(ctx context.Context, id string) (domain.Session, error) {
	var session domain.Session

	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, errors.New("session not found")
		}
		return domain.Session{}, err
	}

	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Session{})
	if result.Error != nil {
		return result.Error
	}

	return nil
}
