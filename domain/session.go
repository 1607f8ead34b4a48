package domain

import (
	"time"
)

// CREATE TABLE public.sessions (
//     id          UUID PRIMARY KEY,
//     user_id     BIGINT NOT NULL REFERENCES users(id),
//     expires_at  TIMESTAMPTZ NOT NULL,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Session struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string {
	return "sessions"
}
