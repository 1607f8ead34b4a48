package domain

import (
	"time"
)

// CREATE TABLE public.otp_tokens (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     email       TEXT NOT NULL,
//     otp_hash    TEXT NOT NULL,
//     expires_at  TIMESTAMPTZ NOT NULL,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

// OtpToken is an ephemeral login credential. The code itself is never stored,
// only its bcrypt hash.
type OtpToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"column:email;not null;index" json:"email"`
	OtpHash   string    `gorm:"column:otp_hash;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (OtpToken) TableName() string {
	return "otp_tokens"
}
