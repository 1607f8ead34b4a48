package domain

import (
	"time"
)

// CREATE TABLE public.shops (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     BIGINT NOT NULL REFERENCES users(id),
//     name        TEXT NOT NULL,
//     is_default  BOOLEAN NOT NULL DEFAULT FALSE,
//     is_active   BOOLEAN NOT NULL DEFAULT TRUE,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Shop struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	IsDefault bool      `gorm:"column:is_default;default:false" json:"is_default"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}
