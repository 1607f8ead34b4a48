package domain

import (
	"time"
)

// CREATE TABLE public.cloth_types (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id         BIGINT NOT NULL REFERENCES users(id),
//     name            TEXT NOT NULL,
//     iron_rate       NUMERIC NOT NULL DEFAULT 0,
//     wash_rate       NUMERIC NOT NULL DEFAULT 0,
//     dry_clean_rate  NUMERIC NOT NULL DEFAULT 0,
//     is_active       BOOLEAN NOT NULL DEFAULT TRUE,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

// ClothType is a user-defined garment category with a price per service kind.
type ClothType struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	IronRate     float64   `gorm:"column:iron_rate;type:numeric" json:"iron_rate"`
	WashRate     float64   `gorm:"column:wash_rate;type:numeric" json:"wash_rate"`
	DryCleanRate float64   `gorm:"column:dry_clean_rate;type:numeric" json:"dry_clean_rate"`
	IsActive     bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ClothType) TableName() string {
	return "cloth_types"
}
