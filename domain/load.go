package domain

import (
	"time"
)

// CREATE TABLE public.loads (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id       BIGINT NOT NULL REFERENCES users(id),
//     shop_id       BIGINT NOT NULL REFERENCES shops(id),
//     load_type     TEXT NOT NULL,
//     pickup_date   TIMESTAMPTZ NOT NULL,
//     is_delivered  BOOLEAN NOT NULL DEFAULT FALSE,
//     delivered_at  TIMESTAMPTZ,
//     created_at    TIMESTAMPTZ DEFAULT NOW(),
//     updated_at    TIMESTAMPTZ DEFAULT NOW()
// );
//
// CREATE TABLE public.load_items (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     load_id     BIGINT NOT NULL REFERENCES loads(id) ON DELETE CASCADE,
//     cloth_type  TEXT NOT NULL,
//     rate        NUMERIC NOT NULL,
//     count       INTEGER NOT NULL
// );

const (
	LoadTypeIron     = "IRON"
	LoadTypeWash     = "WASH"
	LoadTypeDryClean = "DRY_CLEAN"
)

// Load is one laundry batch picked up from a shop on a date.
type Load struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"user_id"`
	ShopID      uint       `gorm:"column:shop_id;not null" json:"shop_id"`
	Shop        Shop       `gorm:"foreignKey:ShopID" json:"shop"`
	LoadType    string     `gorm:"column:load_type;not null" json:"load_type"`
	PickupDate  time.Time  `gorm:"column:pickup_date;not null" json:"pickup_date"`
	IsDelivered bool       `gorm:"column:is_delivered;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `gorm:"column:delivered_at" json:"delivered_at"`
	Items       []LoadItem `gorm:"foreignKey:LoadID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Load) TableName() string {
	return "loads"
}

type LoadItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	LoadID    uint    `gorm:"column:load_id;not null;index" json:"load_id"`
	ClothType string  `gorm:"column:cloth_type;not null" json:"cloth_type"`
	Rate      float64 `gorm:"column:rate;type:numeric;not null" json:"rate"`
	Count     int     `gorm:"column:count;not null" json:"count"`
}

func (LoadItem) TableName() string {
	return "load_items"
}

// Total is the spend for the whole load.
func (l Load) Total() float64 {
	var total float64
	for _, item := range l.Items {
		total += item.Rate * float64(item.Count)
	}
	return total
}
