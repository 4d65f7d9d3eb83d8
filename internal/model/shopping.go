package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingItem struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ItemName    string     `gorm:"size:200;not null" json:"item_name"`
	Quantity    float64    `gorm:"not null" json:"quantity"`
	Unit        string     `gorm:"size:32;not null" json:"unit"`
	Purchased   bool       `gorm:"not null" json:"purchased"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	AddedAt     time.Time  `gorm:"not null;index" json:"added_at"`
}

func (ShoppingItem) TableName() string {
	return "shopping_list"
}

func (s *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.AddedAt.IsZero() {
		s.AddedAt = time.Now().UTC()
	}
	return nil
}
