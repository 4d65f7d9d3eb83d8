package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups inventory items
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryFish       Category = "fish"
	CategoryGrains     Category = "grains"
	CategorySnacks     Category = "snacks"
	CategoryBeverages  Category = "beverages"
	CategoryCondiments Category = "condiments"
	CategoryOther      Category = "other"
)

var categories = map[Category]struct{}{
	CategoryVegetables: {},
	CategoryFruits:     {},
	CategoryDairy:      {},
	CategoryMeat:       {},
	CategoryFish:       {},
	CategoryGrains:     {},
	CategorySnacks:     {},
	CategoryBeverages:  {},
	CategoryCondiments: {},
	CategoryOther:      {},
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// InventoryItem is a perishable item tracked by a user. An item is active
// until it is either used or discarded.
type InventoryItem struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Quantity    float64    `gorm:"not null" json:"quantity"`
	Unit        string     `gorm:"size:32;not null" json:"unit"`
	Category    Category   `gorm:"size:32;not null" json:"category"`
	ExpiryDate  time.Time  `gorm:"type:date;not null;index" json:"expiry_date"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`
	PhotoKey    string     `gorm:"size:255" json:"photo_key,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	DiscardedAt *time.Time `json:"discarded_at,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Active reports whether the item has been neither used nor discarded
func (i *InventoryItem) Active() bool {
	return i.UsedAt == nil && i.DiscardedAt == nil
}

// DaysUntilExpiry counts whole days from the start of today's date to the
// expiry date. Past dates are negative.
func (i *InventoryItem) DaysUntilExpiry(now time.Time) int {
	today := TruncateDay(now)
	expiry := TruncateDay(i.ExpiryDate)
	return int(expiry.Sub(today).Hours() / 24)
}

// TruncateDay returns midnight UTC of t's calendar date
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
