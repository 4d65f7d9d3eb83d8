package types

import "github.com/pageza/freshkeep/backend/internal/model"

// ExpiringItem is an active item close to or past its expiry date
type ExpiringItem struct {
	model.InventoryItem
	DaysUntilExpiry int `json:"days_until_expiry"`
}

type Dashboard struct {
	ActiveCount int64          `json:"active_count"`
	Expiring    []ExpiringItem `json:"expiring"`
}

// Insights summarizes what happened to every item a user has tracked.
// Rates are percentages rounded to one decimal.
type Insights struct {
	TotalItems  int64   `json:"total_items"`
	UsedItems   int64   `json:"used_items"`
	WastedItems int64   `json:"wasted_items"`
	ActiveItems int64   `json:"active_items"`
	WasteRate   float64 `json:"waste_rate"`
	UsageRate   float64 `json:"usage_rate"`
}
