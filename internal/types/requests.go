package types

// CreateInventoryItemRequest represents the request body for adding an inventory item
type CreateInventoryItemRequest struct {
	Name       string   `json:"name" binding:"required,max=200"`
	Quantity   *float64 `json:"quantity" binding:"omitempty,gt=0"`
	Unit       string   `json:"unit" binding:"max=32"`
	Category   string   `json:"category" binding:"omitempty,oneof=vegetables fruits dairy meat fish grains snacks beverages condiments other"`
	ExpiryDate string   `json:"expiry_date" binding:"required,datetime=2006-01-02"`
	Notes      string   `json:"notes" binding:"max=1000"`
}

// CreateShoppingItemRequest represents the request body for adding a shopping list entry
type CreateShoppingItemRequest struct {
	ItemName string  `json:"item_name" binding:"required,max=200"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit" binding:"max=32"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"content_type" binding:"omitempty,oneof=image/jpeg image/png image/webp"`
}

type PhotoURLResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
