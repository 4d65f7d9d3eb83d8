package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/model"
	"github.com/pageza/freshkeep/backend/internal/types"
	"gorm.io/gorm"
)

const (
	defaultUnit           = "piece"
	defaultExpiringWindow = 3
)

// InventoryService handles inventory item operations
type InventoryService struct {
	db             *gorm.DB
	policy         *bluemonday.Policy
	expiringWindow int
	now            func() time.Time
}

// NewInventoryService creates a new InventoryService instance
func NewInventoryService(db *gorm.DB, expiringWindowDays int) *InventoryService {
	if expiringWindowDays <= 0 {
		expiringWindowDays = defaultExpiringWindow
	}
	return &InventoryService{
		db:             db,
		policy:         bluemonday.StrictPolicy(),
		expiringWindow: expiringWindowDays,
		now:            time.Now,
	}
}

// ListActive returns items that are neither used nor discarded, soonest
// expiry first
func (s *InventoryService) ListActive(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := s.active(ctx, userID).
		Order("expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// Create adds an item for userID. Free text is reduced to plain text.
func (s *InventoryService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	name := plainText(s.policy, req.Name)
	if name == "" {
		return nil, apperrors.BadRequest("name is required")
	}

	expiry, err := time.Parse(time.DateOnly, req.ExpiryDate)
	if err != nil {
		return nil, apperrors.BadRequest("expiry_date must be YYYY-MM-DD")
	}

	item := &model.InventoryItem{
		UserID:     userID,
		Name:       name,
		Quantity:   1,
		Unit:       defaultUnit,
		Category:   model.CategoryOther,
		ExpiryDate: model.TruncateDay(expiry),
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, apperrors.BadRequest("quantity must be positive")
		}
		item.Quantity = *req.Quantity
	}
	if unit := strings.TrimSpace(req.Unit); unit != "" {
		item.Unit = unit
	}
	if req.Category != "" {
		category := model.Category(req.Category)
		if !category.Valid() {
			return nil, apperrors.BadRequest("invalid category")
		}
		item.Category = category
	}
	if notes := plainText(s.policy, req.Notes); notes != "" {
		item.Notes = &notes
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// Get returns one of userID's items regardless of state
func (s *InventoryService) Get(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("item")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

// MarkUsed closes an active item as consumed
func (s *InventoryService) MarkUsed(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	return s.close(ctx, userID, itemID, "used_at")
}

// Discard closes an active item as wasted
func (s *InventoryService) Discard(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	return s.close(ctx, userID, itemID, "discarded_at")
}

func (s *InventoryService) close(ctx context.Context, userID, itemID uuid.UUID, column string) (*model.InventoryItem, error) {
	now := s.now().UTC()
	result := s.active(ctx, userID).
		Model(&model.InventoryItem{}).
		Where("id = ?", itemID).
		Update(column, now)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("item")
	}
	return s.Get(ctx, userID, itemID)
}

// SetPhotoKey records the storage key of an item's photo
func (s *InventoryService) SetPhotoKey(ctx context.Context, userID, itemID uuid.UUID, key string) error {
	result := s.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("photo_key", key)
	if result.Error != nil {
		return fmt.Errorf("failed to set photo key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("item")
	}
	return nil
}

// ActiveNames lists the names of active items, the input for suggestions
func (s *InventoryService) ActiveNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := s.active(ctx, userID).
		Model(&model.InventoryItem{}).
		Order("expiry_date ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list item names: %w", err)
	}
	return names, nil
}

// Dashboard returns the active count and the items expiring within the
// configured window, including overdue ones
func (s *InventoryService) Dashboard(ctx context.Context, userID uuid.UUID) (*types.Dashboard, error) {
	now := s.now()
	cutoff := model.TruncateDay(now).AddDate(0, 0, s.expiringWindow)

	var count int64
	if err := s.active(ctx, userID).Model(&model.InventoryItem{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}

	var items []model.InventoryItem
	err := s.active(ctx, userID).
		Where("expiry_date <= ?", cutoff).
		Order("expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring items: %w", err)
	}

	dash := &types.Dashboard{ActiveCount: count, Expiring: make([]types.ExpiringItem, 0, len(items))}
	for _, item := range items {
		dash.Expiring = append(dash.Expiring, types.ExpiringItem{
			InventoryItem:   item,
			DaysUntilExpiry: item.DaysUntilExpiry(now),
		})
	}
	return dash, nil
}

// Insights counts every item the user has tracked by outcome
func (s *InventoryService) Insights(ctx context.Context, userID uuid.UUID) (*types.Insights, error) {
	var row struct {
		Total  int64
		Used   int64
		Wasted int64
		Active int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Select(`COUNT(*) AS total,
			COUNT(used_at) AS used,
			COUNT(discarded_at) AS wasted,
			COALESCE(SUM(CASE WHEN used_at IS NULL AND discarded_at IS NULL THEN 1 ELSE 0 END), 0) AS active`).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute insights: %w", err)
	}

	return &types.Insights{
		TotalItems:  row.Total,
		UsedItems:   row.Used,
		WastedItems: row.Wasted,
		ActiveItems: row.Active,
		WasteRate:   percent(row.Wasted, row.Total),
		UsageRate:   percent(row.Used, row.Total),
	}, nil
}

func (s *InventoryService) active(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND used_at IS NULL AND discarded_at IS NULL", userID)
}

// plainText drops markup and decodes the entities the policy escaped
func plainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
