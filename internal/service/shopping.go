package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/model"
	"github.com/pageza/freshkeep/backend/internal/types"
	"gorm.io/gorm"
)

// ShoppingService handles shopping list operations
type ShoppingService struct {
	db     *gorm.DB
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{
		db:     db,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// List returns open entries first, newest first within each group
func (s *ShoppingService) List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingItem, error) {
	var items []model.ShoppingItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased ASC").
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	return items, nil
}

// Add appends an entry. Missing or non-positive quantities become 1.
func (s *ShoppingService) Add(ctx context.Context, userID uuid.UUID, req *types.CreateShoppingItemRequest) (*model.ShoppingItem, error) {
	name := plainText(s.policy, req.ItemName)
	if name == "" {
		return nil, apperrors.BadRequest("item_name is required")
	}

	item := &model.ShoppingItem{
		UserID:   userID,
		ItemName: name,
		Quantity: req.Quantity,
		Unit:     strings.TrimSpace(req.Unit),
		AddedAt:  s.now().UTC(),
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Unit == "" {
		item.Unit = defaultUnit
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}
	return item, nil
}

// Toggle flips the purchased flag and stamps or clears purchased_at
func (s *ShoppingService) Toggle(ctx context.Context, userID, itemID uuid.UUID) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
			return err
		}

		item.Purchased = !item.Purchased
		if item.Purchased {
			now := s.now().UTC()
			item.PurchasedAt = &now
		} else {
			item.PurchasedAt = nil
		}

		return tx.Model(&item).
			Updates(map[string]interface{}{
				"purchased":    item.Purchased,
				"purchased_at": item.PurchasedAt,
			}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("shopping item")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle shopping item: %w", err)
	}
	return &item, nil
}

func (s *ShoppingService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.ShoppingItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete shopping item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("shopping item")
	}
	return nil
}

// ClearPurchased removes every purchased entry and reports how many went
func (s *ShoppingService) ClearPurchased(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND purchased = ?", userID, true).
		Delete(&model.ShoppingItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear purchased items: %w", result.Error)
	}
	return result.RowsAffected, nil
}
