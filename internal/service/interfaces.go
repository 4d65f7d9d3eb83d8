package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/freshkeep/backend/internal/model"
	"github.com/pageza/freshkeep/backend/internal/types"
	"github.com/sashabaranov/go-openai"
)

// ChatCompleter sends a single chat-completion request
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// ISuggestionService defines the recipe suggestion operations
type ISuggestionService interface {
	SuggestFromBody(ctx context.Context, body []byte) (types.RecipeResponse, error)
	SuggestFromNames(ctx context.Context, names []string) (types.RecipeResponse, error)
	Suggest(ctx context.Context, ingredients []string) types.RecipeResponse
}

// IInventoryService defines the interface for inventory operations
type IInventoryService interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error)
	Create(ctx context.Context, userID uuid.UUID, req *types.CreateInventoryItemRequest) (*model.InventoryItem, error)
	MarkUsed(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error)
	Discard(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error)
	Get(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error)
	SetPhotoKey(ctx context.Context, userID, itemID uuid.UUID, key string) error
	ActiveNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*types.Dashboard, error)
	Insights(ctx context.Context, userID uuid.UUID) (*types.Insights, error)
}

// IShoppingService defines the interface for shopping list operations
type IShoppingService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingItem, error)
	Add(ctx context.Context, userID uuid.UUID, req *types.CreateShoppingItemRequest) (*model.ShoppingItem, error)
	Toggle(ctx context.Context, userID, itemID uuid.UUID) (*model.ShoppingItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	ClearPurchased(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Presigner issues time-limited object storage URLs
type Presigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}
