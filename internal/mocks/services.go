package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/freshkeep/backend/internal/model"
	"github.com/pageza/freshkeep/backend/internal/types"
)

// MockSuggestionService is a mock implementation of the suggestion service
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) SuggestFromBody(ctx context.Context, body []byte) (types.RecipeResponse, error) {
	args := m.Called(ctx, body)
	return args.Get(0).(types.RecipeResponse), args.Error(1)
}

func (m *MockSuggestionService) SuggestFromNames(ctx context.Context, names []string) (types.RecipeResponse, error) {
	args := m.Called(ctx, names)
	return args.Get(0).(types.RecipeResponse), args.Error(1)
}

func (m *MockSuggestionService) Suggest(ctx context.Context, ingredients []string) types.RecipeResponse {
	args := m.Called(ctx, ingredients)
	return args.Get(0).(types.RecipeResponse)
}

// MockInventoryService is a mock implementation of the inventory service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListActive(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) MarkUsed(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Discard(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Get(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) SetPhotoKey(ctx context.Context, userID, itemID uuid.UUID, key string) error {
	args := m.Called(ctx, userID, itemID, key)
	return args.Error(0)
}

func (m *MockInventoryService) ActiveNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInventoryService) Dashboard(ctx context.Context, userID uuid.UUID) (*types.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Dashboard), args.Error(1)
}

func (m *MockInventoryService) Insights(ctx context.Context, userID uuid.UUID) (*types.Insights, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Insights), args.Error(1)
}

// MockPresigner is a mock implementation of object storage presigning
type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockPresigner) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
