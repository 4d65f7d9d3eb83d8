package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/model"
	"github.com/pageza/freshkeep/backend/internal/testhelpers"
	"github.com/pageza/freshkeep/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestInventoryService(t *testing.T) *InventoryService {
	t.Helper()
	svc := NewInventoryService(testhelpers.SetupGormDB(t), 3)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func addItem(t *testing.T, svc *InventoryService, userID uuid.UUID, name string, daysOut int) *model.InventoryItem {
	t.Helper()
	item, err := svc.Create(context.Background(), userID, &types.CreateInventoryItemRequest{
		Name:       name,
		ExpiryDate: fixedNow.AddDate(0, 0, daysOut).Format(time.DateOnly),
	})
	require.NoError(t, err)
	return item
}

func TestInventoryCreateDefaults(t *testing.T) {
	svc := newTestInventoryService(t)
	userID := uuid.New()

	item, err := svc.Create(context.Background(), userID, &types.CreateInventoryItemRequest{
		Name:       "  <b>Greek</b> yogurt ",
		ExpiryDate: "2025-03-14",
		Notes:      "<script>alert(1)</script>top shelf",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, userID, item.UserID)
	assert.Equal(t, "Greek yogurt", item.Name)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, "piece", item.Unit)
	assert.Equal(t, model.CategoryOther, item.Category)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), item.ExpiryDate)
	require.NotNil(t, item.Notes)
	assert.Equal(t, "top shelf", *item.Notes)
}

func TestInventoryCreateValidation(t *testing.T) {
	svc := newTestInventoryService(t)
	zero := 0.0

	tests := []struct {
		name string
		req  types.CreateInventoryItemRequest
	}{
		{"markup only name", types.CreateInventoryItemRequest{Name: "<br>", ExpiryDate: "2025-03-14"}},
		{"bad date", types.CreateInventoryItemRequest{Name: "Milk", ExpiryDate: "14/03/2025"}},
		{"bad category", types.CreateInventoryItemRequest{Name: "Milk", ExpiryDate: "2025-03-14", Category: "candy"}},
		{"zero quantity", types.CreateInventoryItemRequest{Name: "Milk", ExpiryDate: "2025-03-14", Quantity: &zero}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), &tt.req)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
		})
	}
}

func TestInventoryLifecycle(t *testing.T) {
	svc := newTestInventoryService(t)
	ctx := context.Background()
	userID := uuid.New()

	later := addItem(t, svc, userID, "Cheese", 10)
	soon := addItem(t, svc, userID, "Milk", 1)
	gone := addItem(t, svc, userID, "Bread", 2)
	addItem(t, svc, uuid.New(), "Someone else's eggs", 1)

	items, err := svc.ListActive(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Milk", "Bread", "Cheese"}, []string{items[0].Name, items[1].Name, items[2].Name})

	used, err := svc.MarkUsed(ctx, userID, soon.ID)
	require.NoError(t, err)
	require.NotNil(t, used.UsedAt)
	assert.Nil(t, used.DiscardedAt)

	discarded, err := svc.Discard(ctx, userID, gone.ID)
	require.NoError(t, err)
	require.NotNil(t, discarded.DiscardedAt)

	// closed items cannot be closed again
	_, err = svc.Discard(ctx, userID, soon.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	names, err := svc.ActiveNames(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheese"}, names)

	// other users' items are invisible
	_, err = svc.MarkUsed(ctx, uuid.New(), later.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestInventoryDashboard(t *testing.T) {
	svc := newTestInventoryService(t)
	ctx := context.Background()
	userID := uuid.New()

	addItem(t, svc, userID, "Overdue", -2)
	addItem(t, svc, userID, "Today", 0)
	addItem(t, svc, userID, "Edge", 3)
	addItem(t, svc, userID, "Later", 4)
	used := addItem(t, svc, userID, "Used", 1)
	_, err := svc.MarkUsed(ctx, userID, used.ID)
	require.NoError(t, err)

	dash, err := svc.Dashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), dash.ActiveCount)
	require.Len(t, dash.Expiring, 3)
	assert.Equal(t, "Overdue", dash.Expiring[0].Name)
	assert.Equal(t, -2, dash.Expiring[0].DaysUntilExpiry)
	assert.Equal(t, "Today", dash.Expiring[1].Name)
	assert.Equal(t, 0, dash.Expiring[1].DaysUntilExpiry)
	assert.Equal(t, "Edge", dash.Expiring[2].Name)
	assert.Equal(t, 3, dash.Expiring[2].DaysUntilExpiry)
}

func TestInventoryInsights(t *testing.T) {
	svc := newTestInventoryService(t)
	ctx := context.Background()
	userID := uuid.New()

	empty, err := svc.Insights(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &types.Insights{}, empty)

	a := addItem(t, svc, userID, "A", 1)
	b := addItem(t, svc, userID, "B", 1)
	addItem(t, svc, userID, "C", 1)
	_, err = svc.MarkUsed(ctx, userID, a.ID)
	require.NoError(t, err)
	_, err = svc.Discard(ctx, userID, b.ID)
	require.NoError(t, err)

	got, err := svc.Insights(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, &types.Insights{
		TotalItems:  3,
		UsedItems:   1,
		WastedItems: 1,
		ActiveItems: 1,
		WasteRate:   33.3,
		UsageRate:   33.3,
	}, got)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(0, 0))
	assert.Equal(t, 66.7, percent(2, 3))
	assert.Equal(t, 100.0, percent(4, 4))
}
