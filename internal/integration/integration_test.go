package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/api"
	"github.com/pageza/freshkeep/backend/internal/middleware"
	"github.com/pageza/freshkeep/backend/internal/model"
	"github.com/pageza/freshkeep/backend/internal/router"
	"github.com/pageza/freshkeep/backend/internal/service"
	"github.com/pageza/freshkeep/backend/internal/testdb"
	"github.com/pageza/freshkeep/backend/internal/testhelpers"
	"github.com/pageza/freshkeep/backend/internal/types"
)

// gatewayStub answers every chat completion with content and keeps the
// prompts it was sent
type gatewayStub struct {
	mu      sync.Mutex
	content string
	prompts []string
}

func (g *gatewayStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req openai.ChatCompletionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	g.mu.Lock()
	if len(req.Messages) > 0 {
		g.prompts = append(g.prompts, req.Messages[0].Content)
	}
	content := g.content
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	})
}

func (g *gatewayStub) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

type testEnv struct {
	router  *gin.Engine
	gateway *gatewayStub
}

func setupEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tdb := testdb.SetupTestDB(t)
	log := zap.NewNop()

	stub := &gatewayStub{content: content}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	gatewayCfg := config.GatewayConfig{URL: server.URL, Model: "test-model", APIKey: "test-key", Timeout: 5 * time.Second}
	gateway := service.NewGatewayClient(gatewayCfg, log)
	t.Cleanup(func() { gateway.Close() })

	inventory := service.NewInventoryService(tdb.DB.DB, 3)
	engine := router.SetupRouter(router.Dependencies{
		Recipes:        api.NewRecipeHandler(service.NewSuggestionService(gateway, gatewayCfg, log), inventory, log),
		Inventory:      api.NewInventoryHandler(inventory, service.NewPhotoService(nil, inventory)),
		Shopping:       api.NewShoppingHandler(service.NewShoppingService(tdb.DB.DB)),
		Health:         api.NewHealthHandler(tdb.DB, nil),
		TokenValidator: middleware.NewJWTValidator(testhelpers.TestJWTSecret),
		AllowedOrigins: []string{"http://localhost:5173"},
		Logger:         log,
	})
	return &testEnv{router: engine, gateway: stub}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestInventoryLifecycle(t *testing.T) {
	env := setupEnv(t, `{"recipes":[]}`)
	token := testhelpers.GenerateTestToken(t, uuid.New())

	w := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	expiry := func(days int) string { return time.Now().AddDate(0, 0, days).Format(time.DateOnly) }
	var ids []uuid.UUID
	for _, req := range []types.CreateInventoryItemRequest{
		{Name: "Milk", ExpiryDate: expiry(1), Category: "dairy"},
		{Name: "Carrots", ExpiryDate: expiry(6), Category: "vegetables"},
		{Name: "Ham <b>sliced</b>", ExpiryDate: expiry(-1), Category: "meat"},
	} {
		w := env.request(t, http.MethodPost, "/api/v1/inventory", token, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var item model.InventoryItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		ids = append(ids, item.ID)
	}

	w = env.request(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash types.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, int64(3), dash.ActiveCount)
	require.Len(t, dash.Expiring, 2)
	assert.Equal(t, "Ham sliced", dash.Expiring[0].Name)
	assert.Equal(t, -1, dash.Expiring[0].DaysUntilExpiry)
	assert.Equal(t, "Milk", dash.Expiring[1].Name)

	require.Equal(t, http.StatusOK, env.request(t, http.MethodPost, "/api/v1/inventory/"+ids[0].String()+"/use", token, nil).Code)
	require.Equal(t, http.StatusOK, env.request(t, http.MethodDelete, "/api/v1/inventory/"+ids[2].String(), token, nil).Code)

	w = env.request(t, http.MethodGet, "/api/v1/insights", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var insights types.Insights
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &insights))
	assert.Equal(t, types.Insights{
		TotalItems:  3,
		UsedItems:   1,
		WastedItems: 1,
		ActiveItems: 1,
		WasteRate:   33.3,
		UsageRate:   33.3,
	}, insights)
}

func TestShoppingListLifecycle(t *testing.T) {
	env := setupEnv(t, `{"recipes":[]}`)
	token := testhelpers.GenerateTestToken(t, uuid.New())

	var eggs model.ShoppingItem
	w := env.request(t, http.MethodPost, "/api/v1/shopping", token, types.CreateShoppingItemRequest{ItemName: "Eggs", Quantity: 6})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eggs))

	w = env.request(t, http.MethodPatch, "/api/v1/shopping/"+eggs.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/shopping/purchased", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":1}`, w.Body.String())
}
