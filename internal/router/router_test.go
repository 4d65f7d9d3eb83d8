package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/api"
	"github.com/pageza/freshkeep/backend/internal/middleware"
	"github.com/pageza/freshkeep/backend/internal/service"
	"github.com/pageza/freshkeep/backend/internal/testhelpers"
)

const testOrigin = "http://localhost:5173"

func setupTestRouter(t *testing.T, limiter middleware.Limiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	log := zap.NewNop()

	// nothing listens here; suggestion calls fail open
	gatewayCfg := config.GatewayConfig{URL: "http://127.0.0.1:1", Model: "test-model", APIKey: "test-key", Timeout: time.Second}
	gateway := service.NewGatewayClient(gatewayCfg, log)
	t.Cleanup(func() { gateway.Close() })

	inventory := service.NewInventoryService(db.DB, 3)
	return SetupRouter(Dependencies{
		Recipes:        api.NewRecipeHandler(service.NewSuggestionService(gateway, gatewayCfg, log), inventory, log),
		Inventory:      api.NewInventoryHandler(inventory, service.NewPhotoService(nil, inventory)),
		Shopping:       api.NewShoppingHandler(service.NewShoppingService(db.DB)),
		Health:         api.NewHealthHandler(db, nil),
		TokenValidator: middleware.NewJWTValidator(testhelpers.TestJWTSecret),
		Limiter:        limiter,
		AllowedOrigins: []string{testOrigin},
		Logger:         log,
	})
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "freshkeep_http_requests_total")
}

func TestFunctionRoute(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := serve(router, httptest.NewRequest(http.MethodOptions, "/functions/v1/get-recipes", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/get-recipes", strings.NewReader(`{"ingredients":"eggs"}`))
	w = serve(router, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/functions/v1/get-recipes", strings.NewReader(`{"ingredients":["eggs"]}`))
	w = serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes":[]}`, w.Body.String())
}

func TestFunctionRouteRateLimited(t *testing.T) {
	limiter := middleware.NewLocalLimiter(middleware.RateLimitConfig{Window: time.Minute, Limit: 2})
	router := setupTestRouter(t, limiter)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/functions/v1/get-recipes", strings.NewReader(`{"ingredients":[]}`))
		return serve(router, req)
	}

	assert.Equal(t, http.StatusBadRequest, post().Code)
	assert.Equal(t, http.StatusBadRequest, post().Code)

	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// preflights are answered before the limiter
	w = serve(router, httptest.NewRequest(http.MethodOptions, "/functions/v1/get-recipes", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRoutes(t *testing.T) {
	router := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/inventory", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", "Bearer "+testhelpers.GenerateTestToken(t, uuid.New()))
	w = serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
