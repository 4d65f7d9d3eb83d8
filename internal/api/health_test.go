package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/freshkeep/backend/internal/testhelpers"
)

type failingDB struct{}

func (failingDB) HealthCheck(context.Context) error { return errors.New("connection refused") }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		db     HealthChecker
		status int
		body   string
	}{
		{
			name:   "healthy",
			db:     testhelpers.SetupTestDatabase(t),
			status: http.StatusOK,
			body:   `{"status":"ok","checks":{"database":"ok","redis":"disabled"}}`,
		},
		{
			name:   "database down",
			db:     failingDB{},
			status: http.StatusServiceUnavailable,
			body:   `{"status":"unavailable","checks":{"database":"unavailable","redis":"disabled"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler(tt.db, nil).HealthCheck)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
