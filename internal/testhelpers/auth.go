package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/freshkeep/backend/internal/types"
)

const TestJWTSecret = "test-jwt-secret"

// GenerateTestToken signs an access token for userID the way the hosted
// auth platform does
func GenerateTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return SignToken(t, TestJWTSecret, userID, time.Hour)
}

// SignToken signs an HS256 token with the given secret and lifetime.
// A negative ttl yields an expired token.
func SignToken(t *testing.T, secret string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: "cook@example.com",
		Role:  "authenticated",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
