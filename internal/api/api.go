package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/middleware"
)

// currentUser returns the caller's id, responding 401 when the auth
// middleware did not run
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.Unauthorized("user not authenticated"))
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id route parameter
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.BadRequest("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes and validates the request body into req
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.Respond(c, apperrors.BadRequest(err.Error()))
		return false
	}
	return true
}
