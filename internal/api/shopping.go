package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/service"
	"github.com/pageza/freshkeep/backend/internal/types"
)

// ShoppingHandler handles shopping list requests
type ShoppingHandler struct {
	shopping service.IShoppingService
}

func NewShoppingHandler(shopping service.IShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping}
}

// RegisterRoutes registers the shopping list routes
func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	shopping := router.Group("/shopping")
	{
		shopping.GET("", h.List)
		shopping.POST("", h.Add)
		shopping.DELETE("/purchased", h.ClearPurchased)
		shopping.PATCH("/:id/toggle", h.Toggle)
		shopping.DELETE("/:id", h.Delete)
	}
}

func (h *ShoppingHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.shopping.List(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ShoppingHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateShoppingItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.shopping.Add(c.Request.Context(), userID, &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.shopping.Toggle(c.Request.Context(), userID, itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.shopping.Delete(c.Request.Context(), userID, itemID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingHandler) ClearPurchased(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	deleted, err := h.shopping.ClearPurchased(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
