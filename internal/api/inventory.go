package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/service"
	"github.com/pageza/freshkeep/backend/internal/types"
)

// InventoryHandler handles inventory-related requests
type InventoryHandler struct {
	inventory service.IInventoryService
	photos    *service.PhotoService
}

func NewInventoryHandler(inventory service.IInventoryService, photos *service.PhotoService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, photos: photos}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.POST("", h.Create)
		inventory.POST("/:id/use", h.MarkUsed)
		inventory.DELETE("/:id", h.Discard)
		inventory.POST("/:id/photo", h.PhotoUploadURL)
		inventory.GET("/:id/photo", h.PhotoDownloadURL)
	}
	router.GET("/dashboard", h.Dashboard)
	router.GET("/insights", h.Insights)
}

func (h *InventoryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.inventory.ListActive(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateInventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.inventory.Create(c.Request.Context(), userID, &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) MarkUsed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.inventory.MarkUsed(c.Request.Context(), userID, itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Discard soft-deletes an item by marking it wasted
func (h *InventoryHandler) Discard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.inventory.Discard(c.Request.Context(), userID, itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) PhotoUploadURL(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	// the body is optional
	var req types.PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperrors.Respond(c, apperrors.BadRequest(err.Error()))
		return
	}
	resp, err := h.photos.UploadURL(c.Request.Context(), userID, itemID, req.ContentType)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) PhotoDownloadURL(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.photos.DownloadURL(c.Request.Context(), userID, itemID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard returns the active count and soon-to-expire items
func (h *InventoryHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dash, err := h.inventory.Dashboard(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *InventoryHandler) Insights(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	insights, err := h.inventory.Insights(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
