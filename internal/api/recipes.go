package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/service"
	"github.com/pageza/freshkeep/backend/internal/types"
)

// maxSuggestionBody caps a suggestion request: 50 entries of 100
// characters fit comfortably
const maxSuggestionBody = 64 << 10

// RecipeHandler serves recipe suggestions, both the public function
// endpoint and the authenticated inventory-based variant
type RecipeHandler struct {
	suggestions service.ISuggestionService
	inventory   service.IInventoryService
	log         *zap.Logger
}

func NewRecipeHandler(suggestions service.ISuggestionService, inventory service.IInventoryService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		suggestions: suggestions,
		inventory:   inventory,
		log:         log,
	}
}

// RegisterFunctionRoutes registers the public get-recipes function. CORS
// and preflight handling come from the group's middleware.
func (h *RecipeHandler) RegisterFunctionRoutes(router *gin.RouterGroup) {
	router.POST("/get-recipes", h.GetRecipes)
	router.OPTIONS("/get-recipes", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// RegisterRoutes registers the authenticated recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/suggestions", h.SuggestFromInventory)
}

// GetRecipes validates the posted ingredient list and returns suggestions.
// Only input errors are reported; gateway trouble yields {"recipes": []}.
func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSuggestionBody))
	if err != nil {
		h.log.Warn("Failed to read suggestion request body", zap.Error(err))
		c.JSON(http.StatusOK, types.EmptyRecipeResponse())
		return
	}

	resp, err := h.suggestions.SuggestFromBody(c.Request.Context(), body)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SuggestFromInventory suggests recipes from the caller's active items
func (h *RecipeHandler) SuggestFromInventory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	names, err := h.inventory.ActiveNames(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	resp, err := h.suggestions.SuggestFromNames(c.Request.Context(), names)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
