package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newCategoryHandler(ledger portssvc.LedgerSvcFacade) *categoryHandler {
	return &categoryHandler{ledgerService: ledger}
}

// listCategoriesParams defines query parameters for listing categories.
type listCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=EXPENSE INCOME"`
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newCategoryHandler(ledger)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.ledgerService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create category", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params listCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid category list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	categories, err := h.ledgerService.ListCategories(c.Request.Context(), params.Type)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("id")

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.ledgerService.UpdateCategory(c.Request.Context(), categoryID, req)
	if err != nil {
		logger.Warn("Failed to update category",
			slog.String("category_id", categoryID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory soft-deletes a category. Blocked with 409 while any active
// transaction still references it.
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID := c.Param("id")

	if err := h.ledgerService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		logger.Warn("Failed to delete category",
			slog.String("category_id", categoryID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
