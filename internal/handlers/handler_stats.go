package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// statsHandler handles HTTP requests for derived statistics.
type statsHandler struct {
	statsService portssvc.StatsSvcFacade
}

func newStatsHandler(stats portssvc.StatsSvcFacade) *statsHandler {
	return &statsHandler{statsService: stats}
}

// trendParams defines query parameters for the trend series.
type trendParams struct {
	monthParams
	Months int `form:"months,default=6" binding:"omitempty,min=1,max=24"`
}

// registerStatsRoutes registers routes for derived statistics.
func registerStatsRoutes(rg *gin.RouterGroup, stats portssvc.StatsSvcFacade) {
	h := newStatsHandler(stats)

	statsGroup := rg.Group("/stats")
	{
		statsGroup.GET("/summary", h.getSummary)
		statsGroup.GET("/trend", h.getTrend)
		statsGroup.GET("/categories", h.getExpenseByCategory)
	}
}

func (h *statsHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params monthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	summary, err := h.statsService.Summary(c.Request.Context(), params.refMonth())
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

func (h *statsHandler) getTrend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params trendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid trend query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	points, err := h.statsService.Trend(c.Request.Context(), params.refMonth(), params.Months)
	if err != nil {
		logger.Error("Failed to compute trend", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute trend")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTrendPointResponse(points))
}

func (h *statsHandler) getExpenseByCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params monthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid category stats query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	expenses, err := h.statsService.ExpenseByCategory(c.Request.Context(), params.refMonth())
	if err != nil {
		logger.Error("Failed to compute expense by category", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute expense by category")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryExpenseResponse(expenses))
}
