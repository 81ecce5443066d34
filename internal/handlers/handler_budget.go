package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	budgetTracker portssvc.BudgetTrackerSvcFacade
}

func newBudgetHandler(ledger portssvc.LedgerSvcFacade, tracker portssvc.BudgetTrackerSvcFacade) *budgetHandler {
	return &budgetHandler{ledgerService: ledger, budgetTracker: tracker}
}

// monthParams defines the shared reference-month query parameter.
type monthParams struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// refMonth resolves the reference month, defaulting to the current month.
func (p monthParams) refMonth() time.Time {
	if p.Month == "" {
		return time.Now()
	}
	month, _ := time.Parse("2006-01", p.Month)
	return month
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, tracker portssvc.BudgetTrackerSvcFacade) {
	h := newBudgetHandler(ledger, tracker)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
	}
}

func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.ledgerService.CreateBudget(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to create budget", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// listBudgets returns every active budget enriched with its consumption for
// the requested month.
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params monthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid budget list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	statuses, err := h.budgetTracker.BudgetStatuses(c.Request.Context(), params.refMonth())
	if err != nil {
		logger.Error("Failed to list budgets", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list budgets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBudgetStatusResponse(statuses))
}

func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.ledgerService.UpdateBudget(c.Request.Context(), budgetID, req)
	if err != nil {
		logger.Warn("Failed to update budget",
			slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	if err := h.ledgerService.DeleteBudget(c.Request.Context(), budgetID); err != nil {
		logger.Warn("Failed to delete budget",
			slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to delete budget")
		return
	}

	c.Status(http.StatusNoContent)
}
