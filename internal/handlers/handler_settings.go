package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// settingsHandler handles HTTP requests for application settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(settings portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: settings}
}

// formatParams defines query parameters for the amount formatter.
type formatParams struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
}

// registerSettingsRoutes registers routes for application settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settings portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settings)

	settingsGroup := rg.Group("/settings")
	{
		settingsGroup.GET("", h.getSettings)
		settingsGroup.PUT("", h.updateSettings)
		settingsGroup.GET("/currencies", h.listCurrencies)
		settingsGroup.GET("/format", h.formatAmount)
	}
}

func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get settings", slog.String("error", err.Error()))
		respondError(c, err, "Failed to get settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to update settings", slog.String("error", err.Error()))
		respondError(c, err, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

func (h *settingsHandler) listCurrencies(c *gin.Context) {
	currencies := h.settingsService.ListCurrencies(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// formatAmount renders an amount with the configured currency, or the
// masking string while hide-values is on.
func (h *settingsHandler) formatAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params formatParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid format query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	formatted, err := h.settingsService.FormatAmount(c.Request.Context(), params.Amount)
	if err != nil {
		logger.Error("Failed to format amount", slog.String("error", err.Error()))
		respondError(c, err, "Failed to format amount")
		return
	}

	c.JSON(http.StatusOK, dto.FormatAmountResponse{Formatted: formatted})
}
