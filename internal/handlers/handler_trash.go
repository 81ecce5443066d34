package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// trashHandler handles HTTP requests for the soft-delete lifecycle.
type trashHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTrashHandler(ledger portssvc.LedgerSvcFacade) *trashHandler {
	return &trashHandler{ledgerService: ledger}
}

// registerTrashRoutes registers routes for trash inspection, restore and purge.
func registerTrashRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := newTrashHandler(ledger)

	trash := rg.Group("/trash")
	{
		trash.GET("", h.listTrash)
		trash.POST("/:kind/:id/restore", h.restore)
		trash.DELETE("/:kind/:id", h.purgeItem)
		trash.DELETE("", h.emptyTrash)
	}
}

func (h *trashHandler) listTrash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, txns, budgets, err := h.ledgerService.TrashedItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list trash", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list trash")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrashResponse(accounts, txns, budgets))
}

func (h *trashHandler) restore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, ok := domain.ParseEntityKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity kind: " + c.Param("kind")})
		return
	}
	id := c.Param("id")

	if err := h.ledgerService.Restore(c.Request.Context(), kind, id); err != nil {
		logger.Warn("Failed to restore record",
			slog.String("kind", string(kind)), slog.String("id", id),
			slog.String("error", err.Error()))
		respondError(c, err, "Failed to restore record")
		return
	}

	c.Status(http.StatusNoContent)
}

// purgeItem permanently removes one trashed record. Requires ?confirm=true.
func (h *trashHandler) purgeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, ok := domain.ParseEntityKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity kind: " + c.Param("kind")})
		return
	}
	id := c.Param("id")

	if c.Query("confirm") != "true" {
		respondError(c, apperrors.ErrConfirmationRequired, "")
		return
	}

	if err := h.ledgerService.PurgeItem(c.Request.Context(), kind, id); err != nil {
		logger.Warn("Failed to purge record",
			slog.String("kind", string(kind)), slog.String("id", id),
			slog.String("error", err.Error()))
		respondError(c, err, "Failed to purge record")
		return
	}

	c.Status(http.StatusNoContent)
}

// emptyTrash permanently removes every trashed account, transaction and
// budget. Requires ?confirm=true. Categories are never part of the bulk purge.
func (h *trashHandler) emptyTrash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if c.Query("confirm") != "true" {
		respondError(c, apperrors.ErrConfirmationRequired, "")
		return
	}

	if err := h.ledgerService.EmptyTrash(c.Request.Context()); err != nil {
		logger.Error("Failed to empty trash", slog.String("error", err.Error()))
		respondError(c, err, "Failed to empty trash")
		return
	}

	c.Status(http.StatusNoContent)
}
