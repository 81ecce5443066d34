package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// exportHandler handles HTTP requests for data export.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(export portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: export}
}

// registerExportRoutes registers routes for data export.
func registerExportRoutes(rg *gin.RouterGroup, export portssvc.ExportSvcFacade) {
	h := newExportHandler(export)

	rg.GET("/export/transactions.csv", h.exportTransactions)
}

func (h *exportHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	csv, err := h.exportService.TransactionsCSV(c.Request.Context())
	if err != nil {
		logger.Warn("Failed to export transactions", slog.String("error", err.Error()))
		respondError(c, err, "Failed to export transactions")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}
