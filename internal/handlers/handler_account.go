package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	statsService  portssvc.StatsSvcFacade
}

func newAccountHandler(ledger portssvc.LedgerSvcFacade, stats portssvc.StatsSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ledger, statsService: stats}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, stats portssvc.StatsSvcFacade) {
	h := newAccountHandler(ledger, stats)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/transactions", h.listAccountTransactions)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.DELETE("/:id/transactions", h.deleteAccountHistory)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts returns every active account with its derived balance plus the
// net worth across them.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balances, netWorth, err := h.statsService.AccountBalances(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalancesResponse(balances, netWorth))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	balances, _, err := h.statsService.AccountBalances(c.Request.Context())
	if err != nil {
		logger.Error("Failed to derive balances", slog.String("error", err.Error()))
		respondError(c, err, "Failed to retrieve account")
		return
	}

	for i := range balances {
		if balances[i].ID == accountID {
			c.JSON(http.StatusOK, dto.AccountBalanceResponse{
				AccountResponse: dto.ToAccountResponse(&balances[i].Account),
				Balance:         balances[i].Balance,
			})
			return
		}
	}

	logger.Warn("Account not found", slog.String("account_id", accountID))
	respondError(c, apperrors.ErrNotFound, "Account not found")
}

func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	txns, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), accountID)
	if err != nil {
		logger.Warn("Failed to list account transactions",
			slog.String("account_id", accountID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to list account transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		logger.Warn("Failed to update account",
			slog.String("account_id", accountID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount soft-deletes the account. When it still has transactions the
// caller must pass ?cascade=true, which trashes them in the same batch.
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")
	cascade := c.Query("cascade") == "true"

	if err := h.ledgerService.DeleteAccount(c.Request.Context(), accountID, cascade); err != nil {
		logger.Warn("Failed to delete account",
			slog.String("account_id", accountID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteAccountHistory trashes every active transaction touching the account
// without trashing the account. Requires explicit ?confirm=true.
func (h *accountHandler) deleteAccountHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if c.Query("confirm") != "true" {
		respondError(c, apperrors.ErrConfirmationRequired, "")
		return
	}

	if err := h.ledgerService.DeleteAccountHistory(c.Request.Context(), accountID); err != nil {
		logger.Warn("Failed to delete account history",
			slog.String("account_id", accountID), slog.String("error", err.Error()))
		respondError(c, err, "Failed to delete account history")
		return
	}

	c.Status(http.StatusNoContent)
}
