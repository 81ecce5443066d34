package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
	"github.com/kwanzacontrol/kc_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerAuthRoutes(r, cfg)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Ledger, services.Stats)
	registerTransactionRoutes(v1, services.Ledger)
	registerCategoryRoutes(v1, services.Ledger)
	registerBudgetRoutes(v1, services.Ledger, services.Budget)
	registerStatsRoutes(v1, services.Stats)
	registerTrashRoutes(v1, services.Ledger)
	registerExportRoutes(v1, services.Export)
	registerSettingsRoutes(v1, services.Settings)
}

// registerCustomValidators extends the binding validator with the query
// formats shared across handlers.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// month validates a YYYY-MM reference month string.
	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01", fl.Field().String())
		return err == nil
	})
}

// newLoginLimiter builds an in-memory per-IP limiter from the configured
// rate, e.g. "10-M" for ten requests per minute.
func newLoginLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(limitermemory.NewStore(), rate), nil
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrNothingToExport):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConfirmationRequired):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrCategoryInUse),
		errors.Is(err, apperrors.ErrCascadeRequired):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error with its mapped status. Internal errors are
// not echoed to the client.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = fallback
	}
	c.JSON(status, gin.H{"error": msg})
}
