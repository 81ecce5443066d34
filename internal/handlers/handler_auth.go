package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
	"github.com/kwanzacontrol/kc_backend/internal/platform/config"
)

// authHandler handles the single-user login flow.
type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := newAuthHandler(cfg)

	auth := r.Group("/api/v1/auth")
	if limiterInstance, err := newLoginLimiter(cfg.LoginRateLimit); err == nil {
		auth.Use(middleware.RateLimit(limiterInstance))
	} else {
		slog.Warn("Invalid login rate limit, login endpoint is unthrottled",
			slog.String("rate", cfg.LoginRateLimit), slog.String("error", err.Error()))
	}
	auth.POST("/login", h.login)
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AuthUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(h.cfg.AuthPasswordHash, []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		logger.Warn("Login failed", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.cfg.JWTExpiryDuration)
	claims := jwt.RegisteredClaims{
		Subject:   h.cfg.AuthUsername,
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("Login succeeded", slog.String("username", req.Username))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: signed, ExpiresAt: expiresAt})
}
