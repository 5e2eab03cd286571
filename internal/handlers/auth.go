package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/campusnet/internal/middleware"
	"github.com/thereayou/campusnet/pkg/auth"
)

// TokenRevoker кладёт токен в черный список до момента until
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, until time.Time) error
}

type AuthHandler struct {
	jwtManager *auth.JWTManager
	revoker    TokenRevoker
	log        *slog.Logger
}

func NewAuthHandler(jwtMgr *auth.JWTManager, revoker TokenRevoker, log *slog.Logger) *AuthHandler {
	return &AuthHandler{jwtManager: jwtMgr, revoker: revoker, log: log}
}

// Logout ставит токен в черный список до его истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken := c.GetString(middleware.TokenKey)
	if rawToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token", "kind": "unauthorized"})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "kind": "unauthorized"})
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), rawToken, exp); err != nil {
		h.log.Error("token revoke failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "collaborator"})
		return
	}

	c.Status(http.StatusOK)
}
