package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/campusnet/pkg/auth"
)

const (
	UserIDKey = "userID"
	TokenKey  = "token"
)

// RevocationChecker черный список токенов
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type tokenExtractor func(r *http.Request) (string, error)

// AuthMiddleware проверяет JWT токен из заголовка Authorization
func AuthMiddleware(jwtManager *auth.JWTManager, blacklist RevocationChecker) gin.HandlerFunc {
	return authenticate(jwtManager, blacklist, auth.ExtractTokenFromHeader)
}

// WSAuthMiddleware то же для WebSocket, токен можно передать в ?token=
func WSAuthMiddleware(jwtManager *auth.JWTManager, blacklist RevocationChecker) gin.HandlerFunc {
	return authenticate(jwtManager, blacklist, auth.ExtractToken)
}

func authenticate(jwtManager *auth.JWTManager, blacklist RevocationChecker, extract tokenExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extract(c.Request)
		if err != nil {
			abort(c, "missing or invalid token")
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), token)
		if err != nil || revoked {
			abort(c, "token is blacklisted")
			return
		}

		userID, _, err := jwtManager.Authenticate(token)
		if err != nil {
			abort(c, "invalid token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Next()
	}
}

func abort(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "kind": "unauthorized"})
}

var errNoUser = errors.New("user id is not set in context")

// CurrentUser идентификатор пользователя, положенный AuthMiddleware
func CurrentUser(c *gin.Context) (uuid.UUID, error) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, errNoUser
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errNoUser
	}
	return id, nil
}
