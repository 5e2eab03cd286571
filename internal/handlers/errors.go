package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/campusnet/internal/services"
)

var errNotificationNotFound = errors.New("notification not found")

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError отдаёт ошибку сервиса как {"error", "kind"}.
// Ошибки хранилища наружу не раскрываются.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	kind := services.KindOf(err)
	msg := err.Error()
	if kind == services.KindCollaborator {
		log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		msg = "internal error"
	}
	c.JSON(statusFor(kind), gin.H{"error": msg, "kind": kind})
}

// respondNotificationError не различает чужое и несуществующее уведомление
func respondNotificationError(c *gin.Context, log *slog.Logger, err error) {
	switch services.KindOf(err) {
	case services.KindNotFound, services.KindUnauthorized:
		c.JSON(http.StatusNotFound, gin.H{"error": errNotificationNotFound.Error(), "kind": services.KindNotFound})
	default:
		respondError(c, log, err)
	}
}
