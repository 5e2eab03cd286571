package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/middleware"
	"github.com/thereayou/campusnet/internal/models"
)

type notificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, requesterID uuid.UUID) (*models.Notification, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type NotificationHandler struct {
	notifications notificationService
	log           *slog.Logger
}

func NewNotificationHandler(notifications notificationService, log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, log: log}
}

// List уведомления текущего пользователя, новые первыми
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notifications, err := h.notifications.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead помечает уведомление прочитанным
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notifications.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		respondNotificationError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// Delete удаляет уведомление; клиенты узнают об этом из потока удалений
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), id, userID); err != nil {
		respondNotificationError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// currentUser достаёт пользователя из контекста; без него отвечает 401
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "kind": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": "validation"})
		return uuid.Nil, false
	}
	return id, true
}
