package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/thereayou/campusnet/internal/handlers/dto"
	"github.com/thereayou/campusnet/internal/models"
)

type friendService interface {
	SendRequest(ctx context.Context, fromID, toID uuid.UUID) (*models.FriendRequest, error)
	Accept(ctx context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error)
	Decline(ctx context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error)
	ListSent(ctx context.Context, fromID uuid.UUID) ([]models.FriendRequest, error)
}

type FriendHandler struct {
	friends friendService
	log     *slog.Logger
}

func NewFriendHandler(friends friendService, log *slog.Logger) *FriendHandler {
	return &FriendHandler{friends: friends, log: log}
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	toID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	req, err := h.friends.SendRequest(c.Request.Context(), userID, toID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewFriendRequestResponse(*req, 0))
}

func (h *FriendHandler) Accept(c *gin.Context) {
	h.respond(c, h.friends.Accept)
}

func (h *FriendHandler) Decline(c *gin.Context) {
	h.respond(c, h.friends.Decline)
}

// respond общий путь accept/decline: запрос :id решает только адресат
func (h *FriendHandler) respond(c *gin.Context, decide func(ctx context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	req, err := decide(c.Request.Context(), requestID, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFriendRequestResponse(*req, 0))
}

// ListSent ожидающие ответа заявки текущего пользователя
func (h *FriendHandler) ListSent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	requests, err := h.friends.ListSent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": lo.Map(requests, dto.NewFriendRequestResponse)})
}
