package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/thereayou/campusnet/internal/handlers/dto"
	"github.com/thereayou/campusnet/internal/services"
)

type messageReader interface {
	History(ctx context.Context, userID, otherID uuid.UUID) ([]services.HistoryItem, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]services.Conversation, error)
}

type MessageHandler struct {
	messages messageReader
	log      *slog.Logger
}

func NewMessageHandler(messages messageReader, log *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

// History переписка с пользователем :userId по возрастанию времени
func (h *MessageHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	otherID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	items, err := h.messages.History(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": lo.Map(items, dto.NewHistoryMessage)})
}

// Conversations знакомые с последним сообщением
func (h *MessageHandler) Conversations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	conversations, err := h.messages.Conversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": lo.Map(conversations, dto.NewConversationResponse)})
}
