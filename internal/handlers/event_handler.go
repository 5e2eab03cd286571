package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
	"github.com/thereayou/campusnet/internal/websocket"
)

// Таймаут обработки одного входящего события
const eventTimeout = 10 * time.Second

var errForeignIdentity = errors.New("event user does not match the authenticated user")

type messageSender interface {
	SendMessage(ctx context.Context, in services.SendMessageInput) (*models.Message, error)
}

// EventHandler обрабатывает входящие события WebSocket
type EventHandler struct {
	hub      *websocket.Hub
	messages messageSender
}

func NewEventHandler(hub *websocket.Hub, messages messageSender) *EventHandler {
	return &EventHandler{hub: hub, messages: messages}
}

func (h *EventHandler) HandleEvent(client *websocket.Client, env *websocket.Envelope) error {
	switch env.Event {
	case websocket.EventJoin:
		return h.handleJoin(client, env.Data)
	case websocket.EventSendMessage:
		return h.handleSendMessage(client, env.Data)
	default:
		return fmt.Errorf("%w: %q", websocket.ErrUnknownEvent, env.Event)
	}
}

// handleJoin: data строка с id пользователя; войти можно только в свою комнату
func (h *EventHandler) handleJoin(client *websocket.Client, data json.RawMessage) error {
	const op = "join"
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil || userID == "" {
		return &services.Error{Kind: services.KindValidation, Op: op, Err: websocket.ErrInvalidMessage}
	}
	if userID != client.UserID {
		return &services.Error{Kind: services.KindUnauthorized, Op: op, Err: errForeignIdentity}
	}
	return h.hub.Join(client, userID)
}

func (h *EventHandler) handleSendMessage(client *websocket.Client, data json.RawMessage) error {
	const op = "send message"
	var in services.SendMessageInput
	if err := json.Unmarshal(data, &in); err != nil {
		return &services.Error{Kind: services.KindValidation, Op: op, Err: websocket.ErrInvalidMessage}
	}
	if in.SenderID != client.UserID {
		return &services.Error{Kind: services.KindUnauthorized, Op: op, Err: errForeignIdentity}
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	_, err := h.messages.SendMessage(ctx, in)
	return err
}
