package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	ws "github.com/thereayou/campusnet/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub        *ws.Hub
	events     ws.ClientEventHandler
	upgrader   websocket.Upgrader
	sendBuffer int
	log        *slog.Logger
}

// NewWebSocketHandler создает новый WebSocket handler.
// Пустой allowedOrigin пропускает любой Origin.
func NewWebSocketHandler(hub *ws.Hub, events ws.ClientEventHandler, allowedOrigin string, sendBuffer int, log *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		events:     events,
		sendBuffer: sendBuffer,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigin),
		},
	}
}

func checkOrigin(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if allowed == "" {
			return true
		}
		return r.Header.Get("Origin") == allowed
	}
}

// HandleWebSocket обрабатывает WebSocket соединения
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn, userID.String(), h.sendBuffer)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.events)
}
