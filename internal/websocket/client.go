package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего кадра
	maxMessageSize = 64 * 1024
)

// ClientEventHandler обрабатывает входящие события клиента
type ClientEventHandler interface {
	HandleEvent(client *Client, env *Envelope) error
}

type Client struct {
	ID     uuid.UUID
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub

	rooms map[string]struct{}
	mu    sync.Mutex
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string, sendBuffer int) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		Hub:    hub,
		rooms:  make(map[string]struct{}),
	}
}

// ReadPump читает события от клиента до разрыва соединения
func (c *Client) ReadPump(handler ClientEventHandler) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warn("websocket read error", "client_id", c.ID, "error", err)
			}
			break
		}

		// Битый кадр не закрывает соединение
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.Hub.log.Debug("invalid frame", "client_id", c.ID, "error", err)
			c.SendError("", ErrInvalidMessage)
			continue
		}

		if err := handler.HandleEvent(c, &env); err != nil {
			c.Hub.log.Error("error handling event", "event", env.Event, "client_id", c.ID, "user_id", c.UserID, "error", err)
			c.SendError(env.Event, err)
		}
	}
}

// WritePump отправляет сообщения клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			// Отправляем все накопившиеся сообщения
			n := len(c.Send)
			for i := 0; i < n; i++ {
				queued, ok := <-c.Send
				if !ok {
					c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, queued); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ErrorPayload полезная нагрузка события error
type ErrorPayload struct {
	Event string `json:"event,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error"`
}

type kindedError interface {
	ErrorKind() string
}

// SendError сообщает клиенту об ошибке обработки его события
func (c *Client) SendError(event string, err error) {
	payload := ErrorPayload{Event: event, Error: err.Error()}
	var k kindedError
	if errors.As(err, &k) {
		payload.Kind = k.ErrorKind()
	}
	if sendErr := c.Hub.SendToClient(c, EventError, payload); sendErr != nil {
		c.Hub.log.Warn("failed to send error to client", "client_id", c.ID, "error", sendErr)
	}
}

// Rooms возвращает комнаты, в которых состоит соединение
func (c *Client) Rooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return lo.Keys(c.rooms)
}
