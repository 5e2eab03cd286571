package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Входящие события
const (
	EventJoin        = "join"
	EventSendMessage = "sendMessage"
	EventError       = "error"
)

// Envelope кадр протокола в обе стороны
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub реестр подключений и комнат. Комната адресуется идентификатором
// пользователя; в одной комнате может быть несколько соединений.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты в комнатах
	rooms map[string]map[uuid.UUID]*Client

	mu  sync.RWMutex
	log *slog.Logger

	statsInterval time.Duration
}

// NewHub создает новый Hub
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:       make(map[uuid.UUID]*Client),
		rooms:         make(map[string]map[uuid.UUID]*Client),
		log:           log,
		statsInterval: 30 * time.Second,
	}
}

// Name имя воркера для супервизора
func (h *Hub) Name() string {
	return "websocket-hub"
}

// Run держит hub до отмены контекста, затем закрывает все соединения
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case <-ticker.C:
			h.mu.RLock()
			clients, rooms := len(h.clients), len(h.rooms)
			h.mu.RUnlock()
			h.log.Debug("hub stats", "clients", clients, "rooms", rooms)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
		delete(h.clients, id)
	}
	h.rooms = make(map[string]map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	h.log.Info("client registered", "client_id", client.ID, "user_id", client.UserID)
}

// Unregister убирает клиента из всех комнат и закрывает очередь отправки
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	h.leaveAllUnsafe(client)
	delete(h.clients, client.ID)
	close(client.Send)

	h.log.Info("client unregistered", "client_id", client.ID, "user_id", client.UserID)
}

// Join добавляет соединение в комнату. Повторный вход ничего не меняет.
func (h *Hub) Join(client *Client, roomID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return ErrClientNotRegistered
	}

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[uuid.UUID]*Client)
	}
	h.rooms[roomID][client.ID] = client

	client.mu.Lock()
	client.rooms[roomID] = struct{}{}
	client.mu.Unlock()

	return nil
}

// Leave удаляет соединение из всех комнат, в которых оно состоит
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveAllUnsafe(client)
}

func (h *Hub) leaveAllUnsafe(client *Client) {
	client.mu.Lock()
	defer client.mu.Unlock()

	for roomID := range client.rooms {
		if room, ok := h.rooms[roomID]; ok {
			delete(room, client.ID)
			if len(room) == 0 {
				delete(h.rooms, roomID)
			}
		}
		delete(client.rooms, roomID)
	}
}

// Push отправляет событие всем соединениям комнаты. Пустая комната не ошибка.
func (h *Hub) Push(roomID string, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.log.Error("encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		h.enqueue(client, data)
	}
}

// Broadcast отправляет событие всем подключенным клиентам
func (h *Hub) Broadcast(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.log.Error("encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.enqueue(client, data)
	}
}

// SendToClient отправляет событие одному соединению
func (h *Hub) SendToClient(client *Client, event string, payload any) error {
	data, err := encode(event, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[client.ID]; !ok {
		return ErrClientNotRegistered
	}
	if !h.enqueue(client, data) {
		return ErrClientQueueFull
	}
	return nil
}

func (h *Hub) enqueue(client *Client, data []byte) bool {
	select {
	case client.Send <- data:
		return true
	default:
		h.log.Warn("client send channel full, dropping event", "client_id", client.ID, "user_id", client.UserID)
		return false
	}
}

// ConnectedClients количество активных соединений
func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize количество соединений в комнате
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func encode(event string, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}
