package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type pushed struct {
	room    string
	event   string
	payload any
}

type fakeDelivery struct {
	mu         sync.Mutex
	pushes     []pushed
	broadcasts []pushed
}

func (d *fakeDelivery) Push(roomID string, event string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushes = append(d.pushes, pushed{room: roomID, event: event, payload: payload})
}

func (d *fakeDelivery) Broadcast(event string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.broadcasts = append(d.broadcasts, pushed{event: event, payload: payload})
}

func (d *fakeDelivery) pushesTo(room, event string) []pushed {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []pushed
	for _, p := range d.pushes {
		if p.room == room && p.event == event {
			out = append(out, p)
		}
	}
	return out
}

type fakeStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*models.User
	messages      []models.Message
	notifications map[uuid.UUID]*models.Notification
	requests      map[uuid.UUID]*models.FriendRequest
	acquaintances map[uuid.UUID][]uuid.UUID

	saveMessageErr error
	getUserErr     error
	markReadCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*models.User),
		notifications: make(map[uuid.UUID]*models.Notification),
		requests:      make(map[uuid.UUID]*models.FriendRequest),
		acquaintances: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *fakeStore) addUser(name string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: uuid.New(), Name: name, Email: name + "@example.com"}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getUserErr != nil {
		return nil, s.getUserErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) SaveMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveMessageErr != nil {
		return s.saveMessageErr
	}
	message.ID = uuid.New()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *fakeStore) GetConversation(_ context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) GetLatestMessage(ctx context.Context, userID, otherID uuid.UUID) (*models.MessageView, error) {
	conversation, _ := s.GetConversation(ctx, userID, otherID)
	if len(conversation) == 0 {
		return nil, ErrNotFound
	}
	latest := conversation[len(conversation)-1]
	s.mu.Lock()
	defer s.mu.Unlock()
	view := &models.MessageView{Message: latest}
	if u, ok := s.users[latest.SenderID]; ok {
		view.SenderName = u.Name
	}
	if u, ok := s.users[latest.ReceiverID]; ok {
		view.ReceiverName = u.Name
	}
	return view, nil
}

func (s *fakeStore) SaveNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = uuid.New()
	cp := *notification
	s.notifications[cp.ID] = &cp
	return nil
}

func (s *fakeStore) GetNotification(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *fakeStore) MarkNotificationRead(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markReadCalls++
	n, ok := s.notifications[id]
	if !ok {
		return ErrNotFound
	}
	n.Read = true
	return nil
}

func (s *fakeStore) CountUnreadNotifications(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) ListNotifications(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) DeleteNotification(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[id]; !ok {
		return ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

func (s *fakeStore) notificationsOf(userID uuid.UUID) []models.Notification {
	list, _ := s.ListNotifications(context.Background(), userID)
	return list
}

func (s *fakeStore) SaveFriendRequest(_ context.Context, request *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request.ID = uuid.New()
	cp := *request
	s.requests[cp.ID] = &cp
	return nil
}

func (s *fakeStore) GetFriendRequest(_ context.Context, id uuid.UUID) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) FindPendingFriendRequest(_ context.Context, fromID, toID uuid.UUID) (*models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.FromID == fromID && r.ToID == toID && r.Status == models.FriendRequestPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ListSentFriendRequests(_ context.Context, fromID uuid.UUID) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.FriendRequest
	for _, r := range s.requests {
		if r.FromID == fromID && r.Status == models.FriendRequestPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) AcceptFriendRequest(_ context.Context, request *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[request.ID]
	if !ok {
		return ErrNotFound
	}
	r.Status = models.FriendRequestAccepted
	s.acquaintances[r.FromID] = append(s.acquaintances[r.FromID], r.ToID)
	s.acquaintances[r.ToID] = append(s.acquaintances[r.ToID], r.FromID)
	return nil
}

func (s *fakeStore) UpdateFriendRequestStatus(_ context.Context, id uuid.UUID, status models.FriendRequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	return nil
}

func (s *fakeStore) GetAcquaintances(_ context.Context, userID uuid.UUID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, id := range s.acquaintances[userID] {
		out = append(out, *s.users[id])
	}
	return out, nil
}

var errStoreDown = errors.New("connection refused")
