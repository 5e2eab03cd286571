package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
)

// FriendService заявки в друзья; каждое изменение порождает уведомление
type FriendService struct {
	friends       FriendStore
	users         UserStore
	notifications *NotificationService
	now           func() time.Time
}

func NewFriendService(friends FriendStore, users UserStore, notifications *NotificationService) *FriendService {
	return &FriendService{
		friends:       friends,
		users:         users,
		notifications: notifications,
		now:           time.Now,
	}
}

// SendRequest создаёт заявку и уведомление friend_request для адресата
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID uuid.UUID) (*models.FriendRequest, error) {
	const op = "send friend request"

	if fromID == toID {
		return nil, newError(KindValidation, op, ErrSelfRequest)
	}

	if _, err := s.users.GetUser(ctx, toID); err != nil {
		return nil, storeError(op, err)
	}

	_, err := s.friends.FindPendingFriendRequest(ctx, fromID, toID)
	switch {
	case err == nil:
		return nil, newError(KindValidation, op, ErrDuplicateRequest)
	case !errors.Is(err, ErrNotFound):
		return nil, newError(KindCollaborator, op, err)
	}

	fromUser, err := s.users.GetUser(ctx, fromID)
	if err != nil {
		return nil, storeError(op, err)
	}

	request := &models.FriendRequest{
		FromID:    fromID,
		ToID:      toID,
		Status:    models.FriendRequestPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.friends.SaveFriendRequest(ctx, request); err != nil {
		return nil, newError(KindCollaborator, op, err)
	}

	_, err = s.notifications.Create(ctx, CreateNotificationInput{
		OwnerID:   toID,
		Type:      models.NotificationFriendRequest,
		Message:   fmt.Sprintf("%s sent you a friend request", fromUser.Name),
		RelatedID: request.ID.String(),
	})
	if err != nil {
		return request, err
	}

	return request, nil
}

// Accept принимает заявку; вызвать может только адресат
func (s *FriendService) Accept(ctx context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error) {
	const op = "accept friend request"

	request, toUser, err := s.pendingRequestFor(ctx, op, requestID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, request.FromID); err != nil {
		return nil, storeError(op, err)
	}

	if err := s.friends.AcceptFriendRequest(ctx, request); err != nil {
		return nil, storeError(op, err)
	}
	request.Status = models.FriendRequestAccepted

	_, err = s.notifications.Create(ctx, CreateNotificationInput{
		OwnerID:   request.FromID,
		Type:      models.NotificationFriendRequestAccepted,
		Message:   fmt.Sprintf("%s accepted your friend request", toUser.Name),
		RelatedID: request.ID.String(),
	})
	if err != nil {
		return request, err
	}

	return request, nil
}

// Decline отклоняет заявку; вызвать может только адресат
func (s *FriendService) Decline(ctx context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error) {
	const op = "decline friend request"

	request, toUser, err := s.pendingRequestFor(ctx, op, requestID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.friends.UpdateFriendRequestStatus(ctx, request.ID, models.FriendRequestDeclined); err != nil {
		return nil, storeError(op, err)
	}
	request.Status = models.FriendRequestDeclined

	_, err = s.notifications.Create(ctx, CreateNotificationInput{
		OwnerID:   request.FromID,
		Type:      models.NotificationFriendRequestDeclined,
		Message:   fmt.Sprintf("%s declined your friend request", toUser.Name),
		RelatedID: request.ID.String(),
	})
	if err != nil {
		return request, err
	}

	return request, nil
}

func (s *FriendService) ListSent(ctx context.Context, fromID uuid.UUID) ([]models.FriendRequest, error) {
	requests, err := s.friends.ListSentFriendRequests(ctx, fromID)
	if err != nil {
		return nil, newError(KindCollaborator, "list sent friend requests", err)
	}
	return requests, nil
}

func (s *FriendService) pendingRequestFor(ctx context.Context, op string, requestID, userID uuid.UUID) (*models.FriendRequest, *models.User, error) {
	request, err := s.friends.GetFriendRequest(ctx, requestID)
	if err != nil {
		return nil, nil, storeError(op, err)
	}

	if request.ToID != userID {
		return nil, nil, newError(KindUnauthorized, op, ErrNotRequestAddressee)
	}

	if request.Status != models.FriendRequestPending {
		return nil, nil, newError(KindValidation, op, ErrRequestNotPending)
	}

	toUser, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, storeError(op, err)
	}

	return request, toUser, nil
}
