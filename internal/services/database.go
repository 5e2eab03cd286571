package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
)

// UserStore поиск пользователей
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type MessageStore interface {
	SaveMessage(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error)
	GetLatestMessage(ctx context.Context, userID, otherID uuid.UUID) (*models.MessageView, error)
}

type NotificationStore interface {
	SaveNotification(ctx context.Context, notification *models.Notification) error
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int64, error)
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
}

type FriendStore interface {
	SaveFriendRequest(ctx context.Context, request *models.FriendRequest) error
	GetFriendRequest(ctx context.Context, id uuid.UUID) (*models.FriendRequest, error)
	FindPendingFriendRequest(ctx context.Context, fromID, toID uuid.UUID) (*models.FriendRequest, error)
	ListSentFriendRequests(ctx context.Context, fromID uuid.UUID) ([]models.FriendRequest, error)
	// AcceptFriendRequest помечает заявку принятой и связывает пользователей
	AcceptFriendRequest(ctx context.Context, request *models.FriendRequest) error
	UpdateFriendRequestStatus(ctx context.Context, id uuid.UUID, status models.FriendRequestStatus) error
	GetAcquaintances(ctx context.Context, userID uuid.UUID) ([]models.User, error)
}

// DeleteFeed поток удалений из коллекции уведомлений.
// Watch блокируется и вызывает onDelete для каждого удаления,
// пока подписка жива; возвращает ошибку при обрыве.
type DeleteFeed interface {
	Watch(ctx context.Context, onDelete func(notificationID uuid.UUID)) error
}
