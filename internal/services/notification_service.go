package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
)

type CreateNotificationInput struct {
	OwnerID   uuid.UUID               `validate:"required"`
	Type      models.NotificationType `validate:"required,oneof=new_message friend_request friend_request_accepted friend_request_declined"`
	Message   string                  `validate:"required,max=500"`
	RelatedID string                  `validate:"max=64"`
}

// NotificationService создание уведомлений и управление статусом прочтения.
// Истечение срока жизни выполняет хранилище, а не этот сервис.
type NotificationService struct {
	store    NotificationStore
	delivery Deliverer
	log      *slog.Logger
	now      func() time.Time
}

func NewNotificationService(store NotificationStore, delivery Deliverer, log *slog.Logger) *NotificationService {
	return &NotificationService{
		store:    store,
		delivery: delivery,
		log:      log,
		now:      time.Now,
	}
}

// Create сохраняет уведомление и отправляет newNotification в комнату владельца
func (s *NotificationService) Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error) {
	const op = "create notification"

	if err := validate.Struct(in); err != nil {
		return nil, newError(KindValidation, op, err)
	}

	notification := &models.Notification{
		UserID:    in.OwnerID,
		Type:      in.Type,
		Message:   in.Message,
		RelatedID: in.RelatedID,
		Read:      false,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.SaveNotification(ctx, notification); err != nil {
		return nil, newError(KindCollaborator, op, err)
	}

	s.delivery.Push(notification.UserID.String(), EventNewNotification, notification)

	return notification, nil
}

// MarkRead помечает уведомление прочитанным. Повторный вызов не ошибка:
// статус остаётся read=true, событие notificationRead отправляется снова.
func (s *NotificationService) MarkRead(ctx context.Context, id, requesterID uuid.UUID) (*models.Notification, error) {
	const op = "mark notification read"

	notification, err := s.store.GetNotification(ctx, id)
	if err != nil {
		return nil, storeError(op, err)
	}

	if notification.UserID != requesterID {
		return nil, newError(KindUnauthorized, op, ErrNotOwner)
	}

	if !notification.Read {
		if err := s.store.MarkNotificationRead(ctx, id); err != nil {
			return nil, storeError(op, err)
		}
		notification.Read = true
	}

	s.delivery.Push(notification.UserID.String(), EventNotificationRead, NotificationRef{
		NotificationID: notification.ID.String(),
	})

	return notification, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, newError(KindCollaborator, "count unread notifications", err)
	}
	return count, nil
}

// List возвращает уведомления пользователя, новые первыми
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	notifications, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, newError(KindCollaborator, "list notifications", err)
	}
	return notifications, nil
}

// Delete удаляет уведомление владельца. Клиенты узнают об удалении
// только через поток изменений.
func (s *NotificationService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	const op = "delete notification"

	notification, err := s.store.GetNotification(ctx, id)
	if err != nil {
		return storeError(op, err)
	}

	if notification.UserID != requesterID {
		return newError(KindUnauthorized, op, ErrNotOwner)
	}

	if err := s.store.DeleteNotification(ctx, id); err != nil {
		return storeError(op, err)
	}

	s.log.Info("notification deleted", "notification_id", id, "user_id", requesterID)
	return nil
}
