package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ChangeFeedBridge транслирует удаления уведомлений всем подключённым клиентам.
// Run живёт одну подписку; перезапуск после обрыва выполняет супервизор.
type ChangeFeedBridge struct {
	feed     DeleteFeed
	delivery Deliverer
	log      *slog.Logger
}

func NewChangeFeedBridge(feed DeleteFeed, delivery Deliverer, log *slog.Logger) *ChangeFeedBridge {
	return &ChangeFeedBridge{feed: feed, delivery: delivery, log: log}
}

// Name имя воркера для супервизора
func (b *ChangeFeedBridge) Name() string {
	return "notification-change-feed"
}

func (b *ChangeFeedBridge) Run(ctx context.Context) error {
	b.log.Info("subscribing to notification deletes")

	err := b.feed.Watch(ctx, func(notificationID uuid.UUID) {
		b.delivery.Broadcast(EventNotificationDeleted, NotificationRef{
			NotificationID: notificationID.String(),
		})
	})

	if ctx.Err() != nil {
		return nil
	}
	if err == nil {
		err = ErrFeedSubscriptionEnded
	}
	return newError(KindCollaborator, "watch notification deletes", err)
}
