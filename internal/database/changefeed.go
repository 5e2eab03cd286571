package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DeleteFeed подписка на удаления уведомлений через LISTEN/NOTIFY.
// Каждая подписка держит отдельное соединение pgx.
type DeleteFeed struct {
	dsn string
	log *slog.Logger
}

func NewDeleteFeed(dsn string, log *slog.Logger) *DeleteFeed {
	return &DeleteFeed{dsn: dsn, log: log}
}

// Watch блокируется до отмены контекста или обрыва соединения.
// Удаления, случившиеся между подписками, не доставляются.
func (f *DeleteFeed) Watch(ctx context.Context, onDelete func(notificationID uuid.UUID)) error {
	conn, err := pgx.Connect(ctx, f.dsn)
	if err != nil {
		return fmt.Errorf("connect change feed: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+notificationDeletedChannel); err != nil {
		return fmt.Errorf("listen %s: %w", notificationDeletedChannel, err)
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		id, err := uuid.Parse(notification.Payload)
		if err != nil {
			f.log.Warn("malformed change feed payload", "payload", notification.Payload, "error", err)
			continue
		}

		onDelete(id)
	}
}
