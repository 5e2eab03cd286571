package database

import (
	"context"
	"log/slog"
	"time"
)

type expiredNotificationDeleter interface {
	DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error)
}

// ExpirySweeper фоновое удаление уведомлений с истёкшим TTL.
// Удаления проходят через триггер и попадают в поток изменений.
type ExpirySweeper struct {
	store    expiredNotificationDeleter
	interval time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewExpirySweeper(store expiredNotificationDeleter, interval time.Duration, log *slog.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		store:    store,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Name имя воркера для супервизора
func (s *ExpirySweeper) Name() string {
	return "notification-expiry-sweeper"
}

func (s *ExpirySweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Sweep(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Sweep выполняет один проход и возвращает число удалённых уведомлений
func (s *ExpirySweeper) Sweep(ctx context.Context) int64 {
	deleted, err := s.store.DeleteExpiredNotifications(ctx, s.now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error("notification expiry sweep failed", "error", err)
		}
		return 0
	}
	if deleted > 0 {
		s.log.Info("expired notifications deleted", "count", deleted)
	}
	return deleted
}
