package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
)

func (d *Database) SaveNotification(ctx context.Context, notification *models.Notification) error {
	return d.db.WithContext(ctx).Create(notification).Error
}

func (d *Database) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := d.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &notification, nil
}

func (d *Database) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	res := d.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (d *Database) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ListNotifications уведомления пользователя, новые первыми
func (d *Database) ListNotifications(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (d *Database) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	res := d.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

// DeleteExpiredNotifications удаляет уведомления с истёкшим сроком жизни:
// непрочитанные старше 7 дней и прочитанные старше суток.
func (d *Database) DeleteExpiredNotifications(ctx context.Context, now time.Time) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("(read = ? AND created_at <= ?) OR (read = ? AND created_at <= ?)",
			false, now.Add(-models.NotificationTTL(false)),
			true, now.Add(-models.NotificationTTL(true)),
		).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
