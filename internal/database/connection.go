package database

import (
	"errors"
	"fmt"

	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Канал LISTEN/NOTIFY, в который триггер пишет id удалённых уведомлений
const notificationDeletedChannel = "notification_deleted"

var notificationDeleteTrigger = []string{
	`CREATE OR REPLACE FUNCTION notify_notification_deleted() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + notificationDeletedChannel + `', OLD.id::text);
	RETURN OLD;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS notifications_deleted ON notifications`,
	`CREATE TRIGGER notifications_deleted AFTER DELETE ON notifications
	FOR EACH ROW EXECUTE FUNCTION notify_notification_deleted()`,
}

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	d.db = db

	return nil
}

// Migrate создаёт таблицы и триггер потока удалений уведомлений
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Message{}, &models.Notification{}, &models.FriendRequest{})
	if err != nil {
		return err
	}

	for _, stmt := range notificationDeleteTrigger {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install notification delete trigger: %w", err)
		}
	}

	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// notFound переводит gorm.ErrRecordNotFound в ошибку контракта хранилищ
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}
