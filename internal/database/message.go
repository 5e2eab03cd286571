package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
	"gorm.io/gorm"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.Message) error {
	return d.db.WithContext(ctx).Create(message).Error
}

// GetConversation переписка двух пользователей, старые сообщения первыми
func (d *Database) GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	err := conversation(d.db.WithContext(ctx), "messages", userID, otherID).
		Order("created_at ASC").
		Find(&messages).Error

	return messages, err
}

// GetLatestMessage последнее сообщение переписки вместе с именами участников
func (d *Database) GetLatestMessage(ctx context.Context, userID, otherID uuid.UUID) (*models.MessageView, error) {
	var view models.MessageView

	query := d.db.WithContext(ctx).
		Table("messages").
		Select("messages.*, sender.name AS sender_name, receiver.name AS receiver_name").
		Joins("JOIN users sender ON sender.id = messages.sender_id").
		Joins("JOIN users receiver ON receiver.id = messages.receiver_id")

	res := conversation(query, "messages", userID, otherID).
		Order("messages.created_at DESC").
		Limit(1).
		Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, services.ErrNotFound
	}

	return &view, nil
}

func conversation(db *gorm.DB, table string, userID, otherID uuid.UUID) *gorm.DB {
	return db.Where(
		"(("+table+".sender_id = ? AND "+table+".receiver_id = ?) OR ("+table+".sender_id = ? AND "+table+".receiver_id = ?))",
		userID, otherID, otherID, userID,
	)
}
