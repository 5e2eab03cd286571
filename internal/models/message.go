package models

import (
	"github.com/google/uuid"
	"time"
)

// Message личное сообщение между двумя пользователями. После сохранения не меняется.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair,priority:1" json:"senderId"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair,priority:2" json:"receiverId"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

// MessageView сообщение с развёрнутыми именами отправителя и получателя
type MessageView struct {
	Message
	SenderName   string `json:"senderName"`
	ReceiverName string `json:"receiverName"`
}
