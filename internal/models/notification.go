package models

import (
	"github.com/google/uuid"
	"time"
)

type NotificationType string

const (
	NotificationNewMessage            NotificationType = "new_message"
	NotificationFriendRequest         NotificationType = "friend_request"
	NotificationFriendRequestAccepted NotificationType = "friend_request_accepted"
	NotificationFriendRequestDeclined NotificationType = "friend_request_declined"
)

// Время жизни уведомлений, отсчитывается от CreatedAt
const (
	UnreadNotificationTTL = 7 * 24 * time.Hour
	ReadNotificationTTL   = 24 * time.Hour
)

type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_owner,priority:1" json:"userId"`
	Type      NotificationType `gorm:"not null" json:"type"`
	Message   string           `gorm:"not null" json:"message"`
	RelatedID string           `json:"relatedId,omitempty"`
	Read      bool             `gorm:"not null;default:false;index:idx_notifications_owner,priority:2" json:"read"`
	CreatedAt time.Time        `gorm:"not null;index" json:"createdAt"`
}

// NotificationTTL возвращает время жизни уведомления в зависимости от статуса прочтения
func NotificationTTL(read bool) time.Duration {
	if read {
		return ReadNotificationTTL
	}
	return UnreadNotificationTTL
}

func (n *Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(NotificationTTL(n.Read))
}

// Expired сообщает, истёк ли срок жизни уведомления к моменту now.
// Уведомление ровно на границе TTL считается истёкшим.
func (n *Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt())
}
