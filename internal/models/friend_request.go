package models

import (
	"github.com/google/uuid"
	"time"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

type FriendRequest struct {
	ID        uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FromID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"fromId"`
	ToID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"toId"`
	Status    FriendRequestStatus `gorm:"not null;default:'pending';check:status IN ('pending','accepted','declined')" json:"status"`
	CreatedAt time.Time           `json:"createdAt"`

	// Связи
	From User `gorm:"foreignKey:FromID" json:"-"`
	To   User `gorm:"foreignKey:ToID" json:"-"`
}
