package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
)

// UserInfo публичная часть профиля
type UserInfo struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
}

func NewUserInfo(u models.User) UserInfo {
	return UserInfo{
		ID:             u.ID,
		Name:           u.Name,
		Role:           u.Role,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
	}
}

type HistoryMessage struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	IsSentByMe bool      `json:"isSentByMe"`
}

func NewHistoryMessage(item services.HistoryItem, _ int) HistoryMessage {
	return HistoryMessage{
		ID:         item.ID,
		SenderID:   item.SenderID,
		ReceiverID: item.ReceiverID,
		Content:    item.Content,
		CreatedAt:  item.CreatedAt,
		IsSentByMe: item.IsSentByMe,
	}
}

type LatestMessage struct {
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	SenderName string    `json:"senderName"`
}

type ConversationResponse struct {
	Acquaintance  UserInfo       `json:"acquaintance"`
	LatestMessage *LatestMessage `json:"latestMessage"`
}

func NewConversationResponse(conv services.Conversation, _ int) ConversationResponse {
	resp := ConversationResponse{Acquaintance: NewUserInfo(conv.Acquaintance)}
	if conv.LatestMessage != nil {
		resp.LatestMessage = &LatestMessage{
			Content:    conv.LatestMessage.Content,
			CreatedAt:  conv.LatestMessage.CreatedAt,
			SenderName: conv.LatestMessage.SenderName,
		}
	}
	return resp
}
