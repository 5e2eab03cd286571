package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
)

type FriendRequestResponse struct {
	ID        uuid.UUID                  `json:"id"`
	FromID    uuid.UUID                  `json:"fromId"`
	ToID      uuid.UUID                  `json:"toId"`
	Status    models.FriendRequestStatus `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
	To        *UserInfo                  `json:"to,omitempty"`
}

func NewFriendRequestResponse(req models.FriendRequest, _ int) FriendRequestResponse {
	resp := FriendRequestResponse{
		ID:        req.ID,
		FromID:    req.FromID,
		ToID:      req.ToID,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
	// To заполнен, только если связь подгружена
	if req.To.ID != uuid.Nil {
		to := NewUserInfo(req.To)
		resp.To = &to
	}
	return resp
}
