package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
)

type UserHandler struct {
	users services.UserStore
	log   *slog.Logger
}

func NewUserHandler(users services.UserStore, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.writeUser(c, userID)
}

// GetUser профиль пользователя по :id
func (h *UserHandler) GetUser(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.writeUser(c, id)
}

func (h *UserHandler) writeUser(c *gin.Context, id uuid.UUID) {
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, lookupError(err))
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"role":           u.Role,
		"bio":            u.Bio,
		"profilePicture": u.ProfilePicture,
		"createdAt":      u.CreatedAt,
	}
}

// lookupError приводит ошибку хранилища к виду сервисного слоя
func lookupError(err error) error {
	kind := services.KindCollaborator
	if errors.Is(err, services.ErrNotFound) {
		kind = services.KindNotFound
	}
	return &services.Error{Kind: kind, Op: "get user", Err: err}
}
