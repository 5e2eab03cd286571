package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
	"gorm.io/gorm"
)

func (d *Database) SaveFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	return d.db.WithContext(ctx).Create(request).Error
}

func (d *Database) GetFriendRequest(ctx context.Context, id uuid.UUID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := d.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &request, nil
}

func (d *Database) FindPendingFriendRequest(ctx context.Context, fromID, toID uuid.UUID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := d.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ? AND status = ?", fromID, toID, models.FriendRequestPending).
		First(&request).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &request, nil
}

// ListSentFriendRequests ожидающие заявки пользователя вместе с адресатами
func (d *Database) ListSentFriendRequests(ctx context.Context, fromID uuid.UUID) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := d.db.WithContext(ctx).
		Where("from_id = ? AND status = ?", fromID, models.FriendRequestPending).
		Order("created_at DESC").
		Preload("To").
		Find(&requests).Error
	return requests, err
}

func (d *Database) UpdateFriendRequestStatus(ctx context.Context, id uuid.UUID, status models.FriendRequestStatus) error {
	res := d.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

// AcceptFriendRequest в одной транзакции принимает заявку и связывает пользователей
func (d *Database) AcceptFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", request.ID, models.FriendRequestPending).
			Update("status", models.FriendRequestAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrNotFound
		}

		return addAcquaintances(tx, request.FromID, request.ToID)
	})
}

// AddAcquaintances связывает двух пользователей в обе стороны
func (d *Database) AddAcquaintances(ctx context.Context, userID, otherID uuid.UUID) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return addAcquaintances(tx, userID, otherID)
	})
}

func addAcquaintances(tx *gorm.DB, userID, otherID uuid.UUID) error {
	var user, other models.User

	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return notFound(err)
	}

	if err := tx.First(&other, "id = ?", otherID).Error; err != nil {
		return notFound(err)
	}

	if err := tx.Model(&user).Association("Acquaintances").Append(&other); err != nil {
		return err
	}

	return tx.Model(&other).Association("Acquaintances").Append(&user)
}

func (d *Database) GetAcquaintances(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	user := models.User{ID: userID}
	var acquaintances []models.User

	err := d.db.WithContext(ctx).
		Model(&user).
		Order("name ASC").
		Association("Acquaintances").
		Find(&acquaintances)

	return acquaintances, err
}
