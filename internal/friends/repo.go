// Package friends manages the mutual friendship graph. Friendships are
// stored as two directed rows so per-user reads never need an OR filter.
package friends

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
)

// Repository exposes friendship persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a friends repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts one direction of a friendship.
func (r *Repository) Create(ctx context.Context, userID, friendID uuid.UUID) (*models.Friendship, error) {
	friendship := &models.Friendship{
		ID:       uuid.New(),
		UserID:   userID,
		FriendID: friendID,
	}
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		return nil, err
	}
	return friendship, nil
}

// Delete removes both directions of a friendship. Returns the number of
// rows removed so callers can detect a no-op.
func (r *Repository) Delete(ctx context.Context, userID, friendID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Delete(&models.Friendship{})
	return res.RowsAffected, res.Error
}

// Exists reports whether userID has friendID as a friend.
func (r *Repository) Exists(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

// Count returns how many friends the user has.
func (r *Repository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ListFriends returns the user records on the far side of the user's
// friendships, newest friendship first.
func (r *Repository) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var friends []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Order("friendships.created_at DESC").
		Find(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}
