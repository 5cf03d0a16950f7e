// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Friendship
// model.
//
// A friendship row is directional at creation (requester -> addressee) but
// represents the relationship in both directions once accepted, so queries on
// "friends of user X" match either column.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// CreateFriendship inserts a pending friendship request.
func CreateFriendship(ctx context.Context, db *gorm.DB, requesterID, addresseeID string) (*domain.Friendship, error) {
	f := &domain.Friendship{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      domain.FriendshipPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// GetFriendship fetches a friendship by ID.
func GetFriendship(ctx context.Context, db *gorm.DB, id string) (*domain.Friendship, error) {
	var f domain.Friendship
	if err := db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFriendshipBetween fetches the row linking two users in either direction.
func GetFriendshipBetween(ctx context.Context, db *gorm.DB, userA, userB string) (*domain.Friendship, error) {
	var f domain.Friendship
	err := db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFriendshipStatus transitions a friendship to the given status, but
// only while it is still pending. Returns ErrNotFound when the row is missing
// or already resolved, which makes accept/decline idempotence checks cheap.
func UpdateFriendshipStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("id = ? AND status = ?", id, domain.FriendshipPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListFriendIDs returns the user IDs of everyone with an accepted friendship
// with userID.
func ListFriendIDs(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var rows []domain.Friendship
	err := db.WithContext(ctx).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			userID, userID, domain.FriendshipAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, f := range rows {
		if f.RequesterID == userID {
			out = append(out, f.AddresseeID)
		} else {
			out = append(out, f.RequesterID)
		}
	}
	return out, nil
}

// ListPendingFor returns requests awaiting a decision by userID (they are the
// addressee), most recent first.
func ListPendingFor(ctx context.Context, db *gorm.DB, userID string) ([]domain.Friendship, error) {
	var out []domain.Friendship
	err := db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, domain.FriendshipPending).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
