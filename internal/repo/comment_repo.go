// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// CreateComment inserts a comment row attached to (entityType, entityID).
func CreateComment(ctx context.Context, db *gorm.DB, authorID, entityType, entityID, body string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		EntityType: entityType,
		EntityID:   entityID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by ID.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountComments returns the number of comments attached to an entity.
func CountComments(ctx context.Context, db *gorm.DB, entityType, entityID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&total).Error
	return total, err
}

// ListCommentsPage returns a paginated slice of an entity's comments ordered
// deterministically (CreatedAt ASC, ID ASC).
func ListCommentsPage(ctx context.Context, db *gorm.DB, entityType, entityID string, offset, limit int) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteComment soft-deletes a comment. Returns ErrNotFound when no row was affected.
func DeleteComment(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.Comment{}, id)
}
