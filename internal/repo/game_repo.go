// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Game model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// CreateGame inserts a new catalog entry.
func CreateGame(ctx context.Context, db *gorm.DB, title, slug, summary string, releaseYear int) (*domain.Game, error) {
	g := &domain.Game{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        slug,
		Summary:     summary,
		ReleaseYear: releaseYear,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// GetGame fetches a game by ID.
func GetGame(ctx context.Context, db *gorm.DB, id string) (*domain.Game, error) {
	var g domain.Game
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGameBySlug fetches a game by its URL slug.
func GetGameBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Game, error) {
	var g domain.Game
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// CountGames returns the total number of catalog entries.
func CountGames(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Game{}).Count(&total).Error
	return total, err
}

// ListGamesPage returns a paginated slice of games ordered by title.
func ListGamesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Game, error) {
	var out []domain.Game
	err := db.WithContext(ctx).
		Order("title asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateGame updates the mutable fields of a catalog entry. Returns
// ErrNotFound when no row was affected.
func UpdateGame(ctx context.Context, db *gorm.DB, id, title, summary string, releaseYear int) error {
	res := db.WithContext(ctx).
		Model(&domain.Game{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "summary": summary, "release_year": releaseYear})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteGame soft-deletes a catalog entry. Returns ErrNotFound when no row
// was affected.
func DeleteGame(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Game{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
