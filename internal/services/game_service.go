// Package services – GameService
//
// Catalog browsing is public; catalog writes happen through the admin API
// (metadata ingestion from external providers is out of scope).
package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
	"github.com/semihsari152/CoreGameApp-sub007/internal/utils"
)

// GameService provides game catalog operations.
type GameService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewGameService constructs a GameService.
func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

// Create inserts a catalog entry. The slug is derived from the title; a
// duplicate title gets a disambiguating release-year suffix when available.
func (s *GameService) Create(ctx context.Context, title, summary string, releaseYear int) (*domain.Game, error) {
	title = normalizeTitle(title)
	if title == "" {
		return nil, ErrEmptyContent
	}
	if releaseYear < 0 || releaseYear > time.Now().Year()+2 {
		releaseYear = 0
	}

	slug := utils.Slugify(title)
	if slug == "" {
		slug = "game"
	}
	if _, err := repo.GetGameBySlug(ctx, s.DB, slug); err == nil {
		slug = utils.Slugify(title) + "-" + strconv.Itoa(releaseYear)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return repo.CreateGame(ctx, s.DB, title, slug, summary, releaseYear)
}

// Get fetches a game by ID.
func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	g, err := repo.GetGame(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

// GetBySlug fetches a game by its URL slug.
func (s *GameService) GetBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	g, err := repo.GetGameBySlug(ctx, s.DB, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

// ListPage returns a page of the catalog ordered by title and the total count.
func (s *GameService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Game, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountGames(ctx, s.DB)
	if err != nil || total == 0 {
		return []domain.Game{}, total, err
	}
	items, err := repo.ListGamesPage(ctx, s.DB, offset, limit)
	return items, total, err
}

// Update edits a catalog entry's mutable fields.
func (s *GameService) Update(ctx context.Context, id, title, summary string, releaseYear int) error {
	title = normalizeTitle(title)
	if title == "" {
		return ErrEmptyContent
	}
	err := repo.UpdateGame(ctx, s.DB, id, title, summary, releaseYear)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGameNotFound
	}
	return err
}

// Delete removes a catalog entry.
func (s *GameService) Delete(ctx context.Context, id string) error {
	err := repo.DeleteGame(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGameNotFound
	}
	return err
}
