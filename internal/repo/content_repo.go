// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// user-generated content models: Guide, BlogPost, and ForumTopic.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// CreateGuide inserts a new guide row authored by authorID.
func CreateGuide(ctx context.Context, db *gorm.DB, authorID, title, slug, body string, gameID *string) (*domain.Guide, error) {
	g := &domain.Guide{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		GameID:    gameID,
		Title:     title,
		Slug:      slug,
		Body:      body,
		Published: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// GetGuide fetches a guide by ID.
func GetGuide(ctx context.Context, db *gorm.DB, id string) (*domain.Guide, error) {
	var g domain.Guide
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// CountGuides returns the total number of published guides.
func CountGuides(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Guide{}).Where("published = ?", true).Count(&total).Error
	return total, err
}

// ListGuidesPage returns a paginated slice of published guides, most recent first.
func ListGuidesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Guide, error) {
	var out []domain.Guide
	err := db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteGuide soft-deletes a guide. Returns ErrNotFound when no row was affected.
func DeleteGuide(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.Guide{}, id)
}

// CreateBlogPost inserts a new blog post authored by authorID.
func CreateBlogPost(ctx context.Context, db *gorm.DB, authorID, title, slug, body string) (*domain.BlogPost, error) {
	p := &domain.BlogPost{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     title,
		Slug:      slug,
		Body:      body,
		Published: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetBlogPost fetches a blog post by ID.
func GetBlogPost(ctx context.Context, db *gorm.DB, id string) (*domain.BlogPost, error) {
	var p domain.BlogPost
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountBlogPosts returns the total number of published blog posts.
func CountBlogPosts(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.BlogPost{}).Where("published = ?", true).Count(&total).Error
	return total, err
}

// ListBlogPostsPage returns a paginated slice of published posts, most recent first.
func ListBlogPostsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteBlogPost soft-deletes a blog post. Returns ErrNotFound when no row was affected.
func DeleteBlogPost(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.BlogPost{}, id)
}

// CreateForumTopic inserts a new discussion thread authored by authorID.
func CreateForumTopic(ctx context.Context, db *gorm.DB, authorID, title, slug, body string) (*domain.ForumTopic, error) {
	t := &domain.ForumTopic{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     title,
		Slug:      slug,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetForumTopic fetches a topic by ID.
func GetForumTopic(ctx context.Context, db *gorm.DB, id string) (*domain.ForumTopic, error) {
	var t domain.ForumTopic
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// CountForumTopics returns the total number of topics.
func CountForumTopics(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.ForumTopic{}).Count(&total).Error
	return total, err
}

// ListForumTopicsPage returns a paginated slice of topics, most recent first.
func ListForumTopicsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ForumTopic, error) {
	var out []domain.ForumTopic
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SetForumTopicLocked updates the locked flag on a topic. Returns ErrNotFound
// when no row was affected.
func SetForumTopicLocked(ctx context.Context, db *gorm.DB, id string, locked bool) error {
	res := db.WithContext(ctx).
		Model(&domain.ForumTopic{}).
		Where("id = ?", id).
		Update("locked", locked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteForumTopic soft-deletes a topic. Returns ErrNotFound when no row was affected.
func DeleteForumTopic(ctx context.Context, db *gorm.DB, id string) error {
	return deleteByID(ctx, db, &domain.ForumTopic{}, id)
}

// deleteByID soft-deletes a single row by primary key, translating a zero
// RowsAffected into ErrNotFound.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
