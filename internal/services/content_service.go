// Package services – ContentService
//
// This file implements the ContentService covering the three user-generated
// content aggregates: guides, blog posts, and forum topics. It normalizes and
// clips titles, derives unique URL slugs, and coordinates the thin content
// repositories. Deletion through this path is author-only; moderation goes
// through AdminService.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
	"github.com/semihsari152/CoreGameApp-sub007/internal/utils"
)

// ContentService provides guide, blog post, and forum topic operations.
type ContentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// TitleMaxLen caps stored titles by rune length.
	TitleMaxLen int
	// BodyMaxRunes caps bodies by rune length.
	BodyMaxRunes int
}

// NewContentService constructs a ContentService with sane limits.
func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{DB: db, TitleMaxLen: 120, BodyMaxRunes: 50000}
}

// CreateGuide validates and persists a guide. When gameID is set, the catalog
// entry must exist.
func (s *ContentService) CreateGuide(ctx context.Context, authorID, title, body string, gameID *string) (*domain.Guide, error) {
	title, body, err := s.validate(title, body)
	if err != nil {
		return nil, err
	}
	if gameID != nil {
		if _, err := repo.GetGame(ctx, s.DB, *gameID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGameNotFound
			}
			return nil, err
		}
	}
	return repo.CreateGuide(ctx, s.DB, authorID, title, s.uniqueSlug(title), body, gameID)
}

// ListGuides returns a page of published guides and the total count.
func (s *ContentService) ListGuides(ctx context.Context, page, pageSize int) ([]domain.Guide, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountGuides(ctx, s.DB)
	if err != nil || total == 0 {
		return []domain.Guide{}, total, err
	}
	items, err := repo.ListGuidesPage(ctx, s.DB, offset, limit)
	return items, total, err
}

// GetGuide fetches a single guide.
func (s *ContentService) GetGuide(ctx context.Context, id string) (*domain.Guide, error) {
	g, err := repo.GetGuide(ctx, s.DB, id)
	return g, translateContentErr(err)
}

// DeleteGuide removes a guide, author-only.
func (s *ContentService) DeleteGuide(ctx context.Context, userID, id string) error {
	g, err := repo.GetGuide(ctx, s.DB, id)
	if err != nil {
		return translateContentErr(err)
	}
	if g.AuthorID != userID {
		return ErrNotAuthor
	}
	return repo.DeleteGuide(ctx, s.DB, id)
}

// CreateBlogPost validates and persists a blog post.
func (s *ContentService) CreateBlogPost(ctx context.Context, authorID, title, body string) (*domain.BlogPost, error) {
	title, body, err := s.validate(title, body)
	if err != nil {
		return nil, err
	}
	return repo.CreateBlogPost(ctx, s.DB, authorID, title, s.uniqueSlug(title), body)
}

// ListBlogPosts returns a page of published posts and the total count.
func (s *ContentService) ListBlogPosts(ctx context.Context, page, pageSize int) ([]domain.BlogPost, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountBlogPosts(ctx, s.DB)
	if err != nil || total == 0 {
		return []domain.BlogPost{}, total, err
	}
	items, err := repo.ListBlogPostsPage(ctx, s.DB, offset, limit)
	return items, total, err
}

// GetBlogPost fetches a single blog post.
func (s *ContentService) GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	p, err := repo.GetBlogPost(ctx, s.DB, id)
	return p, translateContentErr(err)
}

// DeleteBlogPost removes a post, author-only.
func (s *ContentService) DeleteBlogPost(ctx context.Context, userID, id string) error {
	p, err := repo.GetBlogPost(ctx, s.DB, id)
	if err != nil {
		return translateContentErr(err)
	}
	if p.AuthorID != userID {
		return ErrNotAuthor
	}
	return repo.DeleteBlogPost(ctx, s.DB, id)
}

// CreateForumTopic validates and persists a discussion thread.
func (s *ContentService) CreateForumTopic(ctx context.Context, authorID, title, body string) (*domain.ForumTopic, error) {
	title, body, err := s.validate(title, body)
	if err != nil {
		return nil, err
	}
	return repo.CreateForumTopic(ctx, s.DB, authorID, title, s.uniqueSlug(title), body)
}

// ListForumTopics returns a page of topics and the total count.
func (s *ContentService) ListForumTopics(ctx context.Context, page, pageSize int) ([]domain.ForumTopic, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountForumTopics(ctx, s.DB)
	if err != nil || total == 0 {
		return []domain.ForumTopic{}, total, err
	}
	items, err := repo.ListForumTopicsPage(ctx, s.DB, offset, limit)
	return items, total, err
}

// GetForumTopic fetches a single topic.
func (s *ContentService) GetForumTopic(ctx context.Context, id string) (*domain.ForumTopic, error) {
	t, err := repo.GetForumTopic(ctx, s.DB, id)
	return t, translateContentErr(err)
}

// validate normalizes and bounds-checks a title/body pair.
func (s *ContentService) validate(title, body string) (string, string, error) {
	title = normalizeTitle(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return "", "", ErrEmptyContent
	}
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(title) > s.TitleMaxLen {
		title = string([]rune(title)[:s.TitleMaxLen])
	}
	if s.BodyMaxRunes > 0 && utf8.RuneCountInString(body) > s.BodyMaxRunes {
		return "", "", ErrTooLong
	}
	return title, body, nil
}

// uniqueSlug derives a URL slug from the title with a short random suffix,
// so identical titles never collide on the unique index.
func (s *ContentService) uniqueSlug(title string) string {
	base := utils.Slugify(title)
	if base == "" {
		base = "untitled"
	}
	return base + "-" + uuid.NewString()[:8]
}

// pageWindow applies list pagination defaults.
func pageWindow(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}

// normalizeTitle trims whitespace and collapses multiple spaces to one.
func normalizeTitle(s string) string {
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
