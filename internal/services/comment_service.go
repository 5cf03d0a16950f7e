// Package services – CommentService
//
// Comments attach polymorphically to guides, blog posts, and forum topics.
// Creating a comment notifies the content's author (unless they commented on
// their own content); the entity kind doubles as the hub group family, so a
// live comment notification can deep-link back to the room.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
)

// CommentService provides comment creation, listing, and removal.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Notifier creates the author's new-comment notification.
	Notifier Notifier

	// MaxBodyRunes caps comment bodies by rune length.
	MaxBodyRunes int
}

// NewCommentService constructs a CommentService with a sane body cap.
func NewCommentService(db *gorm.DB, notifier Notifier) *CommentService {
	return &CommentService{DB: db, Notifier: notifier, MaxBodyRunes: 2000}
}

// Create validates the target entity, persists the comment, and notifies the
// entity's author. Commenting on a locked forum topic is rejected.
func (s *CommentService) Create(ctx context.Context, authorID, entityType, entityID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxBodyRunes > 0 && utf8.RuneCountInString(body) > s.MaxBodyRunes {
		return nil, ErrTooLong
	}

	ownerID, err := s.entityOwner(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	c, err := repo.CreateComment(ctx, s.DB, authorID, entityType, entityID, body)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil && ownerID != "" && ownerID != authorID {
		_, _ = s.Notifier.Notify(ctx, ownerID,
			domain.NotificationNewComment, "New comment",
			snippet(body, 120), entityType, entityID)
	}
	return c, nil
}

// ListPage returns a page of an entity's comments plus the total count.
func (s *CommentService) ListPage(ctx context.Context, entityType, entityID string, page, pageSize int) ([]domain.Comment, int64, error) {
	if !knownCommentEntity(entityType) {
		return nil, 0, ErrUnknownEntity
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountComments(ctx, s.DB, entityType, entityID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Comment{}, 0, nil
	}
	items, err := repo.ListCommentsPage(ctx, s.DB, entityType, entityID, offset, pageSize)
	return items, total, err
}

// Delete removes a comment. Only its author may delete it through this path;
// moderators go through the admin API.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	c, err := repo.GetComment(ctx, s.DB, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	if c.AuthorID != userID {
		return ErrNotAuthor
	}
	return repo.DeleteComment(ctx, s.DB, commentID)
}

// entityOwner resolves the author of the commented entity and enforces
// per-kind rules (locked topics reject comments).
func (s *CommentService) entityOwner(ctx context.Context, entityType, entityID string) (string, error) {
	switch entityType {
	case hub.EntityGuide:
		g, err := repo.GetGuide(ctx, s.DB, entityID)
		if err != nil {
			return "", translateContentErr(err)
		}
		return g.AuthorID, nil
	case hub.EntityBlogPost:
		p, err := repo.GetBlogPost(ctx, s.DB, entityID)
		if err != nil {
			return "", translateContentErr(err)
		}
		return p.AuthorID, nil
	case hub.EntityForumTopic:
		t, err := repo.GetForumTopic(ctx, s.DB, entityID)
		if err != nil {
			return "", translateContentErr(err)
		}
		if t.Locked {
			return "", ErrTopicLocked
		}
		return t.AuthorID, nil
	default:
		return "", ErrUnknownEntity
	}
}

func knownCommentEntity(entityType string) bool {
	switch entityType {
	case hub.EntityGuide, hub.EntityBlogPost, hub.EntityForumTopic:
		return true
	}
	return false
}

func translateContentErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContentNotFound
	}
	return err
}
