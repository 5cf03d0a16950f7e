// Package services – AdminService
//
// This file implements the AdminService: the permission directory consumed by
// the admin gate middleware (coarse admin flag plus fine-grained permission
// strings), user administration, moderation deletes, dashboard statistics,
// and system-wide announcements.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
)

// AdminService provides administrative operations and the permission lookups
// backing the admin route gate.
type AdminService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Pusher broadcasts system messages. May be nil.
	Pusher Pusher
}

// NewAdminService constructs an AdminService.
func NewAdminService(db *gorm.DB, pusher Pusher) *AdminService {
	return &AdminService{DB: db, Pusher: pusher}
}

// IsAdmin reports whether the user holds the coarse admin flag. An unknown
// user is simply not an admin.
func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin, nil
}

// HasPermission reports whether the user holds the named fine-grained
// permission.
func (s *AdminService) HasPermission(ctx context.Context, userID, permission string) (bool, error) {
	return repo.HasPermission(ctx, s.DB, userID, permission)
}

// Permissions lists the user's fine-grained permission strings.
func (s *AdminService) Permissions(ctx context.Context, userID string) ([]string, error) {
	return repo.ListPermissions(ctx, s.DB, userID)
}

// Grant adds a fine-grained permission to a user. Granting a permission the
// user already holds returns ErrDuplicatePermission.
func (s *AdminService) Grant(ctx context.Context, userID, permission string) error {
	permission = strings.TrimSpace(permission)
	if permission == "" {
		return ErrEmptyContent
	}
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		return translateUserErr(err)
	}
	held, err := repo.HasPermission(ctx, s.DB, userID, permission)
	if err != nil {
		return err
	}
	if held {
		return ErrDuplicatePermission
	}
	return repo.GrantPermission(ctx, s.DB, userID, permission)
}

// Revoke removes a fine-grained permission from a user. Revoking a
// permission the user never held is a no-op.
func (s *AdminService) Revoke(ctx context.Context, userID, permission string) error {
	err := repo.RevokePermission(ctx, s.DB, userID, permission)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// SetAdminFlag grants or withdraws the coarse admin flag.
func (s *AdminService) SetAdminFlag(ctx context.Context, userID string, isAdmin bool) error {
	err := repo.SetAdminFlag(ctx, s.DB, userID, isAdmin)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

// FindUserByUsername resolves a user account by its unique handle, the
// identifier moderators actually see in reports and chat logs.
func (s *AdminService) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyContent
	}
	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		return nil, translateUserErr(err)
	}
	return u, nil
}

// ListUsers returns a page of registered users and the total count.
func (s *AdminService) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	offset, limit := pageWindow(page, pageSize)
	total, err := repo.CountUsers(ctx, s.DB)
	if err != nil || total == 0 {
		return []domain.User{}, total, err
	}
	items, err := repo.ListUsersPage(ctx, s.DB, offset, limit)
	return items, total, err
}

// Dashboard returns the aggregate counts rendered on the admin dashboard.
func (s *AdminService) Dashboard(ctx context.Context) (*repo.DashboardStats, error) {
	return repo.CollectDashboardStats(ctx, s.DB)
}

// BroadcastSystemMessage announces an operator message to every live
// connection. Delivery is best-effort; there is no durable record.
func (s *AdminService) BroadcastSystemMessage(ctx context.Context, message, title string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyContent
	}
	if s.Pusher != nil {
		s.Pusher.BroadcastSystemMessage(ctx, message, title)
	}
	return nil
}

// RemoveGuide deletes any guide, moderator path.
func (s *AdminService) RemoveGuide(ctx context.Context, id string) error {
	return translateContentErr(repo.DeleteGuide(ctx, s.DB, id))
}

// RemoveBlogPost deletes any blog post, moderator path.
func (s *AdminService) RemoveBlogPost(ctx context.Context, id string) error {
	return translateContentErr(repo.DeleteBlogPost(ctx, s.DB, id))
}

// RemoveForumTopic deletes any forum topic, moderator path.
func (s *AdminService) RemoveForumTopic(ctx context.Context, id string) error {
	return translateContentErr(repo.DeleteForumTopic(ctx, s.DB, id))
}

// RemoveComment deletes any comment, moderator path.
func (s *AdminService) RemoveComment(ctx context.Context, id string) error {
	return translateContentErr(repo.DeleteComment(ctx, s.DB, id))
}

// LockForumTopic sets the locked flag on a topic.
func (s *AdminService) LockForumTopic(ctx context.Context, id string, locked bool) error {
	return translateContentErr(repo.SetForumTopicLocked(ctx, s.DB, id, locked))
}
