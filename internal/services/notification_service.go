// Package services – NotificationService
//
// This file implements the NotificationService, which owns the durable
// notification records and their best-effort live delivery. The contract is
// strictly ordered: the row is persisted first, and only then is a push
// attempted, so a missed live push degrades silently while the notification
// center stays correct. Push failures never surface to the business operation
// that triggered the notification.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
)

// NotificationRepo defines the repository contract required by
// NotificationService.
type NotificationRepo interface {
	// CreateNotification inserts a durable notification row.
	CreateNotification(ctx context.Context, db *gorm.DB, userID, kind, title, body, entityType, entityID string) (*domain.Notification, error)

	// CountNotifications returns the user's total notification count.
	CountNotifications(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// ListNotificationsPage returns a page of the user's notifications.
	ListNotificationsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Notification, error)

	// CountUnreadNotifications returns the user's unread count.
	CountUnreadNotifications(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// MarkNotificationRead stamps one notification as read, enforcing ownership.
	MarkNotificationRead(ctx context.Context, db *gorm.DB, id, userID string) error

	// MarkAllNotificationsRead stamps every unread notification for the user.
	MarkAllNotificationsRead(ctx context.Context, db *gorm.DB, userID string) error
}

// Pusher is the live-delivery contract consumed by services. *hub.Dispatcher
// is the production implementation; its methods are best-effort and never
// return errors to the caller.
type Pusher interface {
	SendToUser(ctx context.Context, userID string, n hub.NotificationPayload)
	SendToUsers(ctx context.Context, userIDs []string, n hub.NotificationPayload)
	SendUnreadCountUpdate(ctx context.Context, userID string, count int64)
	SendTypingIndicator(ctx context.Context, userID, entityType, entityID string, isTyping bool)
	BroadcastSystemMessage(ctx context.Context, message, title string)
}

// NotificationService persists notifications and fans them out to live
// connections.
type NotificationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the notification repository used by this service.
	Repo NotificationRepo
	// Pusher delivers best-effort live pushes. May be nil in contexts with
	// no live transport (e.g. batch jobs); persistence still happens.
	Pusher Pusher
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB, repo NotificationRepo, pusher Pusher) *NotificationService {
	return &NotificationService{DB: db, Repo: repo, Pusher: pusher}
}

// Notify persists a notification for userID and then pushes it, plus the
// user's refreshed unread count, to their private group. The returned error
// reflects persistence only.
func (s *NotificationService) Notify(ctx context.Context, userID, kind, title, body, entityType, entityID string) (*domain.Notification, error) {
	n, err := s.Repo.CreateNotification(ctx, s.DB, userID, kind, title, body, entityType, entityID)
	if err != nil {
		return nil, err
	}
	s.pushAfterWrite(ctx, n)
	return n, nil
}

// NotifyMany persists one notification row per recipient and then fans the
// shared payload out concurrently. The pushed payload carries no row ID
// (each recipient has their own row); clients refetch the notification list
// on tap. Persistence errors abort remaining recipients and are returned.
func (s *NotificationService) NotifyMany(ctx context.Context, userIDs []string, kind, title, body, entityType, entityID string) error {
	for _, userID := range userIDs {
		if _, err := s.Repo.CreateNotification(ctx, s.DB, userID, kind, title, body, entityType, entityID); err != nil {
			return err
		}
	}
	if s.Pusher != nil {
		s.Pusher.SendToUsers(ctx, userIDs, hub.NotificationPayload{
			Kind:       kind,
			Title:      title,
			Body:       body,
			EntityType: entityType,
			EntityID:   entityID,
		})
	}
	return nil
}

// ListPage returns a page of the user's notifications and the total count.
// It applies defaults for invalid page/pageSize.
func (s *NotificationService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountNotifications(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Notification{}, 0, nil
	}

	items, err := s.Repo.ListNotificationsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// UnreadCount returns the user's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.CountUnreadNotifications(ctx, s.DB, userID)
}

// MarkRead stamps one notification as read and pushes the refreshed unread
// count to the user's other devices.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.Repo.MarkNotificationRead(ctx, s.DB, notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	s.pushUnread(ctx, userID)
	return nil
}

// MarkAllRead stamps every unread notification for the user and pushes a
// zero unread count.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.Repo.MarkAllNotificationsRead(ctx, s.DB, userID); err != nil {
		return err
	}
	if s.Pusher != nil {
		s.Pusher.SendUnreadCountUpdate(ctx, userID, 0)
	}
	return nil
}

// pushAfterWrite delivers the live notification and unread count for an
// already-persisted row.
func (s *NotificationService) pushAfterWrite(ctx context.Context, n *domain.Notification) {
	if s.Pusher == nil {
		return
	}
	s.Pusher.SendToUser(ctx, n.UserID, hub.NotificationPayload{
		ID:         n.ID,
		Kind:       n.Kind,
		Title:      n.Title,
		Body:       n.Body,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		CreatedAt:  n.CreatedAt,
	})
	s.pushUnread(ctx, n.UserID)
}

// pushUnread recomputes and pushes the unread count; a failed count query
// only skips the push, it never fails the caller.
func (s *NotificationService) pushUnread(ctx context.Context, userID string) {
	if s.Pusher == nil {
		return
	}
	if count, err := s.Repo.CountUnreadNotifications(ctx, s.DB, userID); err == nil {
		s.Pusher.SendUnreadCountUpdate(ctx, userID, count)
	}
}
