// Package services – MessageService
//
// This file implements the MessageService, which manages direct and group
// conversations: creation, membership-checked message sending and listing,
// read cursors, and typing indicators. Sending a message notifies the other
// members after the transactional write commits; notification delivery is
// best-effort and never rolls the message back.
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

// Notifier is the notification contract consumed by the social services.
// *NotificationService is the production implementation.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, body, entityType, entityID string) (*domain.Notification, error)
	NotifyMany(ctx context.Context, userIDs []string, kind, title, body, entityType, entityID string) error
}

// MessageService provides conversation-level operations. All reads and writes
// are scoped by membership: a user who does not belong to a conversation
// cannot observe it.
type MessageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Notifier creates durable notifications for recipients of new messages.
	Notifier Notifier
	// Pusher delivers typing indicators. May be nil when no live transport
	// is wired.
	Pusher Pusher

	// MaxContentRunes caps message bodies by rune length.
	MaxContentRunes int
}

// NewMessageService constructs a MessageService with a sane content cap.
func NewMessageService(db *gorm.DB, notifier Notifier, pusher Pusher) *MessageService {
	return &MessageService{DB: db, Notifier: notifier, Pusher: pusher, MaxContentRunes: 4000}
}

// StartConversation creates a conversation containing creatorID and the given
// members. Duplicate member IDs are collapsed and the creator is always
// included; a two-person conversation is direct, larger ones are group chats.
func (s *MessageService) StartConversation(ctx context.Context, creatorID, title string, memberIDs []string) (*domain.Conversation, error) {
	seen := map[string]struct{}{creatorID: {}}
	members := []string{creatorID}
	for _, id := range memberIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	if len(members) < 2 {
		return nil, ErrEmptyContent
	}
	return repo.CreateConversation(ctx, s.DB, strings.TrimSpace(title), len(members) > 2, members)
}

// List returns the conversations the user belongs to, most recently active
// first.
func (s *MessageService) List(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return repo.ListConversationsFor(ctx, s.DB, userID)
}

// Send validates and persists a message, then notifies every other member.
// The notification step runs after the write and cannot fail the send.
func (s *MessageService) Send(ctx context.Context, senderID, conversationID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return nil, ErrTooLong
	}

	if err := s.requireMember(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	m, err := repo.CreateMessage(ctx, s.DB, conversationID, senderID, content)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if recipients, err := s.otherMembers(ctx, conversationID, senderID); err == nil && len(recipients) > 0 {
			// Best-effort: a failed notification write is not a failed send.
			_ = s.Notifier.NotifyMany(ctx, recipients,
				domain.NotificationNewMessage, "New message", snippet(content, 120),
				hub.EntityConversation, conversationID)
		}
	}
	return m, nil
}

// ListMessages returns a page of the conversation's messages and the total
// count, enforcing membership.
func (s *MessageService) ListMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]domain.Message, int64, error) {
	if err := s.requireMember(ctx, conversationID, userID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountMessages(ctx, s.DB, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Message{}, 0, nil
	}
	items, err := repo.ListMessagesPage(ctx, s.DB, conversationID, offset, pageSize)
	return items, total, err
}

// MarkRead moves the user's read cursor in the conversation to now.
func (s *MessageService) MarkRead(ctx context.Context, userID, conversationID string) error {
	err := repo.MarkConversationRead(ctx, s.DB, conversationID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotMember
	}
	return err
}

// UnreadCount returns how many messages the user has not read in the
// conversation.
func (s *MessageService) UnreadCount(ctx context.Context, userID, conversationID string) (int64, error) {
	n, err := repo.UnreadMessageCount(ctx, s.DB, conversationID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotMember
	}
	return n, err
}

// Typing pushes a typing indicator to the conversation's live group,
// excluding the sender's own connection. Membership is enforced; delivery is
// best-effort.
func (s *MessageService) Typing(ctx context.Context, userID, conversationID string, isTyping bool) error {
	if err := s.requireMember(ctx, conversationID, userID); err != nil {
		return err
	}
	if s.Pusher != nil {
		s.Pusher.SendTypingIndicator(ctx, userID, hub.EntityConversation, conversationID, isTyping)
	}
	return nil
}

// requireMember translates non-membership (including a missing conversation)
// into service errors.
func (s *MessageService) requireMember(ctx context.Context, conversationID, userID string) error {
	if _, err := repo.GetConversation(ctx, s.DB, conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	ok, err := repo.IsMember(ctx, s.DB, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

// otherMembers lists every member of the conversation except exclude.
func (s *MessageService) otherMembers(ctx context.Context, conversationID, exclude string) ([]string, error) {
	all, err := repo.ListMemberIDs(ctx, s.DB, conversationID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, id := range all {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out, nil
}

// snippet clips s to max runes for use in a notification body.
func snippet(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}
