// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Conversation, ConversationMember, and Message models.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// CreateConversation inserts a conversation and its initial member rows in a
// single transaction.
func CreateConversation(ctx context.Context, db *gorm.DB, title string, isGroup bool, memberIDs []string) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		IsGroup:   isGroup,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			m := &domain.ConversationMember{
				ID:             uuid.NewString(),
				ConversationID: conv.ID,
				UserID:         userID,
				CreatedAt:      time.Now().UTC(),
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// GetConversation fetches a conversation by ID.
func GetConversation(ctx context.Context, db *gorm.DB, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListConversationsFor returns the conversations userID is a member of,
// most recently updated first.
func ListConversationsFor(ctx context.Context, db *gorm.DB, userID string) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := db.WithContext(ctx).
		Joins("JOIN conversation_members cm ON cm.conversation_id = conversations.id").
		Where("cm.user_id = ? AND cm.deleted_at IS NULL", userID).
		Order("conversations.updated_at desc").
		Find(&out).Error
	return out, err
}

// IsMember reports whether userID belongs to the conversation.
func IsMember(ctx context.Context, db *gorm.DB, conversationID, userID string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&total).Error
	return total > 0, err
}

// ListMemberIDs returns the user IDs of every member of the conversation.
func ListMemberIDs(ctx context.Context, db *gorm.DB, conversationID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.ConversationMember{}).
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &out).Error
	return out, err
}

// CreateMessage inserts a message row and bumps the conversation's UpdatedAt
// so ListConversationsFor orders by recent activity.
func CreateMessage(ctx context.Context, db *gorm.DB, conversationID, senderID, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", m.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CountMessages returns the number of messages in a conversation.
func CountMessages(ctx context.Context, db *gorm.DB, conversationID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error
	return total, err
}

// ListMessagesPage returns a paginated slice ordered deterministically
// (CreatedAt ASC, ID ASC).
func ListMessagesPage(ctx context.Context, db *gorm.DB, conversationID string, offset, limit int) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkConversationRead moves the member's read cursor to now. Returns
// ErrNotFound when userID is not a member.
func MarkConversationRead(ctx context.Context, db *gorm.DB, conversationID, userID string) error {
	now := time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UnreadMessageCount counts messages newer than the member's read cursor,
// excluding the member's own messages. A nil cursor counts everything.
func UnreadMessageCount(ctx context.Context, db *gorm.DB, conversationID, userID string) (int64, error) {
	var m domain.ConversationMember
	if err := db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&m).Error; err != nil {
		return 0, err
	}

	q := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, userID)
	if m.LastReadAt != nil {
		q = q.Where("created_at > ?", *m.LastReadAt)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}
