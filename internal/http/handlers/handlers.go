// Handler wiring shared by all endpoint files.
//
// Handlers are transport-thin: they validate input, call application services
// through narrow interfaces, and translate results into HTTP responses. The
// interfaces below describe exactly what the HTTP layer consumes so tests can
// substitute fakes without touching GORM or the push hub.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/http/middleware"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
	"github.com/semihsari152/CoreGameApp-sub007/internal/utils"
)

//
// Service contracts (context-aware)
//

// NotificationService lists and acknowledges per-user notifications.
type NotificationService interface {
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// ConversationService covers direct-message conversations and their messages.
type ConversationService interface {
	StartConversation(ctx context.Context, creatorID, title string, memberIDs []string) (*domain.Conversation, error)
	List(ctx context.Context, userID string) ([]domain.Conversation, error)
	Send(ctx context.Context, senderID, conversationID, content string) (*domain.Message, error)
	ListMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]domain.Message, int64, error)
	MarkRead(ctx context.Context, userID, conversationID string) error
	UnreadCount(ctx context.Context, userID, conversationID string) (int64, error)
	Typing(ctx context.Context, userID, conversationID string, isTyping bool) error
}

// FriendshipService manages the friend graph and presence-aware friend lists.
type FriendshipService interface {
	Request(ctx context.Context, requesterID, addresseeID string) (*domain.Friendship, error)
	Accept(ctx context.Context, userID, friendshipID string) error
	Decline(ctx context.Context, userID, friendshipID string) error
	Friends(ctx context.Context, userID string) ([]services.Friend, error)
	Pending(ctx context.Context, userID string) ([]domain.Friendship, error)
}

// CommentService manages comment threads under content entities.
type CommentService interface {
	Create(ctx context.Context, authorID, entityType, entityID, body string) (*domain.Comment, error)
	ListPage(ctx context.Context, entityType, entityID string, page, pageSize int) ([]domain.Comment, int64, error)
	Delete(ctx context.Context, userID, commentID string) error
}

// ContentService covers guides, blog posts, and forum topics.
type ContentService interface {
	CreateGuide(ctx context.Context, authorID, title, body string, gameID *string) (*domain.Guide, error)
	ListGuides(ctx context.Context, page, pageSize int) ([]domain.Guide, int64, error)
	GetGuide(ctx context.Context, id string) (*domain.Guide, error)
	DeleteGuide(ctx context.Context, userID, id string) error
	CreateBlogPost(ctx context.Context, authorID, title, body string) (*domain.BlogPost, error)
	ListBlogPosts(ctx context.Context, page, pageSize int) ([]domain.BlogPost, int64, error)
	GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error)
	DeleteBlogPost(ctx context.Context, userID, id string) error
	CreateForumTopic(ctx context.Context, authorID, title, body string) (*domain.ForumTopic, error)
	ListForumTopics(ctx context.Context, page, pageSize int) ([]domain.ForumTopic, int64, error)
	GetForumTopic(ctx context.Context, id string) (*domain.ForumTopic, error)
}

// GameService covers the game catalog.
type GameService interface {
	Create(ctx context.Context, title, summary string, releaseYear int) (*domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Game, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Game, int64, error)
	Update(ctx context.Context, id, title, summary string, releaseYear int) error
	Delete(ctx context.Context, id string) error
}

// AdminService covers the moderation and administration surface.
type AdminService interface {
	Permissions(ctx context.Context, userID string) ([]string, error)
	Grant(ctx context.Context, userID, permission string) error
	Revoke(ctx context.Context, userID, permission string) error
	SetAdminFlag(ctx context.Context, userID string, isAdmin bool) error
	ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	Dashboard(ctx context.Context) (*repo.DashboardStats, error)
	BroadcastSystemMessage(ctx context.Context, message, title string) error
	RemoveGuide(ctx context.Context, id string) error
	RemoveBlogPost(ctx context.Context, id string) error
	RemoveForumTopic(ctx context.Context, id string) error
	RemoveComment(ctx context.Context, id string) error
	LockForumTopic(ctx context.Context, id string, locked bool) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the public and admin APIs.
type Handlers struct {
	notifSvc   NotificationService
	convSvc    ConversationService
	friendSvc  FriendshipService
	commentSvc CommentService
	contentSvc ContentService
	gameSvc    GameService
	adminSvc   AdminService
}

// New constructs a Handlers instance bound to the given services.
func New(
	notifSvc NotificationService,
	convSvc ConversationService,
	friendSvc FriendshipService,
	commentSvc CommentService,
	contentSvc ContentService,
	gameSvc GameService,
	adminSvc AdminService,
) *Handlers {
	return &Handlers{
		notifSvc:   notifSvc,
		convSvc:    convSvc,
		friendSvc:  friendSvc,
		commentSvc: commentSvc,
		contentSvc: contentSvc,
		gameSvc:    gameSvc,
		adminSvc:   adminSvc,
	}
}

// userID extracts the authenticated user id from the Gin context (set by the
// auth middleware). Protected routes are behind Auth(required), so an empty
// result only occurs on optional-auth routes.
func userID(c *gin.Context) string {
	id, _ := middleware.IdentityFrom(c)
	return id.UserID
}

//
// Shared DTO pieces
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// paginate computes metadata for a page of total items.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
