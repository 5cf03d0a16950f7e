// Package domain defines the persistence models for the gaming-community
// platform: users, the game catalog, user-generated content (guides, blog
// posts, forum topics, comments), social features (friendships, conversations,
// messages), notifications, and admin permissions. These types are mapped
// with GORM and form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered member of the community.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: unique display handle.
//   - Email: unique contact address (never exposed in public payloads).
//   - IsAdmin: coarse flag granting access to the admin panel as a whole;
//     fine-grained capabilities are modeled by AdminPermission rows.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type User struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Username  string         `json:"username"   gorm:"type:varchar(32);not null;uniqueIndex"`
	Email     string         `json:"-"          gorm:"type:varchar(255);not null;uniqueIndex"`
	IsAdmin   bool           `json:"is_admin"   gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// AdminPermission grants a single fine-grained capability (e.g.
// "users.manage", "content.manage") to an admin user. A user holds a
// capability iff a row exists; revocation deletes the row.
type AdminPermission struct {
	ID         string         `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID     string         `json:"user_id"    gorm:"type:char(36);not null;index;uniqueIndex:ux_admin_perm_user_name"`
	Permission string         `json:"permission" gorm:"type:varchar(64);not null;uniqueIndex:ux_admin_perm_user_name"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"          gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for AdminPermission.
func (AdminPermission) TableName() string { return "admin_permissions" }

// Game is a catalog entry browsed by the community. Metadata ingestion from
// external providers is out of scope; rows are maintained via the admin API.
type Game struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title"       gorm:"type:varchar(255);not null"`
	Slug        string         `json:"slug"        gorm:"type:varchar(255);not null;uniqueIndex"`
	Summary     string         `json:"summary"     gorm:"type:text"`
	ReleaseYear int            `json:"release_year"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Game.
func (Game) TableName() string { return "games" }

// Guide is a long-form walkthrough or how-to written by a user, optionally
// attached to a catalog game.
type Guide struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	AuthorID  string         `json:"author_id"  gorm:"type:char(36);not null;index"`
	GameID    *string        `json:"game_id,omitempty" gorm:"type:char(36);index"`
	Title     string         `json:"title"      gorm:"type:varchar(255);not null"`
	Slug      string         `json:"slug"       gorm:"type:varchar(255);not null;uniqueIndex"`
	Body      string         `json:"body"       gorm:"type:text;not null"`
	Published bool           `json:"published"  gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Guide.
func (Guide) TableName() string { return "guides" }

// BlogPost is a user-authored article shown on the community blog.
type BlogPost struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	AuthorID  string         `json:"author_id" gorm:"type:char(36);not null;index"`
	Title     string         `json:"title"     gorm:"type:varchar(255);not null"`
	Slug      string         `json:"slug"      gorm:"type:varchar(255);not null;uniqueIndex"`
	Body      string         `json:"body"      gorm:"type:text;not null"`
	Published bool           `json:"published" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for BlogPost.
func (BlogPost) TableName() string { return "blog_posts" }

// ForumTopic is a discussion thread opened by a user.
type ForumTopic struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	AuthorID  string         `json:"author_id" gorm:"type:char(36);not null;index"`
	Title     string         `json:"title"     gorm:"type:varchar(255);not null"`
	Slug      string         `json:"slug"      gorm:"type:varchar(255);not null;uniqueIndex"`
	Body      string         `json:"body"      gorm:"type:text;not null"`
	Locked    bool           `json:"locked"    gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ForumTopic.
func (ForumTopic) TableName() string { return "forum_topics" }

// Comment is attached polymorphically to a content entity (guide, blog post,
// forum topic, conversation). EntityType holds one of the hub entity kind
// strings so the same pair addresses the matching real-time group.
type Comment struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	AuthorID   string         `json:"author_id"   gorm:"type:char(36);not null;index"`
	EntityType string         `json:"entity_type" gorm:"type:varchar(32);not null;index:idx_comment_entity,priority:1"`
	EntityID   string         `json:"entity_id"   gorm:"type:char(36);not null;index:idx_comment_entity,priority:2"`
	Body       string         `json:"body"        gorm:"type:text;not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Friendship status values.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipDeclined = "declined"
)

// Friendship links a requester to an addressee. A single row represents the
// relationship in both directions once accepted; the unique index prevents
// duplicate requests for the same ordered pair.
type Friendship struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	RequesterID string         `json:"requester_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_friendship_pair"`
	AddresseeID string         `json:"addressee_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_friendship_pair"`
	Status      string         `json:"status"       gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','accepted','declined')"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`

	Requester User `json:"-" gorm:"foreignKey:RequesterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Addressee User `json:"-" gorm:"foreignKey:AddresseeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Friendship.
func (Friendship) TableName() string { return "friendships" }

// Conversation is a direct or group message thread.
type Conversation struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Title     string         `json:"title"      gorm:"type:varchar(255)"`
	IsGroup   bool           `json:"is_group"   gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string { return "conversations" }

// ConversationMember records a user's participation in a conversation and
// their read cursor, used to compute unread counts.
type ConversationMember struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string         `json:"conversation_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_conv_member"`
	UserID         string         `json:"user_id"         gorm:"type:char(36);not null;index;uniqueIndex:ux_conv_member"`
	LastReadAt     *time.Time     `json:"last_read_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User         User         `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ConversationMember.
func (ConversationMember) TableName() string { return "conversation_members" }

// Message is a single utterance within a conversation.
type Message struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string         `json:"conversation_id" gorm:"type:char(36);not null;index:idx_conv_msgs,priority:1"`
	SenderID       string         `json:"sender_id"       gorm:"type:char(36);not null;index"`
	Content        string         `json:"content"         gorm:"type:text;not null"`
	CreatedAt      time.Time      `json:"created_at"      gorm:"index:idx_conv_msgs,priority:2"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Sender       User         `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Notification kind values. These mirror the real-time push tags so a client
// can render a durable notification and a live one identically.
const (
	NotificationFriendRequest  = "friend_request"
	NotificationFriendAccepted = "friend_accepted"
	NotificationNewComment     = "new_comment"
	NotificationNewMessage     = "new_message"
	NotificationSystem         = "system"
)

// Notification is the durable record behind a live push. The hub delivers
// best-effort; this row is the source of truth for the notification center.
type Notification struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string         `json:"user_id"     gorm:"type:char(36);not null;index:idx_user_notifs,priority:1"`
	Kind       string         `json:"kind"        gorm:"type:varchar(32);not null"`
	Title      string         `json:"title"       gorm:"type:varchar(255);not null"`
	Body       string         `json:"body"        gorm:"type:text"`
	EntityType string         `json:"entity_type,omitempty" gorm:"type:varchar(32)"`
	EntityID   string         `json:"entity_id,omitempty"   gorm:"type:char(36)"`
	ReadAt     *time.Time     `json:"read_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"  gorm:"index:idx_user_notifs,priority:2"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }
