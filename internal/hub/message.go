package hub

import "time"

// Push message tags. The client switches on the tag to route a frame to the
// right UI surface (notification toast, unread badge, typing dots, presence
// indicator).
const (
	TagReceiveNotification  = "ReceiveNotification"
	TagUpdateUnreadCount    = "UpdateUnreadCount"
	TagReceiveSystemMessage = "ReceiveSystemMessage"
	TagUserTyping           = "UserTyping"
	TagUserStoppedTyping    = "UserStoppedTyping"
	TagOnlineStatusChanged  = "UserOnlineStatusChanged"
)

// PushMessage is the envelope written to WebSocket clients.
type PushMessage struct {
	Tag     string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// NotificationPayload is the live-push projection of a durable notification
// record. The durable row remains the source of truth; this payload only
// saves the client a refetch.
type NotificationPayload struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UnreadCountPayload carries the new unread notification count for a user.
type UnreadCountPayload struct {
	Count int64 `json:"count"`
}

// SystemMessagePayload is an operator announcement broadcast to everyone.
type SystemMessagePayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// TypingPayload identifies who is typing where.
type TypingPayload struct {
	UserID     string `json:"user_id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

// OnlineStatusPayload announces a user's presence transition.
type OnlineStatusPayload struct {
	UserID   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
}
