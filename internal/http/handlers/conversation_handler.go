// Conversation HTTP handlers.
//
// This file exposes REST endpoints for direct-message conversations:
//   - POST /conversations                      (start a conversation)
//   - GET  /conversations                      (list my conversations)
//   - POST /conversations/{id}/messages        (send a message)
//   - GET  /conversations/{id}/messages        (list, paginated)
//   - PUT  /conversations/{id}/read            (advance my read cursor)
//   - GET  /conversations/{id}/unread-count    (unread counter)
//   - POST /conversations/{id}/typing          (typing indicator relay)
//
// Message content is normalized at the edge (line endings, blank-line runs)
// before the service applies its own length guard.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

//
// DTOs
//

// StartConversationRequest is the JSON payload for creating a conversation.
type StartConversationRequest struct {
	// Title optionally names the conversation; group chats usually set it.
	Title string `json:"title" example:"Raid night planning"`
	// MemberIDs are the other participants; the creator is always included.
	MemberIDs []string `json:"member_ids" binding:"required,min=1"`
}

// SendMessageRequest is the JSON payload for posting a message.
type SendMessageRequest struct {
	// Content is the message body. It must be non-empty after normalization.
	Content string `json:"content" binding:"required,min=1" example:"gg, same time tomorrow?"`
}

// TypingRequest toggles the caller's typing indicator in a conversation.
type TypingRequest struct {
	IsTyping bool `json:"is_typing"`
}

// ConversationResponse wraps a single conversation.
type ConversationResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
}

// ListConversationsResponse contains the caller's conversations.
type ListConversationsResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
}

// MessageResponse wraps a single created message.
type MessageResponse struct {
	Message *domain.Message `json:"message"`
}

// ListMessagesResponse contains a page of messages and pagination metadata.
type ListMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeContent normalizes user text for consistent downstream behavior:
//   - converts CRLF/CR to LF,
//   - collapses runs of 3+ LFs to exactly two (paragraph separation),
//   - trims surrounding whitespace.
func sanitizeContent(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// discoverMaxContentRunes inspects the concrete service for a configured
// message-length limit. If unavailable, it returns a conservative fallback.
func discoverMaxContentRunes(convSvc ConversationService) int {
	const fallback = 4000
	if ms, ok := convSvc.(*services.MessageService); ok {
		if ms.MaxContentRunes > 0 {
			return ms.MaxContentRunes
		}
	}
	return fallback
}

// failConversationErr maps conversation service errors onto the envelope.
func failConversationErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConversationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
	case errors.Is(err, services.ErrNotMember):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "not a member of this conversation")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Handlers
//

// StartConversation godoc
// @ID          startConversation
// @Summary     Start a conversation
// @Description Creates a conversation between the caller and the listed members.
// @Tags        Conversations
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.StartConversationRequest  true  "Conversation payload"
// @Success     201  {object} handlers.ConversationResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /conversations [post]
func (h *Handlers) StartConversation(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "member_ids required")
		return
	}
	for _, id := range req.MemberIDs {
		if _, err := uuid.Parse(id); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "member ids must be UUIDs")
			return
		}
	}

	conv, err := h.convSvc.StartConversation(c.Request.Context(), userID(c), strings.TrimSpace(req.Title), req.MemberIDs)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "member not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, ConversationResponse{Conversation: conv})
}

// ListConversations godoc
// @ID          listConversations
// @Summary     List my conversations
// @Tags        Conversations
// @Produce     json
// @Success     200  {object} handlers.ListConversationsResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /conversations [get]
func (h *Handlers) ListConversations(c *gin.Context) {
	items, err := h.convSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListConversationsResponse{Conversations: items})
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message
// @Description Appends a message to the conversation and notifies the other members.
// @Tags        Conversations
// @Accept      json
// @Produce     json
// @Param       id    path  string                       true  "Conversation ID (UUID)"  format(uuid)
// @Param       body  body  handlers.SendMessageRequest  true  "Message payload"
// @Success     201  {object} handlers.MessageResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not a member"
// @Failure     404  {object} handlers.ErrorResponse "Conversation not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /conversations/{id}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	convID := c.Param("id")
	if _, err := uuid.Parse(convID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "conversation id must be a UUID")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	content := sanitizeContent(req.Content)
	maxRunes := discoverMaxContentRunes(h.convSvc)
	if maxRunes > 0 && utf8.RuneCountInString(content) > maxRunes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("content too long: max %d runes", maxRunes))
		return
	}
	if content == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	m, err := h.convSvc.Send(c.Request.Context(), userID(c), convID, content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("content too long: max %d runes", maxRunes))
		default:
			failConversationErr(c, err)
		}
		return
	}
	ok(c, http.StatusCreated, MessageResponse{Message: m})
}

// ListConversationMessages godoc
// @ID          listConversationMessages
// @Summary     List messages in a conversation
// @Description Returns a paginated list of messages, oldest first. Members only.
// @Tags        Conversations
// @Produce     json
// @Param       id         path   string  true  "Conversation ID (UUID)"  format(uuid)
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListMessagesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not a member"
// @Failure     404  {object} handlers.ErrorResponse "Conversation not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /conversations/{id}/messages [get]
func (h *Handlers) ListConversationMessages(c *gin.Context) {
	convID := c.Param("id")
	if _, err := uuid.Parse(convID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "conversation id must be a UUID")
		return
	}

	page, pageSize := clampPagination(c)
	items, total, err := h.convSvc.ListMessages(c.Request.Context(), userID(c), convID, page, pageSize)
	if err != nil {
		failConversationErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListMessagesResponse{
		Messages:   items,
		Pagination: paginate(page, pageSize, total),
	})
}

// MarkConversationRead godoc
// @ID          markConversationRead
// @Summary     Mark a conversation as read
// @Description Advances the caller's read cursor to now.
// @Tags        Conversations
// @Param       id  path  string  true  "Conversation ID (UUID)"  format(uuid)
// @Success     204  "Marked"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not a member"
// @Failure     404  {object} handlers.ErrorResponse "Conversation not found"
// @Router      /conversations/{id}/read [put]
func (h *Handlers) MarkConversationRead(c *gin.Context) {
	if err := h.convSvc.MarkRead(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failConversationErr(c, err)
		return
	}
	noContent(c)
}

// ConversationUnreadCount godoc
// @ID          conversationUnreadCount
// @Summary     Count unread messages in a conversation
// @Tags        Conversations
// @Produce     json
// @Param       id  path  string  true  "Conversation ID (UUID)"  format(uuid)
// @Success     200  {object} handlers.UnreadCountResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not a member"
// @Failure     404  {object} handlers.ErrorResponse "Conversation not found"
// @Router      /conversations/{id}/unread-count [get]
func (h *Handlers) ConversationUnreadCount(c *gin.Context) {
	n, err := h.convSvc.UnreadCount(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		failConversationErr(c, err)
		return
	}
	ok(c, http.StatusOK, UnreadCountResponse{UnreadCount: n})
}

// Typing godoc
// @ID          typing
// @Summary     Relay a typing indicator
// @Description Pushes a typing/stopped-typing event to the other members' live connections.
// @Tags        Conversations
// @Accept      json
// @Param       id    path  string                  true  "Conversation ID (UUID)"  format(uuid)
// @Param       body  body  handlers.TypingRequest  true  "Typing state"
// @Success     204  "Relayed"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not a member"
// @Failure     404  {object} handlers.ErrorResponse "Conversation not found"
// @Router      /conversations/{id}/typing [post]
func (h *Handlers) Typing(c *gin.Context) {
	var req TypingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid payload")
		return
	}
	if err := h.convSvc.Typing(c.Request.Context(), userID(c), c.Param("id"), req.IsTyping); err != nil {
		failConversationErr(c, err)
		return
	}
	noContent(c)
}
