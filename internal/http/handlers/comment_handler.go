// Comment HTTP handlers.
//
// This file exposes REST endpoints for comment threads attached to content
// entities (forum topics, guides, blog posts):
//   - POST   /comments                                (create)
//   - GET    /comments/{entityType}/{entityId}        (list, paginated)
//   - DELETE /comments/{id}                           (author-only delete)
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

// CreateCommentRequest is the JSON payload for posting a comment.
type CreateCommentRequest struct {
	// EntityType names the commented resource kind: ForumTopic, Guide, or BlogPost.
	EntityType string `json:"entity_type" binding:"required" example:"ForumTopic"`
	EntityID   string `json:"entity_id" binding:"required" format:"uuid"`
	Body       string `json:"body" binding:"required,min=1"`
}

// CommentResponse wraps a single comment.
type CommentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

// ListCommentsResponse contains a page of comments, oldest first.
type ListCommentsResponse struct {
	Comments   []domain.Comment `json:"comments"`
	Pagination Pagination       `json:"pagination"`
}

// CreateComment godoc
// @ID          createComment
// @Summary     Post a comment
// @Description Adds a comment under a content entity and notifies its author.
// @Description Locked forum topics reject new comments.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateCommentRequest  true  "Comment payload"
// @Success     201  {object} handlers.CommentResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Entity not found"
// @Failure     423  {object} handlers.ErrorResponse "Topic locked"
// @Router      /comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "entity_type, entity_id and body required")
		return
	}

	cm, err := h.commentSvc.Create(c.Request.Context(), userID(c), req.EntityType, req.EntityID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEntity):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("unknown entity type %q", req.EntityType))
		case errors.Is(err, services.ErrTopicLocked):
			fail(c, http.StatusLocked, ErrCodeTopicLocked, "forum topic is locked")
		case errors.Is(err, services.ErrContentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "entity not found")
		case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, CommentResponse{Comment: cm})
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments under an entity
// @Tags        Comments
// @Produce     json
// @Param       entityType path   string  true  "Entity kind"  Enums(ForumTopic, Guide, BlogPost)
// @Param       entityId   path   string  true  "Entity ID (UUID)"  format(uuid)
// @Param       page       query  int     false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListCommentsResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown entity type"
// @Router      /comments/{entityType}/{entityId} [get]
func (h *Handlers) ListComments(c *gin.Context) {
	entityType := c.Param("entityType")
	entityID := c.Param("entityId")

	page, pageSize := clampPagination(c)
	items, total, err := h.commentSvc.ListPage(c.Request.Context(), entityType, entityID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrUnknownEntity) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("unknown entity type %q", entityType))
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListCommentsResponse{Comments: items, Pagination: paginate(page, pageSize, total)})
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete my comment
// @Tags        Comments
// @Param       id  path  string  true  "Comment ID (UUID)"  format(uuid)
// @Success     204  "Deleted"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not the author"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /comments/{id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	err := h.commentSvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthor):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the author may delete this comment")
		case errors.Is(err, services.ErrContentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
