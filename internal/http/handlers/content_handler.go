// Content HTTP handlers.
//
// This file exposes REST endpoints for authored content:
//   - guides:       POST/GET /guides, GET /guides/{id}, DELETE /guides/{id}
//   - blog posts:   POST/GET /blogs,  GET /blogs/{id},  DELETE /blogs/{id}
//   - forum topics: POST/GET /forum/topics, GET /forum/topics/{id}
//
// Listing and reading are public; creation and deletion require an
// authenticated caller. Deletion is author-only at the service layer.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

//
// DTOs
//

// CreateGuideRequest is the JSON payload for publishing a guide.
type CreateGuideRequest struct {
	Title string `json:"title" binding:"required,min=1" example:"Malenia cheese strategy"`
	Body  string `json:"body" binding:"required,min=1"`
	// GameID optionally links the guide to a catalog entry.
	GameID *string `json:"game_id,omitempty" format:"uuid"`
}

// CreatePostRequest is the JSON payload for blog posts and forum topics.
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,min=1"`
	Body  string `json:"body" binding:"required,min=1"`
}

// GuideResponse wraps a single guide.
type GuideResponse struct {
	Guide *domain.Guide `json:"guide"`
}

// ListGuidesResponse contains a page of guides.
type ListGuidesResponse struct {
	Guides     []domain.Guide `json:"guides"`
	Pagination Pagination     `json:"pagination"`
}

// BlogPostResponse wraps a single blog post.
type BlogPostResponse struct {
	Post *domain.BlogPost `json:"post"`
}

// ListBlogPostsResponse contains a page of blog posts.
type ListBlogPostsResponse struct {
	Posts      []domain.BlogPost `json:"posts"`
	Pagination Pagination        `json:"pagination"`
}

// ForumTopicResponse wraps a single forum topic.
type ForumTopicResponse struct {
	Topic *domain.ForumTopic `json:"topic"`
}

// ListForumTopicsResponse contains a page of forum topics.
type ListForumTopicsResponse struct {
	Topics     []domain.ForumTopic `json:"topics"`
	Pagination Pagination          `json:"pagination"`
}

// failContentErr maps content service errors onto the envelope.
func failContentErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "content not found")
	case errors.Is(err, services.ErrEmptyContent):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and body required")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Guides
//

// CreateGuide godoc
// @ID          createGuide
// @Summary     Publish a guide
// @Tags        Guides
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateGuideRequest  true  "Guide payload"
// @Success     201  {object} handlers.GuideResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Router      /guides [post]
func (h *Handlers) CreateGuide(c *gin.Context) {
	var req CreateGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and body required")
		return
	}
	g, err := h.contentSvc.CreateGuide(c.Request.Context(), userID(c), strings.TrimSpace(req.Title), req.Body, req.GameID)
	if err != nil {
		failContentErr(c, err)
		return
	}
	ok(c, http.StatusCreated, GuideResponse{Guide: g})
}

// ListGuides godoc
// @ID          listGuides
// @Summary     List guides
// @Tags        Guides
// @Produce     json
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListGuidesResponse
// @Router      /guides [get]
func (h *Handlers) ListGuides(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.contentSvc.ListGuides(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListGuidesResponse{Guides: items, Pagination: paginate(page, pageSize, total)})
}

// GetGuide godoc
// @ID          getGuide
// @Summary     Fetch one guide
// @Tags        Guides
// @Produce     json
// @Param       id  path  string  true  "Guide ID (UUID)"  format(uuid)
// @Success     200  {object} handlers.GuideResponse
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /guides/{id} [get]
func (h *Handlers) GetGuide(c *gin.Context) {
	g, err := h.contentSvc.GetGuide(c.Request.Context(), c.Param("id"))
	if err != nil {
		failContentErr(c, err)
		return
	}
	ok(c, http.StatusOK, GuideResponse{Guide: g})
}

// DeleteGuide godoc
// @ID          deleteGuide
// @Summary     Delete my guide
// @Tags        Guides
// @Param       id  path  string  true  "Guide ID (UUID)"  format(uuid)
// @Success     204  "Deleted"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not the author"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /guides/{id} [delete]
func (h *Handlers) DeleteGuide(c *gin.Context) {
	err := h.contentSvc.DeleteGuide(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotAuthor) {
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the author may delete this guide")
			return
		}
		failContentErr(c, err)
		return
	}
	noContent(c)
}

//
// Blog posts
//

// CreateBlogPost godoc
// @ID          createBlogPost
// @Summary     Publish a blog post
// @Tags        Blog
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreatePostRequest  true  "Post payload"
// @Success     201  {object} handlers.BlogPostResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Router      /blogs [post]
func (h *Handlers) CreateBlogPost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and body required")
		return
	}
	p, err := h.contentSvc.CreateBlogPost(c.Request.Context(), userID(c), strings.TrimSpace(req.Title), req.Body)
	if err != nil {
		failContentErr(c, err)
		return
	}
	ok(c, http.StatusCreated, BlogPostResponse{Post: p})
}

// ListBlogPosts godoc
// @ID          listBlogPosts
// @Summary     List blog posts
// @Tags        Blog
// @Produce     json
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListBlogPostsResponse
// @Router      /blogs [get]
func (h *Handlers) ListBlogPosts(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.contentSvc.ListBlogPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListBlogPostsResponse{Posts: items, Pagination: paginate(page, pageSize, total)})
}

// GetBlogPost godoc
// @ID          getBlogPost
// @Summary     Fetch one blog post
// @Tags        Blog
// @Produce     json
// @Param       id  path  string  true  "Post ID (UUID)"  format(uuid)
// @Success     200  {object} handlers.BlogPostResponse
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /blogs/{id} [get]
func (h *Handlers) GetBlogPost(c *gin.Context) {
	p, err := h.contentSvc.GetBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		failContentErr(c, err)
		return
	}
	ok(c, http.StatusOK, BlogPostResponse{Post: p})
}

// DeleteBlogPost godoc
// @ID          deleteBlogPost
// @Summary     Delete my blog post
// @Tags        Blog
// @Param       id  path  string  true  "Post ID (UUID)"  format(uuid)
// @Success     204  "Deleted"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not the author"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /blogs/{id} [delete]
func (h *Handlers) DeleteBlogPost(c *gin.Context) {
	err := h.contentSvc.DeleteBlogPost(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotAuthor) {
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the author may delete this post")
			return
		}
		failContentErr(c, err)
		return
	}
	noContent(c)
}

//
// Forum topics
//

// CreateForumTopic godoc
// @ID          createForumTopic
// @Summary     Open a forum topic
// @Tags        Forum
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreatePostRequest  true  "Topic payload"
// @Success     201  {object} handlers.ForumTopicResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Router      /forum/topics [post]
func (h *Handlers) CreateForumTopic(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and body required")
		return
	}
	t, err := h.contentSvc.CreateForumTopic(c.Request.Context(), userID(c), strings.TrimSpace(req.Title), req.Body)
	if err != nil {
		failContentErr(c, err)
		return
	}
	ok(c, http.StatusCreated, ForumTopicResponse{Topic: t})
}

// ListForumTopics godoc
// @ID          listForumTopics
// @Summary     List forum topics
// @Tags        Forum
// @Produce     json
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListForumTopicsResponse
// @Router      /forum/topics [get]
func (h *Handlers) ListForumTopics(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.contentSvc.ListForumTopics(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListForumTopicsResponse{Topics: items, Pagination: paginate(page, pageSize, total)})
}

// GetForumTopic godoc
// @ID          getForumTopic
// @Summary     Fetch one forum topic
// @Tags        Forum
// @Produce     json
// @Param       id  path  string  true  "Topic ID (UUID)"  format(uuid)
// @Success     200  {object} handlers.ForumTopicResponse
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /forum/topics/{id} [get]
func (h *Handlers) GetForumTopic(c *gin.Context) {
	t, err := h.contentSvc.GetForumTopic(c.Request.Context(), c.Param("id"))
	if err != nil {
		failContentErr(c, err)
		return
	}
	ok(c, http.StatusOK, ForumTopicResponse{Topic: t})
}
