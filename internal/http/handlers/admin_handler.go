// Admin HTTP handlers.
//
// Every route in this file is mounted behind Auth(required) and the
// PermissionGate, so handlers can assume an authenticated admin whose
// granular permission for the section has already been verified.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

//
// DTOs
//

// DashboardResponse carries platform-wide counters for the admin dashboard.
type DashboardResponse struct {
	Stats *repo.DashboardStats `json:"stats"`
}

// ListUsersResponse contains a page of user accounts.
type ListUsersResponse struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// UserResponse wraps a single user account.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// SetAdminFlagRequest toggles a user's admin flag.
type SetAdminFlagRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// GrantPermissionRequest is the JSON payload for granting a permission.
type GrantPermissionRequest struct {
	Permission string `json:"permission" binding:"required,min=1" example:"content.manage"`
}

// PermissionsResponse lists the granular permissions a user holds.
type PermissionsResponse struct {
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}

// BroadcastRequest is the JSON payload for a platform-wide announcement.
type BroadcastRequest struct {
	Title   string `json:"title" example:"Maintenance window"`
	Message string `json:"message" binding:"required,min=1"`
}

// CreateGameRequest is the JSON payload for adding a catalog entry.
type CreateGameRequest struct {
	Title       string `json:"title" binding:"required,min=1" example:"Hollow Knight"`
	Summary     string `json:"summary"`
	ReleaseYear int    `json:"release_year" binding:"required,min=1950"`
}

// LockTopicRequest toggles the locked state of a forum topic.
type LockTopicRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// failAdminUserErr maps user-targeting admin errors onto the envelope.
func failAdminUserErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, services.ErrDuplicatePermission):
		fail(c, http.StatusConflict, ErrCodeConflict, "permission already granted")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Dashboard & stats
//

// AdminDashboard godoc
// @ID          adminDashboard
// @Summary     Platform dashboard counters
// @Tags        Admin
// @Produce     json
// @Success     200  {object} handlers.DashboardResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Forbidden"
// @Router      /admin/dashboard [get]
func (h *Handlers) AdminDashboard(c *gin.Context) {
	stats, err := h.adminSvc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, DashboardResponse{Stats: stats})
}

//
// Users & permissions
//

// AdminListUsers godoc
// @ID          adminListUsers
// @Summary     List user accounts
// @Tags        Admin
// @Produce     json
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListUsersResponse
// @Router      /admin/users [get]
func (h *Handlers) AdminListUsers(c *gin.Context) {
	page, pageSize := clampPagination(c)
	users, total, err := h.adminSvc.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{Users: users, Pagination: paginate(page, pageSize, total)})
}

// AdminLookupUser godoc
// @ID          adminLookupUser
// @Summary     Look up a user by handle
// @Description Resolves the account behind a username seen in a report or chat log.
// @Tags        Admin
// @Produce     json
// @Param       username  query  string  true  "Username" example(ganyu_main)
// @Success     200  {object} handlers.UserResponse
// @Failure     400  {object} handlers.ErrorResponse "Missing username"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Router      /admin/users/lookup [get]
func (h *Handlers) AdminLookupUser(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username required")
		return
	}
	u, err := h.adminSvc.FindUserByUsername(c.Request.Context(), username)
	if err != nil {
		failAdminUserErr(c, err)
		return
	}
	ok(c, http.StatusOK, UserResponse{User: u})
}

// AdminSetAdminFlag godoc
// @ID          adminSetAdminFlag
// @Summary     Set or clear a user's admin flag
// @Tags        Admin
// @Accept      json
// @Param       id    path  string                         true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.SetAdminFlagRequest   true  "Flag payload"
// @Success     204  "Updated"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Router      /admin/users/{id}/admin [put]
func (h *Handlers) AdminSetAdminFlag(c *gin.Context) {
	var req SetAdminFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAdmin == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "is_admin required")
		return
	}
	if err := h.adminSvc.SetAdminFlag(c.Request.Context(), c.Param("id"), *req.IsAdmin); err != nil {
		failAdminUserErr(c, err)
		return
	}
	noContent(c)
}

// AdminListPermissions godoc
// @ID          adminListPermissions
// @Summary     List a user's granular permissions
// @Tags        Admin
// @Produce     json
// @Param       userId  path  string  true  "User ID (UUID)"  format(uuid)
// @Success     200  {object} handlers.PermissionsResponse
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Router      /admin/permissions/{userId} [get]
func (h *Handlers) AdminListPermissions(c *gin.Context) {
	targetID := c.Param("userId")
	perms, err := h.adminSvc.Permissions(c.Request.Context(), targetID)
	if err != nil {
		failAdminUserErr(c, err)
		return
	}
	ok(c, http.StatusOK, PermissionsResponse{UserID: targetID, Permissions: perms})
}

// AdminGrantPermission godoc
// @ID          adminGrantPermission
// @Summary     Grant a granular permission
// @Tags        Admin
// @Accept      json
// @Param       userId  path  string                            true  "User ID (UUID)"  format(uuid)
// @Param       body    body  handlers.GrantPermissionRequest   true  "Permission payload"
// @Success     204  "Granted"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     409  {object} handlers.ErrorResponse "Already granted"
// @Router      /admin/permissions/{userId} [post]
func (h *Handlers) AdminGrantPermission(c *gin.Context) {
	var req GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "permission required")
		return
	}
	perm := strings.TrimSpace(req.Permission)
	if perm == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "permission required")
		return
	}
	if err := h.adminSvc.Grant(c.Request.Context(), c.Param("userId"), perm); err != nil {
		failAdminUserErr(c, err)
		return
	}
	noContent(c)
}

// AdminRevokePermission godoc
// @ID          adminRevokePermission
// @Summary     Revoke a granular permission
// @Description Revoking a permission the user does not hold is a no-op.
// @Tags        Admin
// @Param       userId      path  string  true  "User ID (UUID)"  format(uuid)
// @Param       permission  path  string  true  "Permission name" example(content.manage)
// @Success     204  "Revoked"
// @Router      /admin/permissions/{userId}/{permission} [delete]
func (h *Handlers) AdminRevokePermission(c *gin.Context) {
	if err := h.adminSvc.Revoke(c.Request.Context(), c.Param("userId"), c.Param("permission")); err != nil {
		failAdminUserErr(c, err)
		return
	}
	noContent(c)
}

//
// Moderation
//

// adminRemove runs one of the service removal calls with uniform error mapping.
func adminRemove(c *gin.Context, what string, remove func() error) {
	if err := remove(); err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, what+" not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// AdminRemoveGuide godoc
// @ID          adminRemoveGuide
// @Summary     Remove a guide (moderation)
// @Tags        Admin
// @Param       id  path  string  true  "Guide ID (UUID)"  format(uuid)
// @Success     204  "Removed"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/guides/{id} [delete]
func (h *Handlers) AdminRemoveGuide(c *gin.Context) {
	ctx := c.Request.Context()
	adminRemove(c, "guide", func() error { return h.adminSvc.RemoveGuide(ctx, c.Param("id")) })
}

// AdminRemoveBlogPost godoc
// @ID          adminRemoveBlogPost
// @Summary     Remove a blog post (moderation)
// @Tags        Admin
// @Param       id  path  string  true  "Post ID (UUID)"  format(uuid)
// @Success     204  "Removed"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/blogs/{id} [delete]
func (h *Handlers) AdminRemoveBlogPost(c *gin.Context) {
	ctx := c.Request.Context()
	adminRemove(c, "blog post", func() error { return h.adminSvc.RemoveBlogPost(ctx, c.Param("id")) })
}

// AdminRemoveForumTopic godoc
// @ID          adminRemoveForumTopic
// @Summary     Remove a forum topic (moderation)
// @Tags        Admin
// @Param       id  path  string  true  "Topic ID (UUID)"  format(uuid)
// @Success     204  "Removed"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/forum/topics/{id} [delete]
func (h *Handlers) AdminRemoveForumTopic(c *gin.Context) {
	ctx := c.Request.Context()
	adminRemove(c, "forum topic", func() error { return h.adminSvc.RemoveForumTopic(ctx, c.Param("id")) })
}

// AdminLockForumTopic godoc
// @ID          adminLockForumTopic
// @Summary     Lock or unlock a forum topic
// @Tags        Admin
// @Accept      json
// @Param       id    path  string                     true  "Topic ID (UUID)"  format(uuid)
// @Param       body  body  handlers.LockTopicRequest  true  "Lock payload"
// @Success     204  "Updated"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/forum/topics/{id}/lock [put]
func (h *Handlers) AdminLockForumTopic(c *gin.Context) {
	var req LockTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Locked == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "locked required")
		return
	}
	ctx := c.Request.Context()
	adminRemove(c, "forum topic", func() error { return h.adminSvc.LockForumTopic(ctx, c.Param("id"), *req.Locked) })
}

// AdminRemoveComment godoc
// @ID          adminRemoveComment
// @Summary     Remove a comment (moderation)
// @Tags        Admin
// @Param       id  path  string  true  "Comment ID (UUID)"  format(uuid)
// @Success     204  "Removed"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/content/comments/{id} [delete]
func (h *Handlers) AdminRemoveComment(c *gin.Context) {
	ctx := c.Request.Context()
	adminRemove(c, "comment", func() error { return h.adminSvc.RemoveComment(ctx, c.Param("id")) })
}

//
// Game catalog management
//

// AdminCreateGame godoc
// @ID          adminCreateGame
// @Summary     Add a game to the catalog
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateGameRequest  true  "Game payload"
// @Success     201  {object} handlers.GameResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Router      /admin/games [post]
func (h *Handlers) AdminCreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and release_year required")
		return
	}
	g, err := h.gameSvc.Create(c.Request.Context(), strings.TrimSpace(req.Title), req.Summary, req.ReleaseYear)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, GameResponse{Game: g})
}

// AdminUpdateGame godoc
// @ID          adminUpdateGame
// @Summary     Update a catalog entry
// @Tags        Admin
// @Accept      json
// @Param       id    path  string                      true  "Game ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CreateGameRequest  true  "Game payload"
// @Success     204  "Updated"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/games/{id} [put]
func (h *Handlers) AdminUpdateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and release_year required")
		return
	}
	err := h.gameSvc.Update(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Title), req.Summary, req.ReleaseYear)
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "game not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// AdminDeleteGame godoc
// @ID          adminDeleteGame
// @Summary     Delete a catalog entry
// @Tags        Admin
// @Param       id  path  string  true  "Game ID (UUID)"  format(uuid)
// @Success     204  "Deleted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /admin/games/{id} [delete]
func (h *Handlers) AdminDeleteGame(c *gin.Context) {
	err := h.gameSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "game not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

//
// System
//

// AdminBroadcast godoc
// @ID          adminBroadcast
// @Summary     Broadcast a system announcement
// @Description Persists a system notification per user and pushes it to every live connection.
// @Tags        Admin
// @Accept      json
// @Param       body  body  handlers.BroadcastRequest  true  "Announcement payload"
// @Success     204  "Broadcast"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Router      /admin/system/broadcast [post]
func (h *Handlers) AdminBroadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}
	if err := h.adminSvc.BroadcastSystemMessage(c.Request.Context(), req.Message, req.Title); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
