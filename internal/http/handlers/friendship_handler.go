// Friendship HTTP handlers.
//
// This file exposes REST endpoints for the friend graph:
//   - POST /friends/requests               (send a request)
//   - PUT  /friends/requests/{id}/accept   (addressee accepts)
//   - PUT  /friends/requests/{id}/decline  (addressee declines)
//   - GET  /friends                        (accepted friends with presence)
//   - GET  /friends/requests               (pending requests addressed to me)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

// FriendRequestRequest is the JSON payload for sending a friend request.
type FriendRequestRequest struct {
	// AddresseeID is the user the request is sent to.
	AddresseeID string `json:"addressee_id" binding:"required" format:"uuid"`
}

// FriendshipResponse wraps a single friendship row.
type FriendshipResponse struct {
	Friendship *domain.Friendship `json:"friendship"`
}

// ListFriendsResponse contains accepted friends with live presence.
type ListFriendsResponse struct {
	Friends []services.Friend `json:"friends"`
}

// ListFriendRequestsResponse contains pending requests addressed to the caller.
type ListFriendRequestsResponse struct {
	Requests []domain.Friendship `json:"requests"`
}

// failFriendshipErr maps friendship service errors onto the envelope.
func failFriendshipErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, services.ErrFriendshipNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "friend request not found")
	case errors.Is(err, services.ErrSelfFriendship):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot befriend yourself")
	case errors.Is(err, services.ErrDuplicateFriendship):
		fail(c, http.StatusConflict, ErrCodeConflict, "friendship already exists")
	case errors.Is(err, services.ErrNotAddressee):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "only the addressee may resolve this request")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// SendFriendRequest godoc
// @ID          sendFriendRequest
// @Summary     Send a friend request
// @Description Creates a pending friendship and notifies the addressee.
// @Tags        Friends
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.FriendRequestRequest  true  "Request payload"
// @Success     201  {object} handlers.FriendshipResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "User not found"
// @Failure     409  {object} handlers.ErrorResponse "Already exists"
// @Router      /friends/requests [post]
func (h *Handlers) SendFriendRequest(c *gin.Context) {
	var req FriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "addressee_id required")
		return
	}
	if _, err := uuid.Parse(req.AddresseeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "addressee_id must be a UUID")
		return
	}

	f, err := h.friendSvc.Request(c.Request.Context(), userID(c), req.AddresseeID)
	if err != nil {
		failFriendshipErr(c, err)
		return
	}
	ok(c, http.StatusCreated, FriendshipResponse{Friendship: f})
}

// AcceptFriendRequest godoc
// @ID          acceptFriendRequest
// @Summary     Accept a friend request
// @Description Accepts a pending request; only the addressee may accept, and only once.
// @Tags        Friends
// @Param       id  path  string  true  "Friendship ID (UUID)"  format(uuid)
// @Success     204  "Accepted"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not the addressee"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Router      /friends/requests/{id}/accept [put]
func (h *Handlers) AcceptFriendRequest(c *gin.Context) {
	if err := h.friendSvc.Accept(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failFriendshipErr(c, err)
		return
	}
	noContent(c)
}

// DeclineFriendRequest godoc
// @ID          declineFriendRequest
// @Summary     Decline a friend request
// @Tags        Friends
// @Param       id  path  string  true  "Friendship ID (UUID)"  format(uuid)
// @Success     204  "Declined"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     403  {object} handlers.ErrorResponse "Not the addressee"
// @Failure     404  {object} handlers.ErrorResponse "Request not found"
// @Router      /friends/requests/{id}/decline [put]
func (h *Handlers) DeclineFriendRequest(c *gin.Context) {
	if err := h.friendSvc.Decline(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		failFriendshipErr(c, err)
		return
	}
	noContent(c)
}

// ListFriends godoc
// @ID          listFriends
// @Summary     List my friends
// @Description Returns accepted friends together with their live online flag.
// @Tags        Friends
// @Produce     json
// @Success     200  {object} handlers.ListFriendsResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /friends [get]
func (h *Handlers) ListFriends(c *gin.Context) {
	friends, err := h.friendSvc.Friends(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListFriendsResponse{Friends: friends})
}

// ListFriendRequests godoc
// @ID          listFriendRequests
// @Summary     List pending friend requests addressed to me
// @Tags        Friends
// @Produce     json
// @Success     200  {object} handlers.ListFriendRequestsResponse
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /friends/requests [get]
func (h *Handlers) ListFriendRequests(c *gin.Context) {
	reqs, err := h.friendSvc.Pending(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListFriendRequestsResponse{Requests: reqs})
}
