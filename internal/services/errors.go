// Package services defines the business logic for the gaming-community
// platform: notifications, conversations and messages, friendships, comments,
// the game catalog, user-generated content, and admin operations. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrGameNotFound indicates that the requested catalog entry does not exist.
	ErrGameNotFound = errors.New("game not found")

	// ErrContentNotFound indicates that the requested guide, blog post, or
	// forum topic does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrConversationNotFound indicates that the requested conversation does
	// not exist or is not accessible to the current user.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrNotMember is returned when a user acts on a conversation they do not
	// belong to.
	ErrNotMember = errors.New("not a member of this conversation")

	// ErrNotificationNotFound indicates the notification does not exist, is
	// owned by someone else, or was already read.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmptyContent is returned when a message, comment, or post body is
	// blank after normalization.
	ErrEmptyContent = errors.New("content is empty")

	// ErrTooLong is returned when a body exceeds the configured rune limit.
	ErrTooLong = errors.New("content too long")

	// ErrUnknownEntity is returned when a comment or subscription references
	// an entity kind outside the supported set.
	ErrUnknownEntity = errors.New("unknown entity type")

	// ErrTopicLocked is returned when commenting on a locked forum topic.
	ErrTopicLocked = errors.New("topic is locked")

	// ErrSelfFriendship is returned when a user sends a friend request to
	// themselves.
	ErrSelfFriendship = errors.New("cannot befriend yourself")

	// ErrDuplicateFriendship is returned when a friendship (in any state)
	// already links the two users.
	ErrDuplicateFriendship = errors.New("friendship already exists")

	// ErrFriendshipNotFound indicates the friendship does not exist or was
	// already resolved.
	ErrFriendshipNotFound = errors.New("friendship not found")

	// ErrNotAddressee is returned when someone other than the addressee tries
	// to accept or decline a request.
	ErrNotAddressee = errors.New("only the addressee can resolve this request")

	// ErrNotAuthor is returned when someone other than the author tries to
	// delete a guide, post, or comment.
	ErrNotAuthor = errors.New("only the author can modify this content")

	// ErrDuplicatePermission is returned when granting a permission the user
	// already holds.
	ErrDuplicatePermission = errors.New("permission already granted")
)
