// Package services – FriendshipService
//
// This file implements the FriendshipService: friend requests with an
// accept/decline lifecycle, recipient notifications, and the friends listing
// enriched with live presence from the hub registry.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
)

// Friend is a friends-list entry with the friend's current presence.
type Friend struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

// FriendshipService provides the friend-request lifecycle.
type FriendshipService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Notifier creates durable notifications for request/accept events.
	Notifier Notifier
	// Registry answers presence queries for the friends listing. May be nil
	// (all friends then report offline).
	Registry *hub.Registry
}

// NewFriendshipService constructs a FriendshipService.
func NewFriendshipService(db *gorm.DB, notifier Notifier, registry *hub.Registry) *FriendshipService {
	return &FriendshipService{DB: db, Notifier: notifier, Registry: registry}
}

// Request creates a pending friend request and notifies the addressee.
// Requests to oneself and duplicate relationships (in any state, either
// direction) are rejected.
func (s *FriendshipService) Request(ctx context.Context, requesterID, addresseeID string) (*domain.Friendship, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfFriendship
	}
	requester, err := repo.GetUser(ctx, s.DB, requesterID)
	if err != nil {
		return nil, translateUserErr(err)
	}
	if _, err := repo.GetUser(ctx, s.DB, addresseeID); err != nil {
		return nil, translateUserErr(err)
	}
	if _, err := repo.GetFriendshipBetween(ctx, s.DB, requesterID, addresseeID); err == nil {
		return nil, ErrDuplicateFriendship
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f, err := repo.CreateFriendship(ctx, s.DB, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		_, _ = s.Notifier.Notify(ctx, addresseeID,
			domain.NotificationFriendRequest, "Friend request",
			requester.Username+" wants to be your friend", "", f.ID)
	}
	return f, nil
}

// Accept transitions a pending request to accepted and notifies the
// requester. Only the addressee may accept; a request that was already
// resolved surfaces as ErrFriendshipNotFound.
func (s *FriendshipService) Accept(ctx context.Context, userID, friendshipID string) error {
	return s.resolve(ctx, userID, friendshipID, domain.FriendshipAccepted)
}

// Decline transitions a pending request to declined. The requester is not
// notified.
func (s *FriendshipService) Decline(ctx context.Context, userID, friendshipID string) error {
	return s.resolve(ctx, userID, friendshipID, domain.FriendshipDeclined)
}

// Friends returns the user's accepted friends with their live presence.
func (s *FriendshipService) Friends(ctx context.Context, userID string) ([]Friend, error) {
	ids, err := repo.ListFriendIDs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Friend, 0, len(ids))
	for _, id := range ids {
		u, err := repo.GetUser(ctx, s.DB, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // friend was deleted
			}
			return nil, err
		}
		online := false
		if s.Registry != nil {
			online = s.Registry.IsOnline(id)
		}
		out = append(out, Friend{UserID: id, Username: u.Username, Online: online})
	}
	return out, nil
}

// Pending returns requests awaiting the user's decision.
func (s *FriendshipService) Pending(ctx context.Context, userID string) ([]domain.Friendship, error) {
	return repo.ListPendingFor(ctx, s.DB, userID)
}

func (s *FriendshipService) resolve(ctx context.Context, userID, friendshipID, status string) error {
	f, err := repo.GetFriendship(ctx, s.DB, friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendshipNotFound
		}
		return err
	}
	if f.AddresseeID != userID {
		return ErrNotAddressee
	}
	if err := repo.UpdateFriendshipStatus(ctx, s.DB, friendshipID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost a race with another resolution of the same request.
			return ErrFriendshipNotFound
		}
		return err
	}

	if status == domain.FriendshipAccepted && s.Notifier != nil {
		addressee, err := repo.GetUser(ctx, s.DB, userID)
		name := "Your request"
		if err == nil {
			name = addressee.Username
		}
		_, _ = s.Notifier.Notify(ctx, f.RequesterID,
			domain.NotificationFriendAccepted, "Friend request accepted",
			name+" accepted your friend request", "", f.ID)
	}
	return nil
}

func translateUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
