package hub

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Transport delivers a tagged payload to an addressed set of connections.
// The Hub is the production implementation; tests substitute fakes.
//
// Sends are best-effort: a recipient whose connection is gone by the time the
// send executes is simply skipped. Errors describe transport-level trouble
// (e.g. a slow consumer being dropped) and are advisory.
type Transport interface {
	// SendToGroup pushes msg to every current member of the group. Sending
	// to an empty or unknown group is a successful no-op.
	SendToGroup(ctx context.Context, group string, msg PushMessage) error

	// SendToGroupExcept behaves like SendToGroup but skips the connection
	// with the given ID. An empty exceptConnID skips nothing.
	SendToGroupExcept(ctx context.Context, group, exceptConnID string, msg PushMessage) error

	// Broadcast pushes msg to every connected client.
	Broadcast(ctx context.Context, msg PushMessage) error
}

// Dispatcher converts domain events into zero or more group-addressed pushes.
// Delivery is best-effort and at-most-once: if the target user has no active
// connection the push silently evaporates, and any transport failure is
// logged and swallowed. A failed push must never surface to, or roll back,
// the business operation that triggered it; the durable notification record
// written beforehand remains the source of truth.
type Dispatcher struct {
	transport Transport
	registry  *Registry
	log       zerolog.Logger
}

// NewDispatcher constructs a Dispatcher over the given transport. The
// registry is consulted only for advisory connection resolution (excluding a
// sender from their own typing echo).
func NewDispatcher(transport Transport, registry *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{transport: transport, registry: registry, log: log}
}

// SendToUser pushes a notification payload to the user's private group.
func (d *Dispatcher) SendToUser(ctx context.Context, userID string, n NotificationPayload) {
	d.push(ctx, UserGroup(userID), PushMessage{Tag: TagReceiveNotification, Payload: n})
}

// SendToUsers fans SendToUser out concurrently for each recipient and returns
// once every send has been attempted. Individual failures are absorbed;
// partial delivery is expected and is not an error condition for the caller.
func (d *Dispatcher) SendToUsers(ctx context.Context, userIDs []string, n NotificationPayload) {
	var g errgroup.Group
	for _, userID := range userIDs {
		g.Go(func() error {
			d.SendToUser(ctx, userID, n)
			return nil
		})
	}
	// Sends never propagate errors; Wait only joins the goroutines.
	_ = g.Wait()
}

// SendUnreadCountUpdate pushes the user's new unread notification count.
func (d *Dispatcher) SendUnreadCountUpdate(ctx context.Context, userID string, count int64) {
	d.push(ctx, UserGroup(userID), PushMessage{Tag: TagUpdateUnreadCount, Payload: UnreadCountPayload{Count: count}})
}

// BroadcastSystemMessage announces an operator message to every connection.
func (d *Dispatcher) BroadcastSystemMessage(ctx context.Context, message, title string) {
	msg := PushMessage{Tag: TagReceiveSystemMessage, Payload: SystemMessagePayload{Title: title, Message: message}}
	if err := d.transport.Broadcast(ctx, msg); err != nil {
		d.log.Warn().Err(err).Str("tag", msg.Tag).Msg("broadcast failed")
	}
}

// SendTypingIndicator pushes a typing (or stopped-typing) frame to the
// entity's group, excluding the sender's own connection so they never see
// their own echo. When the sender holds several connections, one arbitrary
// connection is excluded; the others are treated as ordinary room members.
func (d *Dispatcher) SendTypingIndicator(ctx context.Context, userID, entityType, entityID string, isTyping bool) {
	tag := TagUserStoppedTyping
	if isTyping {
		tag = TagUserTyping
	}
	msg := PushMessage{Tag: tag, Payload: TypingPayload{UserID: userID, EntityType: entityType, EntityID: entityID}}

	group := EntityGroup(entityType, entityID)
	exceptConnID, _ := d.registry.ResolveConnection(userID)
	if err := d.transport.SendToGroupExcept(ctx, group, exceptConnID, msg); err != nil {
		d.log.Warn().Err(err).Str("group", group).Str("tag", tag).Msg("typing push failed")
	}
}

// BroadcastOnlineStatus announces a presence transition to every connection.
// Unlike typing indicators, the acting user's own connections are included.
func (d *Dispatcher) BroadcastOnlineStatus(ctx context.Context, userID string, isOnline bool) {
	msg := PushMessage{Tag: TagOnlineStatusChanged, Payload: OnlineStatusPayload{UserID: userID, IsOnline: isOnline}}
	if err := d.transport.Broadcast(ctx, msg); err != nil {
		d.log.Warn().Err(err).Str("user_id", userID).Msg("online status broadcast failed")
	}
}

// push delivers to a single group, logging and swallowing any failure.
func (d *Dispatcher) push(ctx context.Context, group string, msg PushMessage) {
	if err := d.transport.SendToGroup(ctx, group, msg); err != nil {
		d.log.Warn().Err(err).Str("group", group).Str("tag", msg.Tag).Msg("push failed")
	}
}
