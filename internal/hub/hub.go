package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Hub owns the live WebSocket clients and implements the Transport interface
// over them. It glues the ConnectionRegistry and the group membership table
// to the actual connections: registering a client records it in the registry
// and joins its private user group; unregistering tears both down.
//
// The hub is constructed once at process start and injected wherever live
// delivery is needed; it keeps no global state.
type Hub struct {
	registry *Registry
	groups   *Groups
	log      zerolog.Logger

	mu      sync.RWMutex
	clients map[string]*Client // connection ID -> client

	dispatcher *Dispatcher
}

// New constructs a Hub with its own registry and group table. Presence
// transitions observed by the registry are re-broadcast as online-status
// messages once a dispatcher is bound.
func New(log zerolog.Logger) *Hub {
	h := &Hub{
		groups:  NewGroups(),
		clients: make(map[string]*Client),
		log:     log,
	}
	h.registry = NewRegistry(h.handlePresence)
	return h
}

// Registry exposes the hub's connection registry for read-side consumers
// (e.g. the friends-online listing).
func (h *Hub) Registry() *Registry { return h.registry }

// Groups exposes the hub's membership table.
func (h *Hub) Groups() *Groups { return h.groups }

// Bind attaches the dispatcher the hub uses for presence broadcasts and
// client-initiated typing frames. Called once during wiring; the dispatcher
// in turn uses the hub as its transport.
func (h *Hub) Bind(d *Dispatcher) { h.dispatcher = d }

// Register adds a connected client: it is recorded in the registry, joined
// to its private user group, and becomes addressable for pushes.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID()] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.registry.OnConnect(c.UserID(), c.ID())
	h.groups.Join(UserGroup(c.UserID()), c.ID())

	connectedClients.Set(float64(n))
	onlineUsers.Set(float64(h.registry.OnlineCount()))
	h.log.Info().Str("user_id", c.UserID()).Str("conn_id", c.ID()).Msg("client connected")
}

// Unregister removes the connection with the given ID: the registry entry,
// every group membership, and the client itself. Unknown connection IDs are
// a no-op, so duplicate disconnect notifications are harmless.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	c, ok := h.clients[connID]
	if ok {
		delete(h.clients, connID)
	}
	n := len(h.clients)
	h.mu.Unlock()

	userID, known := h.registry.OnDisconnect(connID)
	h.groups.DropConnection(connID)
	if ok {
		c.close()
	}
	if !ok && !known {
		return
	}

	connectedClients.Set(float64(n))
	onlineUsers.Set(float64(h.registry.OnlineCount()))
	h.log.Info().Str("user_id", userID).Str("conn_id", connID).Msg("client disconnected")
}

// Subscribe joins the connection to an entity-scoped group (e.g. the client
// opened a conversation and wants its typing indicators).
func (h *Hub) Subscribe(entityType, entityID, connID string) {
	h.groups.Join(EntityGroup(entityType, entityID), connID)
}

// Unsubscribe removes the connection from an entity-scoped group.
func (h *Hub) Unsubscribe(entityType, entityID, connID string) {
	h.groups.Leave(EntityGroup(entityType, entityID), connID)
}

// SendToGroup pushes msg to every current member of the group. Sending to an
// empty or unknown group is a successful no-op: online presence is the
// membership test, there is no queueing for absent recipients.
func (h *Hub) SendToGroup(ctx context.Context, group string, msg PushMessage) error {
	return h.deliver(ctx, h.groups.Members(group), "", msg)
}

// SendToGroupExcept pushes msg to the group, skipping exceptConnID.
func (h *Hub) SendToGroupExcept(ctx context.Context, group, exceptConnID string, msg PushMessage) error {
	return h.deliver(ctx, h.groups.Members(group), exceptConnID, msg)
}

// Broadcast pushes msg to every connected client.
func (h *Hub) Broadcast(ctx context.Context, msg PushMessage) error {
	h.mu.RLock()
	connIDs := make([]string, 0, len(h.clients))
	for id := range h.clients {
		connIDs = append(connIDs, id)
	}
	h.mu.RUnlock()
	return h.deliver(ctx, connIDs, "", msg)
}

// Close tears down every live connection. Called on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		h.Unregister(c.ID())
	}
}

// deliver marshals msg once and enqueues it on every listed connection.
// Connections that are gone or too slow count as failed sends; the frame is
// still delivered to everyone else and only an advisory error is returned.
func (h *Hub) deliver(ctx context.Context, connIDs []string, exceptConnID string, msg PushMessage) error {
	if len(connIDs) == 0 {
		return nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	failed := 0
	for _, connID := range connIDs {
		if connID == exceptConnID {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		h.mu.RLock()
		c, ok := h.clients[connID]
		h.mu.RUnlock()
		if !ok {
			// Already disconnected: treated as a failed send, not retried.
			failed++
			continue
		}
		if !c.enqueue(data) {
			// Slow consumer: drop the connection rather than block the hub.
			failed++
			sendFailures.Inc()
			h.log.Warn().Str("conn_id", connID).Str("tag", msg.Tag).Msg("send buffer full, dropping connection")
			go h.Unregister(connID)
			continue
		}
		pushesTotal.WithLabelValues(msg.Tag).Inc()
	}
	if failed > 0 {
		return fmt.Errorf("push %s: %d of %d sends failed", msg.Tag, failed, len(connIDs))
	}
	return nil
}

// handlePresence is the registry's transition listener. It refreshes the
// presence gauge and re-broadcasts the transition to all clients.
func (h *Hub) handlePresence(userID string, online bool) {
	onlineUsers.Set(float64(h.registry.OnlineCount()))
	if h.dispatcher != nil {
		h.dispatcher.BroadcastOnlineStatus(context.Background(), userID, online)
	}
}
