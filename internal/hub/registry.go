// Package hub implements the real-time presence and notification delivery
// core: connection tracking per user, named broadcast groups, and a
// best-effort dispatcher that fans domain events out to live WebSocket
// clients. Durable notification state lives in the repo layer; everything in
// this package is in-memory and process-local.
package hub

import "sync"

// PresenceListener is invoked when a user transitions between online and
// offline: online on their first active connection, offline when their last
// connection goes away. It is called outside the registry's critical section,
// so implementations may call back into the registry.
type PresenceListener func(userID string, online bool)

// Registry tracks which users are currently reachable over a live transport
// connection. A user may hold several connections at once (multiple tabs or
// devices); a connection belongs to exactly one user.
//
// All methods are safe for concurrent use. The registry is an explicitly
// owned instance created at process start and injected into the hub; tests
// create isolated registries freely.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]map[string]struct{} // userID -> set of connection IDs
	owners map[string]string              // connection ID -> userID

	listener PresenceListener
}

// NewRegistry constructs an empty registry. listener may be nil when no
// presence transitions need to be observed (common in tests).
func NewRegistry(listener PresenceListener) *Registry {
	return &Registry{
		conns:    make(map[string]map[string]struct{}),
		owners:   make(map[string]string),
		listener: listener,
	}
}

// OnConnect records the (userID, connID) mapping. Recording the same pair
// twice is a no-op. If connID was previously owned by a different user (a
// stale mapping from an out-of-order transport notification), the old mapping
// is dropped first. The presence listener fires with online=true when this is
// the user's first active connection.
func (r *Registry) OnConnect(userID, connID string) {
	var transitions []presenceTransition

	r.mu.Lock()
	if prev, ok := r.owners[connID]; ok {
		if prev == userID {
			r.mu.Unlock()
			return
		}
		if last := r.detachLocked(prev, connID); last {
			transitions = append(transitions, presenceTransition{prev, false})
		}
	}
	set, ok := r.conns[userID]
	if !ok {
		set = make(map[string]struct{})
		r.conns[userID] = set
	}
	first := len(set) == 0
	set[connID] = struct{}{}
	r.owners[connID] = userID
	if first {
		transitions = append(transitions, presenceTransition{userID, true})
	}
	r.mu.Unlock()

	r.emit(transitions)
}

// OnDisconnect removes the mapping for whichever user owned connID and
// returns that user's ID. Disconnecting an unknown connection is a no-op and
// returns ok=false. The presence listener fires with online=false when this
// was the user's last connection.
func (r *Registry) OnDisconnect(connID string) (userID string, ok bool) {
	var transitions []presenceTransition

	r.mu.Lock()
	userID, ok = r.owners[connID]
	if !ok {
		r.mu.Unlock()
		return "", false
	}
	if last := r.detachLocked(userID, connID); last {
		transitions = append(transitions, presenceTransition{userID, false})
	}
	r.mu.Unlock()

	r.emit(transitions)
	return userID, true
}

// IsOnline reports whether the user has at least one active connection.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// ListOnlineUsers returns a snapshot of all users with at least one active
// connection. Order is unspecified.
func (r *Registry) ListOnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.conns))
	for userID, set := range r.conns {
		if len(set) > 0 {
			out = append(out, userID)
		}
	}
	return out
}

// ResolveConnection returns one of the user's active connection IDs, or
// ok=false when the user is offline. When several connections exist the
// choice is arbitrary; callers use this advisorily (e.g. to exclude the
// sender from an echo broadcast), never as the authoritative connection.
func (r *Registry) ResolveConnection(userID string) (connID string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id := range r.conns[userID] {
		return id, true
	}
	return "", false
}

// OnlineCount returns the number of distinct online users.
func (r *Registry) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, set := range r.conns {
		if len(set) > 0 {
			n++
		}
	}
	return n
}

// detachLocked removes connID from userID's set and reports whether it was
// the user's last connection. Caller must hold the write lock.
func (r *Registry) detachLocked(userID, connID string) (last bool) {
	delete(r.owners, connID)
	set, ok := r.conns[userID]
	if !ok {
		return false
	}
	if _, had := set[connID]; !had {
		return false
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(r.conns, userID)
		return true
	}
	return false
}

type presenceTransition struct {
	userID string
	online bool
}

// emit delivers presence transitions to the listener, outside the lock.
func (r *Registry) emit(transitions []presenceTransition) {
	if r.listener == nil {
		return
	}
	for _, t := range transitions {
		r.listener(t.userID, t.online)
	}
}
