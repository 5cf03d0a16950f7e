package hub

import "sync"

// Entity kind strings used to derive entity-scoped group names. Callers never
// fabricate group names outside UserGroup and EntityGroup, which keeps the
// two families disjoint.
const (
	EntityConversation = "Conversation"
	EntityForumTopic   = "ForumTopic"
	EntityGuide        = "Guide"
	EntityBlogPost     = "BlogPost"
)

// UserGroup derives the private delivery group for a user. Every connection
// of the user joins it on connect and leaves it on disconnect.
func UserGroup(userID string) string { return "User_" + userID }

// EntityGroup derives the room-scoped group for an entity (conversation,
// forum topic, ...). Connections join it when the client explicitly
// subscribes, e.g. on opening a conversation.
func EntityGroup(entityType, entityID string) string { return entityType + "_" + entityID }

// Groups maintains the rosters used for addressed broadcast. Joining a group
// twice and leaving a group never joined are both no-ops: the transport
// delivers connect/disconnect notifications with no ordering guarantee, and
// membership tracking must absorb that.
//
// All methods are safe for concurrent use.
type Groups struct {
	mu      sync.RWMutex
	members map[string]map[string]struct{} // group name -> set of connection IDs
	joined  map[string]map[string]struct{} // connection ID -> set of group names
}

// NewGroups constructs an empty membership table.
func NewGroups() *Groups {
	return &Groups{
		members: make(map[string]map[string]struct{}),
		joined:  make(map[string]map[string]struct{}),
	}
}

// Join adds connID to the named group. Idempotent.
func (g *Groups) Join(group, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.members[group]
	if !ok {
		set = make(map[string]struct{})
		g.members[group] = set
	}
	set[connID] = struct{}{}

	groups, ok := g.joined[connID]
	if !ok {
		groups = make(map[string]struct{})
		g.joined[connID] = groups
	}
	groups[group] = struct{}{}
}

// Leave removes connID from the named group. Leaving a group the connection
// never joined is a no-op.
func (g *Groups) Leave(group, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.leaveLocked(group, connID)
}

// DropConnection removes connID from every group it joined. Called on
// disconnect so a vanished connection never lingers in entity rosters.
func (g *Groups) DropConnection(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for group := range g.joined[connID] {
		g.leaveLocked(group, connID)
	}
}

// Members returns a snapshot of the connection IDs in the group. An unknown
// group yields an empty slice.
func (g *Groups) Members(group string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	set := g.members[group]
	out := make([]string, 0, len(set))
	for connID := range set {
		out = append(out, connID)
	}
	return out
}

// Contains reports whether connID is currently a member of the group.
func (g *Groups) Contains(group, connID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.members[group][connID]
	return ok
}

func (g *Groups) leaveLocked(group, connID string) {
	if set, ok := g.members[group]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(g.members, group)
		}
	}
	if groups, ok := g.joined[connID]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(g.joined, connID)
		}
	}
}
