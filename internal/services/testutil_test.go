package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
)

// newServiceDB opens a fresh in-memory SQLite database with the full schema.
// Each test passes a unique name so shared-cache databases never collide.
func newServiceDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, username, username+"@example.com")
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// notifyCall records one Notify invocation on the fake.
type notifyCall struct {
	UserID     string
	Kind       string
	Title      string
	Body       string
	EntityType string
	EntityID   string
}

// fakeNotifier records durable-notification requests without touching the
// database.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	fanout [][]string // recipient slices passed to NotifyMany
}

func (f *fakeNotifier) Notify(_ context.Context, userID, kind, title, body, entityType, entityID string) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{userID, kind, title, body, entityType, entityID})
	return &domain.Notification{UserID: userID, Kind: kind, Title: title, Body: body}, nil
}

func (f *fakeNotifier) NotifyMany(_ context.Context, userIDs []string, kind, title, body, entityType, entityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fanout = append(f.fanout, append([]string(nil), userIDs...))
	for _, id := range userIDs {
		f.calls = append(f.calls, notifyCall{id, kind, title, body, entityType, entityID})
	}
	return nil
}

func (f *fakeNotifier) callsFor(userID string) []notifyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notifyCall
	for _, c := range f.calls {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

// typingCall records one SendTypingIndicator invocation.
type typingCall struct {
	UserID     string
	EntityType string
	EntityID   string
	IsTyping   bool
}

// recordingPusher implements Pusher and records every push.
type recordingPusher struct {
	mu         sync.Mutex
	sent       []hub.NotificationPayload
	sentTo     []string
	fanouts    [][]string
	unread     map[string][]int64
	typing     []typingCall
	broadcasts []string
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{unread: map[string][]int64{}}
}

func (p *recordingPusher) SendToUser(_ context.Context, userID string, n hub.NotificationPayload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sentTo = append(p.sentTo, userID)
	p.sent = append(p.sent, n)
}

func (p *recordingPusher) SendToUsers(_ context.Context, userIDs []string, n hub.NotificationPayload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fanouts = append(p.fanouts, append([]string(nil), userIDs...))
	p.sent = append(p.sent, n)
}

func (p *recordingPusher) SendUnreadCountUpdate(_ context.Context, userID string, count int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unread[userID] = append(p.unread[userID], count)
}

func (p *recordingPusher) SendTypingIndicator(_ context.Context, userID, entityType, entityID string, isTyping bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.typing = append(p.typing, typingCall{userID, entityType, entityID, isTyping})
}

func (p *recordingPusher) BroadcastSystemMessage(_ context.Context, message, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.broadcasts = append(p.broadcasts, message)
}

func (p *recordingPusher) lastUnread(userID string) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	counts := p.unread[userID]
	if len(counts) == 0 {
		return 0, false
	}
	return counts[len(counts)-1], true
}
