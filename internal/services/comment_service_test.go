package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
)

func TestCreateComment_NotifiesContentAuthor(t *testing.T) {
	db := newServiceDB(t, "comment_create")
	ctx := context.Background()
	author := seedUser(t, db, "writer")
	reader := seedUser(t, db, "reader")
	notifier := &fakeNotifier{}
	content := NewContentService(db)
	svc := NewCommentService(db, notifier)

	g, err := content.CreateGuide(ctx, author.ID, "Boss guide", "strategy text", nil)
	if err != nil {
		t.Fatalf("CreateGuide: %v", err)
	}

	c, err := svc.Create(ctx, reader.ID, hub.EntityGuide, g.ID, "  nice writeup  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Body != "nice writeup" {
		t.Fatalf("body = %q, want trimmed", c.Body)
	}

	calls := notifier.callsFor(author.ID)
	if len(calls) != 1 || calls[0].Kind != domain.NotificationNewComment {
		t.Fatalf("author notifications = %+v, want one new_comment", calls)
	}
	if calls[0].EntityType != hub.EntityGuide || calls[0].EntityID != g.ID {
		t.Fatalf("notification should deep-link the entity, got %+v", calls[0])
	}
}

func TestCreateComment_OwnContentIsSilent(t *testing.T) {
	db := newServiceDB(t, "comment_own")
	ctx := context.Background()
	author := seedUser(t, db, "selfref")
	notifier := &fakeNotifier{}
	content := NewContentService(db)
	svc := NewCommentService(db, notifier)

	p, err := content.CreateBlogPost(ctx, author.ID, "Patch notes", "thoughts")
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	if _, err := svc.Create(ctx, author.ID, hub.EntityBlogPost, p.ID, "first!"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if calls := notifier.callsFor(author.ID); len(calls) != 0 {
		t.Fatalf("commenting on own content must not notify, got %+v", calls)
	}
}

func TestCreateComment_Rejections(t *testing.T) {
	db := newServiceDB(t, "comment_reject")
	ctx := context.Background()
	author := seedUser(t, db, "poster")
	content := NewContentService(db)
	svc := NewCommentService(db, &fakeNotifier{})
	svc.MaxBodyRunes = 10

	topic, err := content.CreateForumTopic(ctx, author.ID, "Open thread", "discuss")
	if err != nil {
		t.Fatalf("CreateForumTopic: %v", err)
	}

	if _, err := svc.Create(ctx, author.ID, hub.EntityForumTopic, topic.ID, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("blank body err = %v, want ErrEmptyContent", err)
	}
	if _, err := svc.Create(ctx, author.ID, hub.EntityForumTopic, topic.ID, strings.Repeat("a", 11)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("over-limit err = %v, want ErrTooLong", err)
	}
	if _, err := svc.Create(ctx, author.ID, "Playlist", topic.ID, "hi"); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("unknown entity err = %v, want ErrUnknownEntity", err)
	}
	if _, err := svc.Create(ctx, author.ID, hub.EntityGuide, "missing", "hi"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("missing entity err = %v, want ErrContentNotFound", err)
	}
}

func TestCreateComment_LockedTopic(t *testing.T) {
	db := newServiceDB(t, "comment_locked")
	ctx := context.Background()
	author := seedUser(t, db, "mod")
	content := NewContentService(db)
	admin := NewAdminService(db, nil)
	svc := NewCommentService(db, &fakeNotifier{})

	topic, err := content.CreateForumTopic(ctx, author.ID, "Heated thread", "calm down")
	if err != nil {
		t.Fatalf("CreateForumTopic: %v", err)
	}
	if err := admin.LockForumTopic(ctx, topic.ID, true); err != nil {
		t.Fatalf("LockForumTopic: %v", err)
	}

	if _, err := svc.Create(ctx, author.ID, hub.EntityForumTopic, topic.ID, "one more thing"); !errors.Is(err, ErrTopicLocked) {
		t.Fatalf("locked topic err = %v, want ErrTopicLocked", err)
	}

	// Unlocking reopens the thread.
	if err := admin.LockForumTopic(ctx, topic.ID, false); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := svc.Create(ctx, author.ID, hub.EntityForumTopic, topic.ID, "back on topic"); err != nil {
		t.Fatalf("comment after unlock: %v", err)
	}
}

func TestListComments_UnknownEntityRejected(t *testing.T) {
	db := newServiceDB(t, "comment_list")
	ctx := context.Background()
	author := seedUser(t, db, "lister")
	content := NewContentService(db)
	svc := NewCommentService(db, &fakeNotifier{})

	g, err := content.CreateGuide(ctx, author.ID, "Guide", "body", nil)
	if err != nil {
		t.Fatalf("CreateGuide: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, author.ID, hub.EntityGuide, g.ID, "comment"); err != nil {
			t.Fatalf("seed comment: %v", err)
		}
	}

	items, total, err := svc.ListPage(ctx, hub.EntityGuide, g.ID, 1, 2)
	if err != nil || total != 3 || len(items) != 2 {
		t.Fatalf("ListPage = %d items, total %d, err %v; want 2, 3, nil", len(items), total, err)
	}
	if _, _, err := svc.ListPage(ctx, "Playlist", g.ID, 1, 10); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("unknown entity err = %v, want ErrUnknownEntity", err)
	}
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	db := newServiceDB(t, "comment_delete")
	ctx := context.Background()
	author := seedUser(t, db, "owner")
	other := seedUser(t, db, "intruder")
	content := NewContentService(db)
	svc := NewCommentService(db, &fakeNotifier{})

	g, err := content.CreateGuide(ctx, author.ID, "Guide", "body", nil)
	if err != nil {
		t.Fatalf("CreateGuide: %v", err)
	}
	c, err := svc.Create(ctx, author.ID, hub.EntityGuide, g.ID, "mine")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, other.ID, c.ID); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("foreign delete err = %v, want ErrNotAuthor", err)
	}
	if err := svc.Delete(ctx, author.ID, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, author.ID, c.ID); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("double delete err = %v, want ErrContentNotFound", err)
	}
}
