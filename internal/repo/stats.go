// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// by the admin dashboard. Each function is context-aware and safe to call
// from services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
)

// DashboardStats is the aggregate snapshot rendered on the admin dashboard.
type DashboardStats struct {
	Users         int64 `json:"users"`
	Games         int64 `json:"games"`
	Guides        int64 `json:"guides"`
	BlogPosts     int64 `json:"blog_posts"`
	ForumTopics   int64 `json:"forum_topics"`
	Comments      int64 `json:"comments"`
	Notifications int64 `json:"notifications"`
}

// CollectDashboardStats counts the major aggregates in one pass. Counts are
// taken from separate queries without a shared snapshot; the dashboard
// tolerates that level of drift.
func CollectDashboardStats(ctx context.Context, db *gorm.DB) (*DashboardStats, error) {
	s := &DashboardStats{}
	counts := []struct {
		model any
		dst   *int64
	}{
		{&domain.User{}, &s.Users},
		{&domain.Game{}, &s.Games},
		{&domain.Guide{}, &s.Guides},
		{&domain.BlogPost{}, &s.BlogPosts},
		{&domain.ForumTopic{}, &s.ForumTopics},
		{&domain.Comment{}, &s.Comments},
		{&domain.Notification{}, &s.Notifications},
	}
	for _, c := range counts {
		if err := db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return s, nil
}
