// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, structured logging, panic recovery, metrics,
// CORS, security headers, authentication, and rate limiting, and mounts the
// public API, the permission-gated admin API, and the WebSocket endpoint.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/semihsari152/CoreGameApp-sub007/internal/config"
	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/http/handlers"
	"github.com/semihsari152/CoreGameApp-sub007/internal/http/middleware"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
	"github.com/semihsari152/CoreGameApp-sub007/internal/repo"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

// notificationRepoShim adapts the repository free functions to the
// services.NotificationRepo interface expected by the NotificationService.
// This keeps services decoupled from the concrete repo package while reusing
// existing functions.
type notificationRepoShim struct{}

// CreateNotification proxies repo.CreateNotification.
func (notificationRepoShim) CreateNotification(ctx context.Context, db *gorm.DB, userID, kind, title, body, entityType, entityID string) (*domain.Notification, error) {
	return repo.CreateNotification(ctx, db, userID, kind, title, body, entityType, entityID)
}

// CountNotifications proxies repo.CountNotifications.
func (notificationRepoShim) CountNotifications(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountNotifications(ctx, db, userID)
}

// ListNotificationsPage proxies repo.ListNotificationsPage.
func (notificationRepoShim) ListNotificationsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Notification, error) {
	return repo.ListNotificationsPage(ctx, db, userID, offset, limit)
}

// CountUnreadNotifications proxies repo.CountUnreadNotifications.
func (notificationRepoShim) CountUnreadNotifications(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountUnreadNotifications(ctx, db, userID)
}

// MarkNotificationRead proxies repo.MarkNotificationRead.
func (notificationRepoShim) MarkNotificationRead(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.MarkNotificationRead(ctx, db, id, userID)
}

// MarkAllNotificationsRead proxies repo.MarkAllNotificationsRead.
func (notificationRepoShim) MarkAllNotificationsRead(ctx context.Context, db *gorm.DB, userID string) error {
	return repo.MarkAllNotificationsRead(ctx, db, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// versioned public API, the admin API behind the permission gate, and the
// WebSocket endpoint.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Auth (optional mode): resolve caller identity when a token is present
//  4. Logger: structured logs including the resolved user id
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics
//  8. Rate limiter (keyed by user when authenticated, IP otherwise)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, pushHub *hub.Hub, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	secret := []byte(cfg.JWT.Secret)

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Resolve identity early so logs and rate limiting can key by user
	r.Use(middleware.Auth(middleware.AuthOptions{Secret: secret, Required: false}))

	// 4) Structured logging
	r.Use(middleware.Logger())

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db/hub
	dispatcher := hub.NewDispatcher(pushHub, pushHub.Registry(), log.Logger)
	pushHub.Bind(dispatcher)

	notifSvc := services.NewNotificationService(db, notificationRepoShim{}, dispatcher)
	convSvc := services.NewMessageService(db, notifSvc, dispatcher)
	friendSvc := services.NewFriendshipService(db, notifSvc, pushHub.Registry())
	commentSvc := services.NewCommentService(db, notifSvc)
	contentSvc := services.NewContentService(db)
	gameSvc := services.NewGameService(db)
	adminSvc := services.NewAdminService(db, dispatcher)

	h := handlers.New(notifSvc, convSvc, friendSvc, commentSvc, contentSvc, gameSvc, adminSvc)

	requireAuth := middleware.Auth(middleware.AuthOptions{Secret: secret, Required: true})

	// WebSocket endpoint (token via query param or Authorization header)
	ws := handlers.NewWSHandler(pushHub, secret, cfg.CORS.AllowedOrigins, log.Logger)
	r.GET("/ws", ws.Serve)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Games (catalog reads are public)
		api.GET("/games", h.ListGames)
		api.GET("/games/:idOrSlug", h.GetGame)

		// Guides
		api.GET("/guides", h.ListGuides)
		api.GET("/guides/:id", h.GetGuide)
		api.POST("/guides", requireAuth, h.CreateGuide)
		api.DELETE("/guides/:id", requireAuth, h.DeleteGuide)

		// Blog posts
		api.GET("/blogs", h.ListBlogPosts)
		api.GET("/blogs/:id", h.GetBlogPost)
		api.POST("/blogs", requireAuth, h.CreateBlogPost)
		api.DELETE("/blogs/:id", requireAuth, h.DeleteBlogPost)

		// Forum topics
		api.GET("/forum/topics", h.ListForumTopics)
		api.GET("/forum/topics/:id", h.GetForumTopic)
		api.POST("/forum/topics", requireAuth, h.CreateForumTopic)

		// Comments
		api.GET("/comments/:entityType/:entityId", h.ListComments)
		api.POST("/comments", requireAuth, h.CreateComment)
		api.DELETE("/comments/:id", requireAuth, h.DeleteComment)

		// Notifications
		api.GET("/notifications", requireAuth, h.ListNotifications)
		api.GET("/notifications/unread-count", requireAuth, h.NotificationUnreadCount)
		api.PUT("/notifications/read-all", requireAuth, h.MarkAllNotificationsRead)
		api.PUT("/notifications/:id/read", requireAuth, h.MarkNotificationRead)

		// Conversations
		api.POST("/conversations", requireAuth, h.StartConversation)
		api.GET("/conversations", requireAuth, h.ListConversations)
		api.POST("/conversations/:id/messages", requireAuth, h.SendMessage)
		api.GET("/conversations/:id/messages", requireAuth, h.ListConversationMessages)
		api.PUT("/conversations/:id/read", requireAuth, h.MarkConversationRead)
		api.GET("/conversations/:id/unread-count", requireAuth, h.ConversationUnreadCount)
		api.POST("/conversations/:id/typing", requireAuth, h.Typing)

		// Friends
		api.GET("/friends", requireAuth, h.ListFriends)
		api.GET("/friends/requests", requireAuth, h.ListFriendRequests)
		api.POST("/friends/requests", requireAuth, h.SendFriendRequest)
		api.PUT("/friends/requests/:id/accept", requireAuth, h.AcceptFriendRequest)
		api.PUT("/friends/requests/:id/decline", requireAuth, h.DeclineFriendRequest)
	}

	// Admin API: admin flag plus per-section granular permissions.
	// A shadowed rule is a programming error, so the table is checked once
	// at startup rather than per request.
	if err := middleware.ValidateRules(middleware.DefaultAdminRules); err != nil {
		panic(err)
	}
	adminBase := apiBase + "/admin"
	admin := r.Group(adminBase)
	admin.Use(requireAuth, middleware.PermissionGate(adminSvc, adminBase, middleware.DefaultAdminRules))
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/stats", h.AdminDashboard)

		admin.GET("/users", h.AdminListUsers)
		admin.GET("/users/lookup", h.AdminLookupUser)
		admin.PUT("/users/:id/admin", h.AdminSetAdminFlag)

		admin.GET("/permissions/:userId", h.AdminListPermissions)
		admin.POST("/permissions/:userId", h.AdminGrantPermission)
		admin.DELETE("/permissions/:userId/:permission", h.AdminRevokePermission)

		admin.DELETE("/guides/:id", h.AdminRemoveGuide)
		admin.DELETE("/blogs/:id", h.AdminRemoveBlogPost)
		admin.DELETE("/forum/topics/:id", h.AdminRemoveForumTopic)
		admin.PUT("/forum/topics/:id/lock", h.AdminLockForumTopic)
		admin.DELETE("/content/comments/:id", h.AdminRemoveComment)

		admin.POST("/games", h.AdminCreateGame)
		admin.PUT("/games/:id", h.AdminUpdateGame)
		admin.DELETE("/games/:id", h.AdminDeleteGame)

		admin.POST("/system/broadcast", h.AdminBroadcast)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
