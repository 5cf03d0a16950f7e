package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminDirectory answers the two questions the admin gate asks about a
// caller. *services.AdminService satisfies it.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	HasPermission(ctx context.Context, userID, permission string) (bool, error)
}

// Rule maps an admin URL section to the granular permission it requires.
// PathPrefix is matched against the portion of the request path after the
// admin base path. An empty Permission means the admin flag alone is
// sufficient for that section.
type Rule struct {
	PathPrefix string
	Permission string
}

// DefaultAdminRules is the permission table for the admin API. Rules are
// evaluated top to bottom and the first match wins, so more specific
// prefixes must be listed before broader ones.
var DefaultAdminRules = []Rule{
	{PathPrefix: "/users", Permission: "users.manage"},
	{PathPrefix: "/content", Permission: "content.manage"},
	{PathPrefix: "/blogs", Permission: "content.manage"},
	{PathPrefix: "/guides", Permission: "content.manage"},
	{PathPrefix: "/forum", Permission: "forum.manage"},
	{PathPrefix: "/games", Permission: "games.manage"},
	{PathPrefix: "/reports", Permission: "reports.manage"},
	{PathPrefix: "/settings", Permission: "system.manage"},
	{PathPrefix: "/cache", Permission: "system.manage"},
	{PathPrefix: "/system", Permission: "system.manage"},
	{PathPrefix: "/permissions", Permission: "admin.manage"},
	{PathPrefix: "/admins", Permission: "admin.manage"},
	{PathPrefix: "/audit", Permission: "admin.manage"},
	{PathPrefix: "/dashboard", Permission: ""},
	{PathPrefix: "/stats", Permission: ""},
}

// ValidateRules rejects rule tables containing shadowed entries, i.e. a
// rule whose prefix extends an earlier rule's prefix and can therefore
// never match. Called once at startup so a misordered table fails fast
// instead of silently granting the wrong permission.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		for j := 0; j < i; j++ {
			if strings.HasPrefix(r.PathPrefix, rules[j].PathPrefix) {
				return fmt.Errorf("admin rule %q is shadowed by earlier rule %q", r.PathPrefix, rules[j].PathPrefix)
			}
		}
	}
	return nil
}

// PermissionGate guards the admin API. Checks run in order:
//
//  1. Unauthenticated callers get 401.
//  2. Callers without the admin flag get 403, regardless of any granted
//     permissions.
//  3. The first rule whose prefix matches the sub-path decides which
//     granular permission is required; missing it yields a 403 that names
//     the permission.
//  4. Paths no rule covers are allowed for any admin.
//
// basePath is the mount point of the admin group (e.g. "/api/v1/admin")
// and is stripped before prefix matching.
func PermissionGate(dir AdminDirectory, basePath string, rules []Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "authentication required",
			})
			return
		}

		ctx := c.Request.Context()
		isAdmin, err := dir.IsAdmin(ctx, id.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    "internal_error",
				"message": "admin lookup failed",
			})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "forbidden",
				"message": "admin access required",
			})
			return
		}

		sub := strings.TrimPrefix(c.Request.URL.Path, basePath)
		if sub == "" {
			sub = "/"
		}
		for _, r := range rules {
			if !strings.HasPrefix(sub, r.PathPrefix) {
				continue
			}
			if r.Permission == "" {
				break
			}
			granted, err := dir.HasPermission(ctx, id.UserID, r.Permission)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    "internal_error",
					"message": "permission lookup failed",
				})
				return
			}
			if !granted {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"code":    "forbidden",
					"message": fmt.Sprintf("missing permission %s", r.Permission),
				})
				return
			}
			break
		}
		c.Next()
	}
}
