// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication. Token issuance is an
// external collaborator (the identity provider mints HMAC-signed JWTs); this
// middleware only validates signatures and expiry and attaches the caller
// identity to the request context for downstream consumers (handlers, the
// admin gate, the rate limiter's user keying, and the WebSocket upgrade).
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserIDKey is the Gin context key holding the authenticated
	// caller's user ID.
	ContextUserIDKey = "userID"
	// ContextUsernameKey is the Gin context key holding the caller's handle.
	ContextUsernameKey = "username"
)

// Identity is the caller identity extracted from a validated token.
type Identity struct {
	UserID   string
	Username string
}

// AuthOptions configures the bearer-token middleware.
type AuthOptions struct {
	// Secret is the HMAC key tokens are signed with.
	Secret []byte
	// Required controls the failure mode: when true, requests without a
	// valid token are rejected with 401; when false they proceed
	// anonymously (no identity in context).
	Required bool
}

// Auth returns a Gin middleware that validates an Authorization: Bearer
// token and stores the caller identity in the context.
//
// Accepted claims:
//   - sub (required): the user ID
//   - name (optional): display handle
//   - exp/nbf: honored by the JWT library's standard validation
//
// Only HMAC-signed tokens are accepted; an RS256 token presented against
// this service is rejected rather than verified with the wrong key type.
func Auth(opt AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := identityFromRequest(c.GetHeader("Authorization"), opt.Secret)
		if err != nil {
			if opt.Required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    "unauthorized",
					"message": "missing or invalid bearer token",
				})
				return
			}
			c.Next()
			return
		}
		c.Set(ContextUserIDKey, id.UserID)
		c.Set(ContextUsernameKey, id.Username)
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity stored by Auth, or
// ok=false for anonymous requests.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ContextUserIDKey)
	userID, _ := v.(string)
	if !exists || userID == "" {
		return Identity{}, false
	}
	name, _ := c.Get(ContextUsernameKey)
	username, _ := name.(string)
	return Identity{UserID: userID, Username: username}, true
}

// ParseBearerToken validates a raw token string and extracts the identity.
// Exposed for the WebSocket handshake, which receives the token via query
// parameter instead of the Authorization header.
func ParseBearerToken(tokenStr string, secret []byte) (Identity, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, errors.New("token missing subject")
	}
	name, _ := claims["name"].(string)
	return Identity{UserID: sub, Username: name}, nil
}

// identityFromRequest strips the Bearer scheme and validates the token.
func identityFromRequest(header string, secret []byte) (Identity, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Identity{}, errors.New("missing bearer token")
	}
	return ParseBearerToken(strings.TrimSpace(header[len(prefix):]), secret)
}
