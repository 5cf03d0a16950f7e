// WebSocket endpoint.
//
// GET /ws upgrades the connection and registers a live client with the push
// hub. Browsers cannot set headers on WebSocket handshakes, so the bearer
// token is accepted from the `token` query parameter as well as the
// Authorization header. The connection is tracked until the read pump exits.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/semihsari152/CoreGameApp-sub007/internal/http/middleware"
	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
)

// WSHandler upgrades HTTP requests into hub-managed WebSocket clients.
type WSHandler struct {
	hub      *hub.Hub
	secret   []byte
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler constructs the /ws endpoint handler. allowedOrigins follows
// the CORS configuration; "*" disables the origin check.
func NewWSHandler(h *hub.Hub, secret []byte, allowedOrigins []string, log zerolog.Logger) *WSHandler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return &WSHandler{
		hub:    h,
		secret: secret,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Non-browser clients; auth still applies.
					return true
				}
				_, okOrigin := allowed[strings.TrimRight(origin, "/")]
				return okOrigin
			},
		},
	}
}

// Serve godoc
// @ID          wsConnect
// @Summary     Open a live push connection
// @Description Upgrades to WebSocket. Requires a valid bearer token via the
// @Description Authorization header or the `token` query parameter.
// @Tags        Push
// @Param       token  query  string  false  "Bearer token (browser clients)"
// @Success     101  "Switching Protocols"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Router      /ws [get]
func (w *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}
	id, err := middleware.ParseBearerToken(token, w.secret)
	if err != nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid bearer token")
		return
	}

	conn, err := w.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the response.
		w.log.Warn().Err(err).Str("user_id", id.UserID).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(w.hub, conn, id.UserID, w.log)
	w.log.Debug().
		Str("user_id", id.UserID).
		Str("conn_id", client.ID()).
		Msg("websocket connected")
	client.Run()
}
