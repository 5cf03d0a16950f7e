package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/semihsari152/CoreGameApp-sub007/internal/hub"
)

var wsTestSecret = []byte("ws-test-secret")

func wsToken(t *testing.T, userID string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(wsTestSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// newWSServer runs the /ws endpoint on a real listener with its own hub.
func newWSServer(t *testing.T, allowedOrigins []string) (*httptest.Server, *hub.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pushHub := hub.New(zerolog.Nop())
	dispatcher := hub.NewDispatcher(pushHub, pushHub.Registry(), zerolog.Nop())
	pushHub.Bind(dispatcher)

	r := gin.New()
	ws := NewWSHandler(pushHub, wsTestSecret, allowedOrigins, zerolog.Nop())
	r.GET("/ws", ws.Serve)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Cleanup(pushHub.Close)
	return srv, pushHub
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
}

// readFrameWithTag reads frames until one carries the wanted tag, skipping
// interleaved presence broadcasts.
func readFrameWithTag(t *testing.T, conn *websocket.Conn, tag string) []byte {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 10; i++ {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		var head struct {
			Tag string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			t.Fatalf("decode frame %s: %v", raw, err)
		}
		if head.Tag == tag {
			return raw
		}
	}
	t.Fatalf("no frame with tag %q", tag)
	return nil
}

func waitOnline(t *testing.T, h *hub.Hub, userID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Registry().IsOnline(userID) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %s never came online", userID)
}

func TestWS_RejectsMissingOrInvalidToken(t *testing.T) {
	srv, _ := newWSServer(t, []string{"*"})

	for name, query := range map[string]string{
		"no token":  "",
		"bad token": "?token=not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/ws" + query)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestWS_ConnectReceivePushDisconnect(t *testing.T) {
	srv, pushHub := newWSServer(t, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+wsToken(t, "u1")), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitOnline(t, pushHub, "u1")

	// A dispatcher push to the user's private group arrives as a tagged frame.
	dispatcher := hub.NewDispatcher(pushHub, pushHub.Registry(), zerolog.Nop())
	dispatcher.SendToUser(context.Background(), "u1", hub.NotificationPayload{
		ID:    "n1",
		Kind:  "system",
		Title: "Welcome",
	})

	raw := readFrameWithTag(t, conn, hub.TagReceiveNotification)
	var msg struct {
		Tag     string                  `json:"type"`
		Payload hub.NotificationPayload `json:"payload"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if msg.Payload.ID != "n1" || msg.Payload.Title != "Welcome" {
		t.Fatalf("frame = %s", raw)
	}

	// Closing the socket takes the user offline once the hub notices.
	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && pushHub.Registry().IsOnline("u1") {
		time.Sleep(5 * time.Millisecond)
	}
	if pushHub.Registry().IsOnline("u1") {
		t.Fatalf("user still online after disconnect")
	}
}

func TestWS_SubscribeRoutesEntityPushes(t *testing.T) {
	srv, pushHub := newWSServer(t, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+wsToken(t, "u2")), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitOnline(t, pushHub, "u2")

	// Client-side subscribe to a conversation group.
	sub := `{"action":"subscribe","entity_type":"Conversation","entity_id":"c1"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(sub)); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Wait until the membership is visible, then push to the group.
	group := hub.EntityGroup(hub.EntityConversation, "c1")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(pushHub.Groups().Members(group)) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if len(pushHub.Groups().Members(group)) == 0 {
		t.Fatalf("subscribe never joined %s", group)
	}

	if err := pushHub.SendToGroup(context.Background(), group, hub.PushMessage{
		Tag:     hub.TagReceiveSystemMessage,
		Payload: map[string]string{"message": "hi room"},
	}); err != nil {
		t.Fatalf("SendToGroup: %v", err)
	}

	raw := readFrameWithTag(t, conn, hub.TagReceiveSystemMessage)
	if !strings.Contains(string(raw), "hi room") {
		t.Fatalf("frame = %s", raw)
	}
}

func TestWS_OriginAllowlist(t *testing.T) {
	srv, _ := newWSServer(t, []string{"https://app.example.com"})

	// Disallowed browser origin fails the handshake.
	badHeader := http.Header{"Origin": []string{"https://evil.example.com"}}
	if _, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+wsToken(t, "u3")), badHeader); err == nil {
		t.Fatalf("expected handshake rejection for foreign origin")
	}

	// Allowlisted origin connects.
	goodHeader := http.Header{"Origin": []string{"https://app.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+wsToken(t, "u3")), goodHeader)
	if err != nil {
		t.Fatalf("allowlisted origin dial: %v", err)
	}
	conn.Close()
}
