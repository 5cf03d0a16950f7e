package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// writeWait is the deadline for a single WebSocket write.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before it is
	// considered dead. Must exceed pingPeriod.
	pongWait = 60 * time.Second
	// pingPeriod is the interval between server pings.
	pingPeriod = (pongWait * 9) / 10
	// maxFrameSize caps inbound client frames; the client protocol only
	// carries small subscribe/typing control frames.
	maxFrameSize = 4 << 10
	// sendBufferSize is the per-connection outbound queue. A client that
	// falls this far behind is dropped by the hub.
	sendBufferSize = 64
)

// clientFrame is the inbound control protocol. Clients subscribe to entity
// groups they are viewing and report typing state; everything else (messages,
// comments) goes through the REST API.
type clientFrame struct {
	Action     string `json:"action"` // "subscribe" | "unsubscribe" | "typing"
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	IsTyping   bool   `json:"is_typing"`
}

// Client wraps one live WebSocket connection. Outbound frames are queued on a
// buffered channel drained by the write pump, so hub sends never block on a
// peer's socket.
type Client struct {
	id     string
	userID string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	log    zerolog.Logger

	closeOnce sync.Once
}

// NewClient builds a client for an upgraded connection. The connection ID is
// a fresh UUID, opaque to the peer.
func NewClient(h *Hub, conn *websocket.Conn, userID string, log zerolog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		userID: userID,
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		log:    log.With().Str("conn_id", id).Str("user_id", userID).Logger(),
	}
}

// ID returns the opaque connection identifier.
func (c *Client) ID() string { return c.id }

// UserID returns the authenticated owner of the connection.
func (c *Client) UserID() string { return c.userID }

// Run registers the client with the hub and starts the read and write pumps.
// It returns when the connection is gone; the hub is always left clean.
func (c *Client) Run() {
	c.hub.Register(c)
	go c.writePump()
	c.readPump()
}

// enqueue queues an already-marshaled frame for delivery. It reports false
// when the buffer is full or the client is closed; the hub decides what to do
// with the laggard.
func (c *Client) enqueue(data []byte) (ok bool) {
	defer func() {
		// Losing a race with close() sends on a closed channel.
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close shuts the send channel (stopping the write pump) and the socket.
// Safe to call more than once.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// readPump consumes inbound control frames until the connection errors or
// closes, then unregisters the connection.
func (c *Client) readPump() {
	defer c.hub.Unregister(c.id)

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.log.Debug().Err(err).Msg("malformed client frame")
			continue
		}
		c.handleFrame(frame)
	}
}

// handleFrame applies one inbound control frame. Unknown actions and entity
// kinds are ignored; the control protocol is not worth failing a connection
// over.
func (c *Client) handleFrame(frame clientFrame) {
	if !validEntityType(frame.EntityType) || frame.EntityID == "" {
		return
	}
	switch frame.Action {
	case "subscribe":
		c.hub.Subscribe(frame.EntityType, frame.EntityID, c.id)
	case "unsubscribe":
		c.hub.Unsubscribe(frame.EntityType, frame.EntityID, c.id)
	case "typing":
		if d := c.hub.dispatcher; d != nil {
			d.SendTypingIndicator(context.Background(), c.userID, frame.EntityType, frame.EntityID, frame.IsTyping)
		}
	}
}

// writePump drains the send queue onto the socket and keeps the connection
// alive with pings. It exits when the queue is closed or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// validEntityType restricts entity-group subscriptions to the known kinds so
// clients cannot fabricate arbitrary group names.
func validEntityType(t string) bool {
	switch t {
	case EntityConversation, EntityForumTopic, EntityGuide, EntityBlogPost:
		return true
	}
	return false
}
