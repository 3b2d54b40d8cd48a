/*
Package chat contains the location-scoped real-time chat subsystem.

This file defines the Client struct, representing one live WebSocket
connection. It runs the read and write pumps, forwards inbound frames to the
Router, and guarantees registry cleanup when the transport closes.
*/
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Talibis/jug-classic/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxFrameSize = 8192

	// sendQueueSize is the per-connection outbound buffer.
	sendQueueSize = 256
)

// Client is a live WebSocket connection bound to an authenticated account.
// It is transient and process-local; it exists only while the client is
// attached.
type Client struct {
	// id is the transport-level session identifier.
	id string

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// router handles lifecycle transitions and inbound frames.
	router *Router

	// email is the identity resolved at handshake time.
	email string

	// binding is set once the connection reaches Active.
	binding *Binding

	// send queues payloads waiting to be written to the client.
	send chan []byte

	// mu guards closed; Send must never race with close of the channel.
	mu     sync.Mutex
	closed bool

	logger zerolog.Logger
}

// NewClient constructs a Client for an authenticated connection.
func NewClient(conn *websocket.Conn, router *Router, email string) *Client {
	id := uuid.New().String()

	return &Client{
		id:     id,
		conn:   conn,
		router: router,
		email:  email,
		send:   make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().
			Str("session_id", id).
			Str("email", email).
			Logger(),
	}
}

// ID implements Session.
func (c *Client) ID() string {
	return c.id
}

// Send implements Session. It enqueues the payload without blocking; a full
// queue or a closed connection is reported as an error so the registry can
// log the failed delivery and move on.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.New("connection closed")
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return errors.New("send queue full")
	}
}

// closeSend marks the client closed and closes the send channel exactly once,
// which lets the write pump drain and exit.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Run drives the connection to Active and then pumps frames until the
// transport closes. It blocks until the read pump exits.
func (c *Client) Run(ctx context.Context) {
	go c.writePump()

	binding, err := c.router.Connect(ctx, c, c.email)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Connection failed before becoming active.")
		c.shutdown()
		return
	}
	c.binding = binding

	c.readPump(ctx)
}

// readPump reads frames from the WebSocket and hands them to the Router.
// It owns connection cleanup: when it returns, the session is unregistered
// and the transport closed.
func (c *Client) readPump(ctx context.Context) {
	defer c.shutdown()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.router.HandleFrame(ctx, c, c.binding, raw)
	}
}

// shutdown unregisters the session and closes the transport. Unregister is
// idempotent, so repeated or partial shutdowns are safe.
func (c *Client) shutdown() {
	c.router.Disconnect(c)
	c.closeSend()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// writePump writes queued payloads to the WebSocket and keeps the heartbeat
// going. One writer goroutine per connection; delivery order follows queue
// order.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in write pump")
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
