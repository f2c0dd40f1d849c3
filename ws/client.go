package ws

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"golf-client/golf"
	"golf-client/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Snapshots carry every hand.
	maxMessageSize = 64 * 1024

	sendBuffer = 64
)

// Client is the view's connection to the game server.
type Client struct {
	Conn *websocket.Conn

	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to url. The handshake honours ctx.
func Dial(ctx context.Context, url string, header http.Header) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dialing %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an established connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn: conn,
		out:  make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// Authenticate queues the auth message. It must be the first send.
func (c *Client) Authenticate(token string) error {
	data, err := EncodeAuth(token)
	if err != nil {
		return err
	}
	if !wsutil.SafeSend(c.out, data) {
		return fmt.Errorf("send buffer full")
	}
	return nil
}

// Send queues an intent for the server. It never blocks; a full buffer
// drops the intent.
func (c *Client) Send(i golf.Intent) {
	ref := uuid.New()
	data, err := EncodeIntent(i, ref)
	if err != nil {
		slog.Error("encoding intent", "tag", "ws", "err", err)
		return
	}
	if !wsutil.SafeSend(c.out, data) {
		slog.Warn("intent dropped", "tag", "ws", "ref", ref)
		return
	}
	slog.Debug("intent queued", "tag", "ws", "ref", ref, "intent", fmt.Sprintf("%T", i))
}

// Done is closed once the read side stopped.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close shuts down the write side, which sends a close frame and tears
// down the connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.out) })
}

// ReadPump decodes messages from the websocket connection and forwards
// them in arrival order. It runs in its own goroutine and returns when the
// connection closes or ctx is done.
func (c *Client) ReadPump(ctx context.Context, notifications chan<- golf.Notification) {
	defer func() {
		close(c.done)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	c.Conn.SetPingHandler(func(data string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		err := c.Conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read error", "tag", "ws", "err", err)
			}
			return
		}

		n, err := Decode(message)
		if err != nil {
			slog.Error("dropping inbound message", "tag", "ws", "err", err)
			continue
		}
		select {
		case notifications <- n:
		case <-ctx.Done():
			return
		}
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.out:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Close was called.
				c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
