package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// Hub fans state snapshots out to websocket watchers.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Broadcast queues msg for every watcher. Slow watchers are dropped.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow watcher", "remote", c.conn.RemoteAddr().String())
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Len returns the number of connected watchers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// accept upgrades the request to a websocket watcher.
func (h *Hub) accept(w http.ResponseWriter, r *http.Request) (*client, error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	return &client{conn: conn, send: make(chan []byte, sendBuffer)}, nil
}

// add registers c with initial as its first message.
func (h *Hub) add(c *client, initial []byte) {
	c.send <- initial

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// run pumps messages to c until the peer goes away.
func (h *Hub) run(c *client) {
	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readLoop discards incoming messages until the peer goes away.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("websocket write failed", "error", err)
			return
		}
	}

	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
