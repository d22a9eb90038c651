package notification

import (
	"sync"
	"time"

	"go-fileshare/internal/features/file"

	"go.uber.org/zap"
)

// ShareEvent is what recipients receive over the websocket when a file is
// shared with them.
type ShareEvent struct {
	Type     string     `json:"type"`
	File     *file.File `json:"file"`
	SharedAt time.Time  `json:"shared_at"`
}

// Conn is the write side of a websocket connection. *websocket.Conn
// satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// client pairs a connection with a write lock. The websocket library
// forbids concurrent writes to one connection, and NotifyShared runs on
// whatever goroutine handled the share request.
type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks open websocket connections per user and pushes share events to
// them. Delivery is best effort; the durable notification state stays in the
// file records.
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string][]*client),
		logger:  logger,
	}
}

func (h *Hub) Register(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = append(h.clients[userID], &client{conn: conn})
}

func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	remaining := h.clients[userID][:0]
	for _, c := range h.clients[userID] {
		if c.conn != conn {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.clients, userID)
	} else {
		h.clients[userID] = remaining
	}
}

// NotifyShared implements file.ShareNotifier.
func (h *Hub) NotifyShared(userID string, f *file.File) {
	h.mu.RLock()
	clients := append([]*client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	event := ShareEvent{Type: "file_shared", File: f, SharedAt: time.Now()}
	for _, c := range clients {
		if err := c.writeJSON(event); err != nil {
			h.logger.Warn("notification push failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
}
