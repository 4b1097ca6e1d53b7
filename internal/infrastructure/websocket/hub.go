package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/pkg/logger"
)

// Client represents one WebSocket subscriber to the issue feed.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Source opens the upstream realtime subscription and blocks until ctx is
// cancelled, invoking fn with the full issue list on every remote change.
type Source func(ctx context.Context, fn func(issues []*entity.Issue)) error

type feedMessage struct {
	Type   string          `json:"type"`
	Issues []*entity.Issue `json:"issues"`
}

// Hub fans the issue feed out to all connected clients. It holds exactly one
// upstream subscription, reference counted: opened when the first client
// registers, closed when the last one leaves, so any number of pages share a
// single backend listener.
type Hub struct {
	source     Source
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	snapshots  chan []byte
	mutex      sync.RWMutex

	last       []byte
	stopSource context.CancelFunc
}

func NewHub(source Source) *Hub {
	return &Hub{
		source:     source,
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		snapshots:  make(chan []byte, 1),
	}
}

// Start runs the hub's main loop in a goroutine.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				h.clients[client.ID] = client
				first := len(h.clients) == 1
				h.mutex.Unlock()
				logger.Debug("Feed client registered: %s (user %s)", client.ID, client.UserID)

				if first {
					h.startSource(ctx)
				} else if h.last != nil {
					client.Send <- h.last
				}

			case client := <-h.Unregister:
				h.mutex.Lock()
				if _, ok := h.clients[client.ID]; ok {
					delete(h.clients, client.ID)
					close(client.Send)
				}
				empty := len(h.clients) == 0
				h.mutex.Unlock()
				logger.Debug("Feed client unregistered: %s", client.ID)

				if empty {
					h.stopUpstream()
				}

			case snapshot := <-h.snapshots:
				h.last = snapshot
				h.mutex.Lock()
				for id, client := range h.clients {
					select {
					case client.Send <- snapshot:
					default:
						// Slow consumer, drop it.
						close(client.Send)
						delete(h.clients, id)
					}
				}
				empty := len(h.clients) == 0
				h.mutex.Unlock()

				if empty {
					h.stopUpstream()
				}

			case <-ctx.Done():
				h.stopUpstream()
				return
			}
		}
	}()
}

func (h *Hub) startSource(ctx context.Context) {
	sctx, cancel := context.WithCancel(ctx)
	h.stopSource = cancel

	go func() {
		err := h.source(sctx, func(issues []*entity.Issue) {
			data, err := json.Marshal(feedMessage{Type: "issues", Issues: issues})
			if err != nil {
				logger.Error("Failed to marshal issue snapshot: %v", err)
				return
			}
			select {
			case h.snapshots <- data:
			case <-sctx.Done():
			}
		})
		if err != nil {
			logger.Error("Issue feed source stopped: %v", err)
		}
	}()
}

func (h *Hub) stopUpstream() {
	if h.stopSource != nil {
		h.stopSource()
		h.stopSource = nil
	}
	h.last = nil
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ReadPump drains the connection and unregisters on close. Clients do not
// send feed data; their messages are discarded.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("Feed read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued snapshots to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Debug("Feed write error: %v", err)
			return
		}
	}
}
