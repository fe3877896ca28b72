package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Output is one outbound wire frame.
type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub groups live connections by room code and fans events out to them.
// Delivery is fire-and-forget: write failures are logged and the failing
// connection is left for its read loop to tear down.
type Hub struct {
	rooms  map[string]map[*websocket.Conn]struct{}
	mu     sync.RWMutex
	logger *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

func (h *Hub) Add(conn *websocket.Conn, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[roomCode][conn] = struct{}{}
}

func (h *Hub) Remove(conn *websocket.Conn, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.rooms, roomCode)
	}
}

// Broadcast delivers out to every connection in the room except exclude.
// Pass a nil exclude to reach the whole room.
func (h *Hub) Broadcast(ctx context.Context, roomCode string, out *Output, exclude *websocket.Conn) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[roomCode]))
	for conn := range h.rooms[roomCode] {
		if conn != exclude {
			conns = append(conns, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(out); err != nil {
			h.logger.InfoContext(ctx, "failed to write to conn", "type", out.Type, "error", err)
		}
	}
}

func (h *Hub) Unicast(ctx context.Context, conn *websocket.Conn, out *Output) {
	if err := conn.WriteJSON(out); err != nil {
		h.logger.InfoContext(ctx, "failed to write to conn", "type", out.Type, "error", err)
	}
}
