package inmemory

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/maps"

	"github.com/collabstudy/server/internal/repository/session"
)

type repo struct {
	sessions map[*websocket.Conn]session.Session
	rooms    map[string]map[*websocket.Conn]struct{}
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		sessions: make(map[*websocket.Conn]session.Session),
		rooms:    make(map[string]map[*websocket.Conn]struct{}),
		logger:   logger,
	}
}

func (r *repo) Add(conn *websocket.Conn, username, roomCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[conn]; ok {
		return session.ErrAlreadyExists
	}

	r.sessions[conn] = session.Session{Username: username, RoomCode: roomCode}
	if r.rooms[roomCode] == nil {
		r.rooms[roomCode] = make(map[*websocket.Conn]struct{})
	}
	r.rooms[roomCode][conn] = struct{}{}

	r.logger.Debug("session.inmemory.Add", "username", username, "room_code", roomCode)
	return nil
}

func (r *repo) RemoveByConn(conn *websocket.Conn) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[conn]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}

	delete(r.sessions, conn)
	if conns, ok := r.rooms[sess.RoomCode]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(r.rooms, sess.RoomCode)
		}
	}

	r.logger.Debug("session.inmemory.RemoveByConn", "username", sess.Username, "room_code", sess.RoomCode)
	return sess, nil
}

func (r *repo) Get(conn *websocket.Conn) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[conn]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}

	return sess, nil
}

// Presence returns the distinct usernames holding at least one open
// connection in the room, sorted for stable output.
func (r *repo) Presence(roomCode string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	online := make(map[string]struct{})
	for conn := range r.rooms[roomCode] {
		online[r.sessions[conn].Username] = struct{}{}
	}

	usernames := maps.Keys(online)
	sort.Strings(usernames)

	return usernames
}

func (r *repo) Conns(roomCode string) []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.rooms[roomCode])
}
