package inmemory

import (
	"log/slog"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabstudy/server/internal/repository/session"
)

func TestAddAndGet(t *testing.T) {
	repo := NewRepo(slog.Default())
	conn := &websocket.Conn{}

	require.NoError(t, repo.Add(conn, "alice", "AB123"))

	sess, err := repo.Get(conn)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "AB123", sess.RoomCode)

	err = repo.Add(conn, "alice", "AB123")
	assert.ErrorIs(t, err, session.ErrAlreadyExists)
}

func TestRemoveByConn(t *testing.T) {
	repo := NewRepo(slog.Default())
	conn := &websocket.Conn{}

	require.NoError(t, repo.Add(conn, "alice", "AB123"))

	sess, err := repo.RemoveByConn(conn)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "AB123", sess.RoomCode)

	_, err = repo.Get(conn)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = repo.RemoveByConn(conn)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestPresence(t *testing.T) {
	repo := NewRepo(slog.Default())

	conn1 := &websocket.Conn{}
	conn2 := &websocket.Conn{}
	conn3 := &websocket.Conn{}

	require.NoError(t, repo.Add(conn1, "alice", "AB123"))
	require.NoError(t, repo.Add(conn2, "bob", "AB123"))
	require.NoError(t, repo.Add(conn3, "carol", "XY999"))

	assert.Equal(t, []string{"alice", "bob"}, repo.Presence("AB123"))
	assert.Equal(t, []string{"carol"}, repo.Presence("XY999"))
	assert.Empty(t, repo.Presence("ZZ000"))

	_, err := repo.RemoveByConn(conn2)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, repo.Presence("AB123"))
}

func TestPresenceDeduplicatesUsernames(t *testing.T) {
	repo := NewRepo(slog.Default())

	conn1 := &websocket.Conn{}
	conn2 := &websocket.Conn{}

	require.NoError(t, repo.Add(conn1, "alice", "AB123"))
	require.NoError(t, repo.Add(conn2, "alice", "AB123"))

	assert.Equal(t, []string{"alice"}, repo.Presence("AB123"))
	assert.Len(t, repo.Conns("AB123"), 2)

	_, err := repo.RemoveByConn(conn1)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, repo.Presence("AB123"))
}
