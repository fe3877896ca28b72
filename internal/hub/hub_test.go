package hub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialPair opens a real websocket connection through an httptest server
// and returns both ends of it.
func dialPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server side of the connection")
	}
	t.Cleanup(func() { server.Close() })

	return server, client
}

func readFrame(t *testing.T, conn *websocket.Conn) Output {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(time.Second))

	var out Output
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func assertNoFrame(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))

	var out Output
	assert.Error(t, conn.ReadJSON(&out), "expected no frame to arrive")
}

func newTestHub() *Hub {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBroadcastReachesRoom(t *testing.T) {
	h := newTestHub()

	server1, client1 := dialPair(t)
	server2, client2 := dialPair(t)
	h.Add(server1, "AB123")
	h.Add(server2, "AB123")

	h.Broadcast(context.Background(), "AB123", &Output{Type: "MESSAGE", Payload: map[string]any{"text": "hi"}}, nil)

	for _, client := range []*websocket.Conn{client1, client2} {
		out := readFrame(t, client)
		assert.Equal(t, "MESSAGE", out.Type)
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	h := newTestHub()

	server1, client1 := dialPair(t)
	server2, client2 := dialPair(t)
	h.Add(server1, "AB123")
	h.Add(server2, "AB123")

	h.Broadcast(context.Background(), "AB123", &Output{Type: "PLAY_MEDIA"}, server1)

	out := readFrame(t, client2)
	assert.Equal(t, "PLAY_MEDIA", out.Type)
	assertNoFrame(t, client1)
}

func TestBroadcastIsScopedToRoom(t *testing.T) {
	h := newTestHub()

	server1, client1 := dialPair(t)
	server2, client2 := dialPair(t)
	h.Add(server1, "AB123")
	h.Add(server2, "XY999")

	h.Broadcast(context.Background(), "AB123", &Output{Type: "MESSAGE"}, nil)

	readFrame(t, client1)
	assertNoFrame(t, client2)
}

func TestUnicast(t *testing.T) {
	h := newTestHub()

	server1, client1 := dialPair(t)

	payload := map[string]any{"media_id": "vid1", "position": 12.5}
	h.Unicast(context.Background(), server1, &Output{Type: "PLAY_MEDIA", Payload: payload})

	out := readFrame(t, client1)
	assert.Equal(t, "PLAY_MEDIA", out.Type)

	raw, err := json.Marshal(out.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"media_id":"vid1","position":12.5}`, string(raw))
}

func TestRemoveStopsDelivery(t *testing.T) {
	h := newTestHub()

	server1, client1 := dialPair(t)
	h.Add(server1, "AB123")
	h.Remove(server1, "AB123")

	h.Broadcast(context.Background(), "AB123", &Output{Type: "MESSAGE"}, nil)

	assertNoFrame(t, client1)
}
