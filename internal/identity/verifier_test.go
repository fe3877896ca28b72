package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-123", body["token"])

		json.NewEncoder(w).Encode(Identity{
			UserId:  "uid-1",
			Name:    "alice",
			Email:   "alice@example.com",
			Picture: "https://example.com/a.png",
		})
	}))
	defer server.Close()

	verifier := NewVerifier(server.URL)

	ident, err := verifier.VerifyToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", ident.UserId)
	assert.Equal(t, "alice", ident.Name)
}

func TestVerifyTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	verifier := NewVerifier(server.URL)

	_, err := verifier.VerifyToken(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestVerifyTokenEmptyUserId(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"alice"}`))
	}))
	defer server.Close()

	verifier := NewVerifier(server.URL)

	_, err := verifier.VerifyToken(context.Background(), "tok-123")
	assert.ErrorIs(t, err, ErrAuthFailed)
}
