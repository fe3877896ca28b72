package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lofi", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "video", r.URL.Query().Get("type"))

		w.Write([]byte(`{"items":[{"id":{"videoId":"dQw4w9WgXcQ"}}]}`))
	}))
	defer server.Close()

	searcher := NewSearcherWithBaseURL("test-key", server.URL)

	mediaId, err := searcher.Search(context.Background(), "lofi")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", mediaId)
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	searcher := NewSearcherWithBaseURL("test-key", server.URL)

	_, err := searcher.Search(context.Background(), "gibberish")
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	searcher := NewSearcherWithBaseURL("test-key", server.URL)

	_, err := searcher.Search(context.Background(), "lofi")
	assert.Error(t, err)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	searcher := NewSearcherWithBaseURL("test-key", "http://localhost:1")

	_, err := searcher.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSearchRequiresApiKey(t *testing.T) {
	searcher := NewSearcherWithBaseURL("", "http://localhost:1")

	_, err := searcher.Search(context.Background(), "lofi")
	assert.Error(t, err)
}
