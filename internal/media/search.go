package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrMediaNotFound = errors.New("media not found")

const defaultSearchBaseURL = "https://www.googleapis.com/youtube/v3/search"

// Searcher resolves free text to a media id through the YouTube Data API.
type Searcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSearcher(apiKey string) *Searcher {
	return &Searcher{
		apiKey:  apiKey,
		baseURL: defaultSearchBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewSearcherWithBaseURL is used by tests to point the searcher at a stub.
func NewSearcherWithBaseURL(apiKey, baseURL string) *Searcher {
	s := NewSearcher(apiKey)
	s.baseURL = baseURL
	return s
}

type searchResponse struct {
	Items []struct {
		Id struct {
			VideoId string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

func (s Searcher) Search(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("search query cannot be empty")
	}
	if s.apiKey == "" {
		return "", errors.New("search api key is not configured")
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", "1")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Items) == 0 {
		return "", fmt.Errorf("no results for %q: %w", query, ErrMediaNotFound)
	}

	return result.Items[0].Id.VideoId, nil
}
