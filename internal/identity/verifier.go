package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrAuthFailed = errors.New("authentication failed")

type Identity struct {
	UserId  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Verifier resolves an opaque client token to an identity through an
// external verification endpoint.
type Verifier struct {
	endpoint string
	client   *http.Client
}

func NewVerifier(endpoint string) *Verifier {
	return &Verifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v Verifier) VerifyToken(ctx context.Context, token string) (Identity, error) {
	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, ErrAuthFailed)
	}

	var result Identity
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Identity{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.UserId == "" {
		return Identity{}, fmt.Errorf("empty user id: %w", ErrAuthFailed)
	}

	return result, nil
}
