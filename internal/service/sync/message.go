package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/internal/hub"
	"github.com/collabstudy/server/internal/repository/session"
)

type SendMessageParams struct {
	Conn *websocket.Conn
	Text string
}

// SendMessage relays a chat message to the whole room, sender included.
func (s *service) SendMessage(ctx context.Context, params *SendMessageParams) error {
	sess, err := s.sessionRepo.Get(params.Conn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	s.hub.Broadcast(ctx, sess.RoomCode, &hub.Output{
		Type: "MESSAGE",
		Payload: MessagePayload{
			From: sess.Username,
			Text: params.Text,
		},
	}, nil)

	return nil
}
