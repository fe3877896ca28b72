package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/internal/hub"
	"github.com/collabstudy/server/internal/repository/room"
	"github.com/collabstudy/server/internal/repository/session"
)

type JoinRoomParams struct {
	Conn     *websocket.Conn
	Username string
	RoomCode string
}

// JoinRoom attaches a connection to a room and brings it up to date: the
// room is notified about the arrival and the joiner alone receives the
// current timeline, projected to this instant.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) error {
	if _, err := s.roomRepo.GetRoom(ctx, params.RoomCode); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	isMember, err := s.roomRepo.IsMemberInList(ctx, params.RoomCode, params.Username)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return ErrNotAMember
	}

	if err := s.sessionRepo.Add(params.Conn, params.Username, params.RoomCode); err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	s.hub.Add(params.Conn, params.RoomCode)

	rs := s.getRoomState(params.RoomCode)
	rs.mu.Lock()
	if err := s.hydrate(ctx, params.RoomCode, rs); err != nil {
		rs.mu.Unlock()
		return fmt.Errorf("failed to hydrate room state: %w", err)
	}
	state, hasMedia := rs.state, rs.hasMedia
	rs.mu.Unlock()

	s.hub.Broadcast(ctx, params.RoomCode, &hub.Output{
		Type:    "MESSAGE",
		Payload: MessagePayload{Text: params.Username + " has entered the room"},
	}, nil)

	if err := s.broadcastPresence(ctx, params.RoomCode); err != nil {
		s.logger.WarnContext(ctx, "failed to broadcast presence", "room_code", params.RoomCode, "error", err)
	}

	if hasMedia {
		s.hub.Unicast(ctx, params.Conn, &hub.Output{
			Type: "PLAY_MEDIA",
			Payload: PlayMediaPayload{
				MediaId:  state.MediaId,
				Position: state.Project(s.now()).Seconds(),
				Mode:     string(state.Mode),
			},
		})
	}

	return nil
}

// LeaveRoom detaches a connection. The room's timeline is retained so a
// later rejoin resumes where the room left off.
func (s *service) LeaveRoom(ctx context.Context, conn *websocket.Conn) error {
	sess, err := s.sessionRepo.RemoveByConn(conn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.hub.Remove(conn, sess.RoomCode)

	s.hub.Broadcast(ctx, sess.RoomCode, &hub.Output{
		Type:    "MESSAGE",
		Payload: MessagePayload{Text: sess.Username + " has left the room"},
	}, nil)

	if err := s.broadcastPresence(ctx, sess.RoomCode); err != nil {
		s.logger.WarnContext(ctx, "failed to broadcast presence", "room_code", sess.RoomCode, "error", err)
	}

	return nil
}

func (s *service) broadcastPresence(ctx context.Context, roomCode string) error {
	members, err := s.roomRepo.GetMembers(ctx, roomCode)
	if err != nil {
		return fmt.Errorf("failed to get members: %w", err)
	}

	s.hub.Broadcast(ctx, roomCode, &hub.Output{
		Type: "PRESENCE_UPDATED",
		Payload: PresencePayload{
			Members: members,
			Online:  s.sessionRepo.Presence(roomCode),
		},
	}, nil)

	return nil
}
