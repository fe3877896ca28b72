package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/internal/hub"
	"github.com/collabstudy/server/internal/playback"
	"github.com/collabstudy/server/internal/repository/room"
	"github.com/collabstudy/server/internal/repository/session"
)

type SelectMediaByQueryParams struct {
	Conn  *websocket.Conn
	Query string
}

// SelectMediaByQuery resolves free text to a media id and makes it the
// room's current media. A failed search is reported to the requester
// only, the rest of the room never hears about it.
func (s *service) SelectMediaByQuery(ctx context.Context, params *SelectMediaByQueryParams) error {
	sess, err := s.sessionRepo.Get(params.Conn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	mediaId, err := s.searcher.Search(ctx, params.Query)
	if err != nil {
		s.logger.InfoContext(ctx, "media search failed", "query", params.Query, "error", err)
		s.hub.Unicast(ctx, params.Conn, &hub.Output{
			Type:    "ERROR",
			Payload: ErrorPayload{Message: "no media found for your search"},
		})
		return nil
	}

	s.selectMedia(ctx, sess.RoomCode, mediaId)
	return nil
}

type SelectMediaByReferenceParams struct {
	Conn      *websocket.Conn
	Reference string
}

// SelectMediaByReference extracts a media id from a URL-like reference
// and makes it the room's current media.
func (s *service) SelectMediaByReference(ctx context.Context, params *SelectMediaByReferenceParams) error {
	sess, err := s.sessionRepo.Get(params.Conn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	mediaId, ok := s.parser.Parse(params.Reference)
	if !ok {
		s.hub.Unicast(ctx, params.Conn, &hub.Output{
			Type:    "ERROR",
			Payload: ErrorPayload{Message: "invalid media reference"},
		})
		return nil
	}

	s.selectMedia(ctx, sess.RoomCode, mediaId)
	return nil
}

func (s *service) selectMedia(ctx context.Context, roomCode, mediaId string) {
	var title string
	if meta, err := s.metadata.Get(mediaId); err != nil {
		s.logger.InfoContext(ctx, "failed to get media metadata", "media_id", mediaId, "error", err)
	} else {
		title = meta.Title
	}

	rs := s.getRoomState(roomCode)
	rs.mu.Lock()
	if err := s.hydrate(ctx, roomCode, rs); err != nil {
		s.logger.WarnContext(ctx, "failed to hydrate room state", "room_code", roomCode, "error", err)
	}
	rs.state = playback.Replace(mediaId, s.now())
	rs.hasMedia = true
	state := rs.state
	rs.mu.Unlock()

	// A media switch is persisted before anyone is told about it, unlike
	// the fire-and-forget nudges below.
	if err := s.roomRepo.SetPlaybackState(ctx, &room.SetPlaybackStateParams{
		RoomCode: roomCode,
		State:    state,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to persist playback state", "room_code", roomCode, "error", err)
	}

	// The originator is included: selecting media is an announcement to
	// the whole room, not a correction of peers.
	s.hub.Broadcast(ctx, roomCode, &hub.Output{
		Type: "PLAY_MEDIA",
		Payload: PlayMediaPayload{
			MediaId:  state.MediaId,
			Position: 0,
			Mode:     string(state.Mode),
			Title:    title,
		},
	}, nil)
}

type PlaybackEventParams struct {
	Conn     *websocket.Conn
	Mode     string
	Position float64
}

// PlaybackEvent applies a deliberate play, pause or seek and nudges every
// peer except the originator, whose player is already at the new state.
func (s *service) PlaybackEvent(ctx context.Context, params *PlaybackEventParams) error {
	mode := playback.Mode(params.Mode)
	if !mode.IsValid() {
		return ErrInvalidMode
	}
	if params.Position < 0 {
		return ErrInvalidPosition
	}

	sess, err := s.sessionRepo.Get(params.Conn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	rs := s.getRoomState(sess.RoomCode)
	rs.mu.Lock()
	if err := s.hydrate(ctx, sess.RoomCode, rs); err != nil {
		rs.mu.Unlock()
		return fmt.Errorf("failed to hydrate room state: %w", err)
	}
	if !rs.hasMedia {
		rs.mu.Unlock()
		return ErrNoMedia
	}
	rs.state = rs.state.ApplyEvent(mode, secondsToDuration(params.Position), s.now())
	state := rs.state
	rs.mu.Unlock()

	s.persistState(sess.RoomCode, state)

	s.hub.Broadcast(ctx, sess.RoomCode, &hub.Output{
		Type: "PLAY_MEDIA",
		Payload: PlayMediaPayload{
			MediaId:  state.MediaId,
			Position: state.Position.Seconds(),
			Mode:     string(state.Mode),
		},
	}, params.Conn)

	return nil
}

type HeartbeatSyncParams struct {
	Conn     *websocket.Conn
	Position float64
}

// HeartbeatSync absorbs a periodic position report. The timeline is
// refreshed and persisted but nothing is broadcast, so heartbeats only
// sharpen what the next joiner sees.
func (s *service) HeartbeatSync(ctx context.Context, params *HeartbeatSyncParams) error {
	if params.Position < 0 {
		return ErrInvalidPosition
	}

	sess, err := s.sessionRepo.Get(params.Conn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	rs := s.getRoomState(sess.RoomCode)
	rs.mu.Lock()
	if err := s.hydrate(ctx, sess.RoomCode, rs); err != nil {
		rs.mu.Unlock()
		return fmt.Errorf("failed to hydrate room state: %w", err)
	}
	if !rs.hasMedia {
		rs.mu.Unlock()
		s.logger.DebugContext(ctx, "heartbeat for room without media", "room_code", sess.RoomCode)
		return nil
	}
	rs.state = rs.state.ApplyEvent(rs.state.Mode, secondsToDuration(params.Position), s.now())
	state := rs.state
	rs.mu.Unlock()

	s.persistState(sess.RoomCode, state)

	return nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
