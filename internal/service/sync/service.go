package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/internal/hub"
	"github.com/collabstudy/server/internal/media"
	"github.com/collabstudy/server/internal/playback"
	"github.com/collabstudy/server/internal/repository/room"
	"github.com/collabstudy/server/internal/repository/session"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotAMember      = errors.New("not a member of the room")
	ErrNoMedia         = errors.New("no media selected")
	ErrInvalidMode     = errors.New("invalid playback mode")
	ErrInvalidPosition = errors.New("invalid playback position")
)

type iRoomRepo interface {
	GetRoom(ctx context.Context, roomCode string) (room.Room, error)
	GetMembers(ctx context.Context, roomCode string) ([]string, error)
	IsMemberInList(ctx context.Context, roomCode, username string) (bool, error)
	SetPlaybackState(ctx context.Context, params *room.SetPlaybackStateParams) error
	GetPlaybackState(ctx context.Context, roomCode string) (playback.State, error)
}

type iSessionRepo interface {
	Add(conn *websocket.Conn, username, roomCode string) error
	RemoveByConn(conn *websocket.Conn) (session.Session, error)
	Get(conn *websocket.Conn) (session.Session, error)
	Presence(roomCode string) []string
}

type iHub interface {
	Add(conn *websocket.Conn, roomCode string)
	Remove(conn *websocket.Conn, roomCode string)
	Broadcast(ctx context.Context, roomCode string, out *hub.Output, exclude *websocket.Conn)
	Unicast(ctx context.Context, conn *websocket.Conn, out *hub.Output)
}

type iMediaSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

type iMediaParser interface {
	Parse(reference string) (string, bool)
}

type iMediaMetadata interface {
	Get(mediaId string) (*media.Metadata, error)
}

// roomState is the in-memory authority for one room's timeline. Every
// read and mutation happens under mu, so events within a room are
// strictly serialized.
type roomState struct {
	mu       sync.Mutex
	state    playback.State
	hasMedia bool
	hydrated bool
}

type service struct {
	roomRepo    iRoomRepo
	sessionRepo iSessionRepo
	hub         iHub
	searcher    iMediaSearcher
	parser      iMediaParser
	metadata    iMediaMetadata
	logger      *slog.Logger

	roomsMu sync.Mutex
	rooms   map[string]*roomState

	now func() time.Time
}

func NewService(
	roomRepo iRoomRepo,
	sessionRepo iSessionRepo,
	hub iHub,
	searcher iMediaSearcher,
	parser iMediaParser,
	metadata iMediaMetadata,
	logger *slog.Logger,
) *service {
	return &service{
		roomRepo:    roomRepo,
		sessionRepo: sessionRepo,
		hub:         hub,
		searcher:    searcher,
		parser:      parser,
		metadata:    metadata,
		logger:      logger,
		rooms:       make(map[string]*roomState),
		now:         time.Now,
	}
}

func (s *service) getRoomState(roomCode string) *roomState {
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	rs, ok := s.rooms[roomCode]
	if !ok {
		rs = &roomState{}
		s.rooms[roomCode] = rs
	}

	return rs
}

// hydrate loads the persisted snapshot on the first touch of a room.
// Caller holds rs.mu. A missing or malformed snapshot reads as no media.
func (s *service) hydrate(ctx context.Context, roomCode string, rs *roomState) error {
	if rs.hydrated {
		return nil
	}

	state, err := s.roomRepo.GetPlaybackState(ctx, roomCode)
	switch {
	case err == nil:
		rs.state = state
		rs.hasMedia = true
	case errors.Is(err, room.ErrNoMedia):
		// fresh room
	default:
		return err
	}

	rs.hydrated = true
	return nil
}

// persistState writes the snapshot in the background. Persistence never
// blocks or fails the event that triggered it.
func (s *service) persistState(roomCode string, state playback.State) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.roomRepo.SetPlaybackState(ctx, &room.SetPlaybackStateParams{
			RoomCode: roomCode,
			State:    state,
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to persist playback state", "room_code", roomCode, "error", err)
		}
	}()
}
