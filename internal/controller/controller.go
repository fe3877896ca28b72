package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/internal/identity"
	"github.com/collabstudy/server/internal/service/room"
	"github.com/collabstudy/server/internal/service/sync"
	"github.com/collabstudy/server/pkg/validator"
	"github.com/collabstudy/server/pkg/wsrouter"
)

var ErrValidation = errors.New("validation error")

type iRoomService interface {
	VerifyToken(ctx context.Context, token string) (identity.Identity, error)
	CreateRoom(context.Context, *room.CreateRoomParams) (room.CreateRoomResponse, error)
	JoinRoom(context.Context, *room.JoinRoomParams) error
	LeaveRoom(context.Context, *room.LeaveRoomParams) error
	GetUserRooms(ctx context.Context, userId string) ([]string, error)
}

type iSyncService interface {
	JoinRoom(context.Context, *sync.JoinRoomParams) error
	LeaveRoom(ctx context.Context, conn *websocket.Conn) error
	SendMessage(context.Context, *sync.SendMessageParams) error
	SelectMediaByQuery(context.Context, *sync.SelectMediaByQueryParams) error
	SelectMediaByReference(context.Context, *sync.SelectMediaByReferenceParams) error
	PlaybackEvent(context.Context, *sync.PlaybackEventParams) error
	HeartbeatSync(context.Context, *sync.HeartbeatSyncParams) error
}

type controller struct {
	roomService iRoomService
	syncService iSyncService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger
}

func NewController(roomService iRoomService, syncService iSyncService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService: roomService,
		syncService: syncService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
