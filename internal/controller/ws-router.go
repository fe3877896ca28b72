package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/pkg/ctxlogger"
	"github.com/collabstudy/server/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.wsRequestIdMw)
	mux.Use(c.wsLoggingMw)

	mux.Handle("ALIVE", c.handleAlive)
	mux.Handle("SEND_MESSAGE", c.handleSendMessage)
	mux.Handle("SEARCH_MEDIA", c.handleSearchMedia)
	mux.Handle("PLAY_FROM_URL", c.handlePlayFromUrl)
	mux.Handle("PLAYBACK_EVENT", c.handlePlaybackEvent)
	mux.Handle("SYNC_POSITION", c.handleSyncPosition)

	return mux
}

func (c controller) wsRequestIdMw(next wsrouter.HandlerFunc) wsrouter.HandlerFunc {
	return func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
		ctx = ctxlogger.AppendCtx(ctx, slog.String("ws_request_id", uuid.NewString()))
		return next(ctx, conn, payload)
	}
}

func (c controller) wsLoggingMw(next wsrouter.HandlerFunc) wsrouter.HandlerFunc {
	return func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
		ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)))
		c.logger.DebugContext(ctx, "websocket message received")

		start := time.Now()
		err := next(ctx, conn, payload)

		c.logger.DebugContext(ctx, "websocket message handled",
			"processing_time_us", time.Since(start).Microseconds(),
		)

		return err
	}
}
