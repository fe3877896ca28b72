package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/collabstudy/server/internal/service/sync"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (c controller) joinRoomWS(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "room-code")
	username := r.URL.Query().Get("username")
	if roomCode == "" || username == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	if err := c.syncService.JoinRoom(r.Context(), &sync.JoinRoomParams{
		Conn:     conn,
		Username: username,
		RoomCode: roomCode,
	}); err != nil {
		c.logger.InfoContext(r.Context(), "failed to join room", "room_code", roomCode, "error", err)
		conn.WriteJSON(&Output{Type: "ERROR", Payload: sync.ErrorPayload{Message: joinErrorMessage(err)}})
		conn.Close()
		return
	}
	defer func() {
		if err := c.syncService.LeaveRoom(r.Context(), conn); err != nil {
			c.logger.WarnContext(r.Context(), "failed to leave room", "error", err)
		}
	}()

	if err := c.wsmux.ServeConn(r.Context(), conn, c.wsErrorHandler); err != nil {
		c.logger.DebugContext(r.Context(), "connection closed", "error", err)
	}
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, sync.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, sync.ErrNotAMember):
		return "you are not a member of this room"
	default:
		return "failed to join room"
	}
}

func (c controller) wsErrorHandler(ctx context.Context, conn *websocket.Conn, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, sync.ErrInvalidMode),
		errors.Is(err, sync.ErrInvalidPosition),
		errors.Is(err, sync.ErrNoMedia):
		conn.WriteJSON(&Output{Type: "ERROR", Payload: sync.ErrorPayload{Message: err.Error()}})
	default:
		c.logger.WarnContext(ctx, "failed to handle message", "error", err)
		conn.WriteJSON(&Output{Type: "ERROR", Payload: sync.ErrorPayload{Message: "internal error"}})
	}
}

func (c controller) unmarshalAndValidate(payload json.RawMessage, dst any) error {
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if validationErrors, ok := c.validate.Validate(dst); !ok {
		return fmt.Errorf("%w: %s", ErrValidation, validationErrors[0].Message)
	}

	return nil
}

type SendMessageInput struct {
	Text string `json:"text" validate:"required,max=500"`
}

func (c controller) handleSendMessage(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input SendMessageInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	return c.syncService.SendMessage(ctx, &sync.SendMessageParams{
		Conn: conn,
		Text: input.Text,
	})
}

type SearchMediaInput struct {
	Query string `json:"query" validate:"required,max=200"`
}

func (c controller) handleSearchMedia(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input SearchMediaInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	return c.syncService.SelectMediaByQuery(ctx, &sync.SelectMediaByQueryParams{
		Conn:  conn,
		Query: input.Query,
	})
}

type PlayFromUrlInput struct {
	Url string `json:"url" validate:"required,max=500"`
}

func (c controller) handlePlayFromUrl(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input PlayFromUrlInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	return c.syncService.SelectMediaByReference(ctx, &sync.SelectMediaByReferenceParams{
		Conn:      conn,
		Reference: input.Url,
	})
}

type PlaybackEventInput struct {
	Mode     string  `json:"mode" validate:"required,oneof=playing paused"`
	Position float64 `json:"position" validate:"gte=0"`
}

func (c controller) handlePlaybackEvent(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input PlaybackEventInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	return c.syncService.PlaybackEvent(ctx, &sync.PlaybackEventParams{
		Conn:     conn,
		Mode:     input.Mode,
		Position: input.Position,
	})
}

type SyncPositionInput struct {
	Position float64 `json:"position" validate:"gte=0"`
}

func (c controller) handleSyncPosition(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
	var input SyncPositionInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	return c.syncService.HeartbeatSync(ctx, &sync.HeartbeatSyncParams{
		Conn:     conn,
		Position: input.Position,
	})
}

func (c controller) handleAlive(_ context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	return nil
}
