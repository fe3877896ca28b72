package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/collabstudy/server/internal/identity"
	"github.com/collabstudy/server/internal/service/room"
	"github.com/collabstudy/server/pkg/rest"
)

type verifyTokenInput struct {
	Token string `json:"token" validate:"required"`
}

func (c controller) verifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenInput

	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	ident, err := c.roomService.VerifyToken(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, identity.ErrAuthFailed) {
			rest.WriteJSON(w, http.StatusUnauthorized, rest.Envelope{"error": "authentication failed"})
			return
		}
		c.logger.WarnContext(r.Context(), "failed to verify token", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": ident})
}

func (c controller) createRoom(w http.ResponseWriter, r *http.Request) {
	ident := c.getIdentityFromCtx(r.Context())

	createRoomResp, err := c.roomService.CreateRoom(r.Context(), &room.CreateRoomParams{
		UserId:   ident.UserId,
		Username: ident.Name,
	})
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to create room", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"data": map[string]any{
		"room_code": createRoomResp.RoomCode,
	}})
}

func (c controller) joinRoom(w http.ResponseWriter, r *http.Request) {
	ident := c.getIdentityFromCtx(r.Context())

	roomCode := chi.URLParam(r, "room-code")
	if roomCode == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	if err := c.roomService.JoinRoom(r.Context(), &room.JoinRoomParams{
		UserId:   ident.UserId,
		Username: ident.Name,
		RoomCode: roomCode,
	}); err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		case errors.Is(err, room.ErrRoomFull):
			rest.WriteJSON(w, http.StatusConflict, rest.Envelope{"error": "room is full"})
		default:
			c.logger.WarnContext(r.Context(), "failed to join room", "error", err)
			rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]any{
		"room_code": roomCode,
	}})
}

func (c controller) leaveRoom(w http.ResponseWriter, r *http.Request) {
	ident := c.getIdentityFromCtx(r.Context())

	roomCode := chi.URLParam(r, "room-code")
	if roomCode == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	if err := c.roomService.LeaveRoom(r.Context(), &room.LeaveRoomParams{
		UserId:   ident.UserId,
		RoomCode: roomCode,
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to leave room", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]any{
		"room_code": roomCode,
	}})
}

func (c controller) listRooms(w http.ResponseWriter, r *http.Request) {
	ident := c.getIdentityFromCtx(r.Context())

	rooms, err := c.roomService.GetUserRooms(r.Context(), ident.UserId)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to get user rooms", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]any{
		"rooms": rooms,
	}})
}
