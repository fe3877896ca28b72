package redis

import (
	"context"
	"fmt"

	"github.com/collabstudy/server/internal/repository/room"
)

func (r repo) getRoomKey(roomCode string) string {
	return "room:" + roomCode
}

func (r repo) SetRoom(ctx context.Context, params *room.SetRoomParams) error {
	roomKey := r.getRoomKey(params.RoomCode)
	if err := r.rc.HSet(ctx, roomKey,
		"room_code", params.RoomCode,
		"created_by", params.CreatedBy,
	).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return nil
}

func (r repo) GetRoom(ctx context.Context, roomCode string) (room.Room, error) {
	roomKey := r.getRoomKey(roomCode)
	res, err := r.rc.Exists(ctx, roomKey).Result()
	if err != nil {
		return room.Room{}, fmt.Errorf("failed to check if room exists: %w", err)
	}
	if res == 0 {
		return room.Room{}, room.ErrRoomNotFound
	}

	var roomData room.Room
	if err := r.rc.HGetAll(ctx, roomKey).Scan(&roomData); err != nil {
		return room.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return roomData, nil
}

func (r repo) RoomExists(ctx context.Context, roomCode string) (bool, error) {
	res, err := r.rc.Exists(ctx, r.getRoomKey(roomCode)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if room exists: %w", err)
	}

	return res > 0, nil
}
