package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/collabstudy/server/internal/repository/room"
)

func (r repo) getUserKey(userId string) string {
	return "user:" + userId
}

func (r repo) getUserRoomsKey(userId string) string {
	return "user:" + userId + ":rooms"
}

func (r repo) SetUser(ctx context.Context, params *room.SetUserParams) error {
	if err := r.rc.HSet(ctx, r.getUserKey(params.UserId),
		"user_id", params.UserId,
		"name", params.Name,
		"email", params.Email,
		"picture", params.Picture,
	).Err(); err != nil {
		return fmt.Errorf("failed to set user: %w", err)
	}

	return nil
}

func (r repo) GetUser(ctx context.Context, userId string) (room.User, error) {
	userKey := r.getUserKey(userId)
	res, err := r.rc.Exists(ctx, userKey).Result()
	if err != nil {
		return room.User{}, fmt.Errorf("failed to check if user exists: %w", err)
	}
	if res == 0 {
		return room.User{}, room.ErrUserNotFound
	}

	var user room.User
	if err := r.rc.HGetAll(ctx, userKey).Scan(&user); err != nil {
		return room.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r repo) AddRoomToUserList(ctx context.Context, params *room.AddRoomToUserListParams) error {
	if err := r.rc.SAdd(ctx, r.getUserRoomsKey(params.UserId), params.RoomCode).Err(); err != nil {
		return fmt.Errorf("failed to add room to user list: %w", err)
	}

	return nil
}

func (r repo) RemoveRoomFromUserList(ctx context.Context, params *room.RemoveRoomFromUserListParams) error {
	if err := r.rc.SRem(ctx, r.getUserRoomsKey(params.UserId), params.RoomCode).Err(); err != nil {
		return fmt.Errorf("failed to remove room from user list: %w", err)
	}

	return nil
}

func (r repo) GetUserRooms(ctx context.Context, userId string) ([]string, error) {
	rooms, err := r.rc.SMembers(ctx, r.getUserRoomsKey(userId)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user rooms: %w", err)
	}

	sort.Strings(rooms)
	return rooms, nil
}
