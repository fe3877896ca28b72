package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/collabstudy/server/internal/repository/room"
)

func (r repo) getMembersKey(roomCode string) string {
	return "room:" + roomCode + ":members"
}

func (r repo) AddMemberToList(ctx context.Context, params *room.AddMemberToListParams) error {
	membersKey := r.getMembersKey(params.RoomCode)
	if err := r.rc.SAdd(ctx, membersKey, params.Username).Err(); err != nil {
		return fmt.Errorf("failed to add member to list: %w", err)
	}

	r.rc.Expire(ctx, membersKey, r.expireDuration)

	return nil
}

func (r repo) RemoveMemberFromList(ctx context.Context, params *room.RemoveMemberFromListParams) error {
	membersKey := r.getMembersKey(params.RoomCode)
	res, err := r.rc.SRem(ctx, membersKey, params.Username).Result()
	if err != nil {
		return fmt.Errorf("failed to remove member from list: %w", err)
	}
	if res == 0 {
		return room.ErrUserNotFound
	}

	return nil
}

func (r repo) GetMembers(ctx context.Context, roomCode string) ([]string, error) {
	membersKey := r.getMembersKey(roomCode)
	members, err := r.rc.SMembers(ctx, membersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	r.rc.Expire(ctx, membersKey, r.expireDuration)

	sort.Strings(members)
	return members, nil
}

func (r repo) IsMemberInList(ctx context.Context, roomCode, username string) (bool, error) {
	isMember, err := r.rc.SIsMember(ctx, r.getMembersKey(roomCode), username).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if member is in list: %w", err)
	}

	return isMember, nil
}
