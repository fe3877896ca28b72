package room

import (
	"context"
	"fmt"

	"github.com/collabstudy/server/internal/repository/room"
)

type CreateRoomParams struct {
	UserId   string
	Username string
}

type CreateRoomResponse struct {
	RoomCode string
}

func (s service) CreateRoom(ctx context.Context, params *CreateRoomParams) (CreateRoomResponse, error) {
	roomCode := s.generateRoomCode()

	if err := s.roomRepo.SetRoom(ctx, &room.SetRoomParams{
		RoomCode:  roomCode,
		CreatedBy: params.UserId,
	}); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to set room: %w", err)
	}

	if err := s.roomRepo.AddMemberToList(ctx, &room.AddMemberToListParams{
		RoomCode: roomCode,
		Username: params.Username,
	}); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to add member to list: %w", err)
	}

	if err := s.roomRepo.AddRoomToUserList(ctx, &room.AddRoomToUserListParams{
		UserId:   params.UserId,
		RoomCode: roomCode,
	}); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to add room to user list: %w", err)
	}

	return CreateRoomResponse{RoomCode: roomCode}, nil
}

type JoinRoomParams struct {
	UserId   string
	Username string
	RoomCode string
}

func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) error {
	exists, err := s.roomRepo.RoomExists(ctx, params.RoomCode)
	if err != nil {
		return fmt.Errorf("failed to check if room exists: %w", err)
	}
	if !exists {
		return ErrRoomNotFound
	}

	isMember, err := s.roomRepo.IsMemberInList(ctx, params.RoomCode, params.Username)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		members, err := s.roomRepo.GetMembers(ctx, params.RoomCode)
		if err != nil {
			return fmt.Errorf("failed to get members: %w", err)
		}
		if len(members) >= s.membersLimit {
			return ErrRoomFull
		}
	}

	if err := s.roomRepo.AddMemberToList(ctx, &room.AddMemberToListParams{
		RoomCode: params.RoomCode,
		Username: params.Username,
	}); err != nil {
		return fmt.Errorf("failed to add member to list: %w", err)
	}

	if err := s.roomRepo.AddRoomToUserList(ctx, &room.AddRoomToUserListParams{
		UserId:   params.UserId,
		RoomCode: params.RoomCode,
	}); err != nil {
		return fmt.Errorf("failed to add room to user list: %w", err)
	}

	return nil
}

type LeaveRoomParams struct {
	UserId   string
	RoomCode string
}

// LeaveRoom drops the room from the user's room list. Membership in the
// room document is retained so the user can rejoin with the room code.
func (s service) LeaveRoom(ctx context.Context, params *LeaveRoomParams) error {
	if err := s.roomRepo.RemoveRoomFromUserList(ctx, &room.RemoveRoomFromUserListParams{
		UserId:   params.UserId,
		RoomCode: params.RoomCode,
	}); err != nil {
		return fmt.Errorf("failed to remove room from user list: %w", err)
	}

	return nil
}
