package room

import "github.com/collabstudy/server/internal/playback"

type SetRoomParams struct {
	RoomCode  string
	CreatedBy string
}

type AddMemberToListParams struct {
	RoomCode string
	Username string
}

type RemoveMemberFromListParams struct {
	RoomCode string
	Username string
}

type SetPlaybackStateParams struct {
	RoomCode string
	State    playback.State
}

type SetUserParams struct {
	UserId  string
	Name    string
	Email   string
	Picture string
}

type AddRoomToUserListParams struct {
	UserId   string
	RoomCode string
}

type RemoveRoomFromUserListParams struct {
	UserId   string
	RoomCode string
}
