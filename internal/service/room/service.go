package room

import (
	"context"
	"errors"

	"github.com/collabstudy/server/internal/identity"
	"github.com/collabstudy/server/internal/repository/room"
	"github.com/collabstudy/server/pkg/randstr"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

type iRoomRepo interface {
	SetRoom(ctx context.Context, params *room.SetRoomParams) error
	RoomExists(ctx context.Context, roomCode string) (bool, error)
	AddMemberToList(ctx context.Context, params *room.AddMemberToListParams) error
	GetMembers(ctx context.Context, roomCode string) ([]string, error)
	IsMemberInList(ctx context.Context, roomCode, username string) (bool, error)
	SetUser(ctx context.Context, params *room.SetUserParams) error
	AddRoomToUserList(ctx context.Context, params *room.AddRoomToUserListParams) error
	RemoveRoomFromUserList(ctx context.Context, params *room.RemoveRoomFromUserListParams) error
	GetUserRooms(ctx context.Context, userId string) ([]string, error)
}

type iVerifier interface {
	VerifyToken(ctx context.Context, token string) (identity.Identity, error)
}

type service struct {
	roomRepo     iRoomRepo
	verifier     iVerifier
	letters      *randstr.Generator
	digits       *randstr.Generator
	membersLimit int
}

func NewService(roomRepo iRoomRepo, verifier iVerifier, membersLimit int) *service {
	return &service{
		roomRepo:     roomRepo,
		verifier:     verifier,
		letters:      randstr.New([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")),
		digits:       randstr.New([]byte("0123456789")),
		membersLimit: membersLimit,
	}
}

// generateRoomCode builds a short human-typeable token, two uppercase
// letters followed by three digits.
func (s service) generateRoomCode() string {
	return s.letters.GenerateRandomString(2) + s.digits.GenerateRandomString(3)
}
