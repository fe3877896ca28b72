package room

import (
	"context"
	"fmt"

	"github.com/collabstudy/server/internal/identity"
	"github.com/collabstudy/server/internal/repository/room"
)

// VerifyToken resolves the token through the identity collaborator and
// upserts the user document.
func (s service) VerifyToken(ctx context.Context, token string) (identity.Identity, error) {
	ident, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to verify token: %w", err)
	}

	if err := s.roomRepo.SetUser(ctx, &room.SetUserParams{
		UserId:  ident.UserId,
		Name:    ident.Name,
		Email:   ident.Email,
		Picture: ident.Picture,
	}); err != nil {
		return identity.Identity{}, fmt.Errorf("failed to set user: %w", err)
	}

	return ident, nil
}

func (s service) GetUserRooms(ctx context.Context, userId string) ([]string, error) {
	rooms, err := s.roomRepo.GetUserRooms(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to get user rooms: %w", err)
	}

	return rooms, nil
}
