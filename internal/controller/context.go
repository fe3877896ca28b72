package controller

import (
	"context"

	"github.com/collabstudy/server/internal/identity"
)

type contextKey int

const (
	identityCtxKey contextKey = iota
)

func (c controller) getIdentityFromCtx(ctx context.Context) identity.Identity {
	ident, ok := ctx.Value(identityCtxKey).(identity.Identity)
	if !ok {
		return identity.Identity{}
	}

	return ident
}
