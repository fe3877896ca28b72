package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/collabstudy/server/internal/identity"
	"github.com/collabstudy/server/pkg/ctxlogger"
	"github.com/collabstudy/server/pkg/rest"
)

func (c controller) requestIdMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxlogger.AppendCtx(r.Context(), slog.String("request_id", uuid.NewString()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (c controller) requestLoggingMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"url", r.URL.String(),
			"remote_addr", r.RemoteAddr,
		)
		next.ServeHTTP(w, r)
	})
}

// authMw verifies the bearer token on every request. Verification also
// upserts the user document, so a valid token is enough to act.
func (c controller) authMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			rest.WriteJSON(w, http.StatusUnauthorized, rest.Envelope{"error": "token was not provided"})
			return
		}

		ident, err := c.roomService.VerifyToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrAuthFailed) {
				rest.WriteJSON(w, http.StatusUnauthorized, rest.Envelope{"error": "authentication failed"})
				return
			}
			c.logger.WarnContext(r.Context(), "failed to verify token", "error", err)
			rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
			return
		}

		ctx := context.WithValue(r.Context(), identityCtxKey, ident)
		ctx = ctxlogger.AppendCtx(ctx, slog.String("user_id", ident.UserId))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
