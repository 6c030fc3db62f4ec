package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// AuthHeader carries the session token on requests and responses.
const AuthHeader = "x-auth"

// ErrUnauthenticated marks a missing, invalid or revoked session token.
// Authenticators wrap or return it for rejections; any other error is treated
// as a failure to check the token.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator resolves a raw session token to the id of its user.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (userID string, err error)
}

// ErrorWriter renders err as the response for r.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware rejects requests without a live session token in the
// x-auth header and injects the user id and token into the context. Failures
// are handed to writeErr, which receives ErrUnauthenticated for rejected
// tokens and the authenticator's error otherwise.
func AuthnMiddleware(a Authenticator, writeErr ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := strings.TrimSpace(r.Header.Get(AuthHeader))
			if raw == "" {
				writeErr(w, r, ErrUnauthenticated)
				return
			}

			userID, err := a.AuthenticateToken(ctx, raw)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					log.Debug("session token rejected", "err", err)
				}
				writeErr(w, r, err)
				return
			}

			ctx = slogx.WithContext(WithAuth(ctx, userID, raw), log.With("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
