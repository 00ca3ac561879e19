// Package admin guards the administrative credential routes with a shared
// operator token.
package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/httputil"
	"coursecred/pkg/requestcontext"
)

const (
	HeaderToken   = "X-Admin-Token"
	HeaderActorID = "X-Admin-Actor-ID"

	MaxActorIDLength = 256
)

type actorKey struct{}

// ActorID returns the operator named by the request, or "".
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}

func tokenMatches(expected, got string) bool {
	return expected != "" && subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

// RequireAdminToken answers 401 unless X-Admin-Token equals expected. An
// empty expected token rejects every request. X-Admin-Actor-ID, when present,
// names the operator in logs.
func RequireAdminToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !tokenMatches(expected, r.Header.Get(HeaderToken)) {
				logger.WarnContext(ctx, "admin request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			if actor := r.Header.Get(HeaderActorID); actor != "" && len(actor) <= MaxActorIDLength {
				ctx = context.WithValue(ctx, actorKey{}, actor)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
