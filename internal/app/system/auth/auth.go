package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ckluximon/ubuntoo/internal/app/system/apierr"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// Principal is the authenticated caller injected into r.Context().
// It is fetched fresh from the user directory on every request so profile
// updates and deactivations take effect immediately.
type Principal struct {
	ID       string
	Username string
	Email    string
	FullName string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the principal & “found?” flag.
func CurrentUser(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(currentUserKey).(*Principal)
	return p, ok
}

// UserFetcher loads the principal for a resolved token subject. It returns
// nil when the subject no longer exists (or any lookup error occurs), which
// the middleware treats as an unknown subject.
type UserFetcher interface {
	FetchPrincipal(ctx context.Context, userID string) *Principal
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer middleware                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// Verifier resolves a bearer token string to a user id.
type Verifier interface {
	Resolve(token string) (string, error)
}

// RequireBearer authenticates every request on the wrapped routes.
//
// It extracts the Authorization: Bearer token, resolves it to a subject id,
// and fetches the principal from the directory. Responses are 401 JSON for a
// missing/invalid/expired token and for a subject that no longer exists.
func RequireBearer(tokens Verifier, fetcher UserFetcher, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				apierr.Write(w, log, apierr.Auth("not authenticated"))
				return
			}

			userID, err := tokens.Resolve(raw)
			if err != nil {
				apierr.Write(w, log, apierr.Auth("invalid token"))
				return
			}

			p := fetcher.FetchPrincipal(r.Context(), userID)
			if p == nil {
				apierr.Write(w, log, apierr.Auth("user not found"))
				return
			}

			next.ServeHTTP(w, withUser(r, p))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// helpers

func withUser(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, p))
}

// WithTestUser injects a principal directly into the request context.
// For handler tests only; bypasses token resolution.
func WithTestUser(r *http.Request, p *Principal) *http.Request {
	return withUser(r, p)
}
