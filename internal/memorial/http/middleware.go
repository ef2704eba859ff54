package http

import (
	"context"
	"net/http"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/pkg/httpx"
)

type ctxKey string

const ctxKeyUser ctxKey = "session_user"

// userFrom returns the session user injected by requireSession.
func userFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// requireSession resolves the caller's session and injects the user into the
// request context. No resolvable session means 401; handlers behind this
// middleware can assume a user is present.
func (r *Router) requireSession() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user, ok := r.SessionService.Resolve(req.Context(), req)
			if !ok {
				httpx.ErrUnauthorized.WriteError(w)
				return
			}

			ctx := context.WithValue(req.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// requireAdmin gates a route on the admin role. Must run after
// requireSession; an authenticated non-admin gets 403.
func requireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user, ok := userFrom(req.Context())
			if !ok {
				httpx.ErrUnauthorized.WriteError(w)
				return
			}
			if !user.Role.IsAdmin() {
				httpx.ErrForbidden.WriteError(w)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
