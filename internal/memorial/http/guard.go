package http

import (
	"net/http"
	"strings"

	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/pkg/httpx"
)

const (
	loginPath     = "/auth/login"
	registerPath  = "/auth/register"
	dashboardPath = "/dashboard"
)

// PageGuard enforces session redirects on page navigation. It checks the
// cookie's token signature and expiry only; it never touches the database, so
// a deleted user with a live token still passes here and is caught by the API.
type PageGuard struct {
	Tokens        *service.TokenService
	SecureCookies bool
}

// protectedPage reports whether the path requires a session.
func protectedPage(path string) bool {
	return path == dashboardPath || strings.HasPrefix(path, dashboardPath+"/")
}

// authOnlyPage reports whether the path is pointless for a logged-in user.
func authOnlyPage(path string) bool {
	return path == loginPath || path == registerPath
}

// Middleware wraps the page handler with the redirect rules:
//
//   - protected page, no valid session: redirect to the login page, clearing
//     a broken cookie when one is present
//   - login or register page, valid session: redirect to the dashboard
//   - everything else passes through untouched
func (g *PageGuard) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !protectedPage(path) && !authOnlyPage(path) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(httpx.SessionCookieName)
			hasSession := false
			if err == nil && cookie.Value != "" {
				if _, verr := g.Tokens.Verify(cookie.Value); verr == nil {
					hasSession = true
				} else {
					// Stale or tampered cookie: drop it so the browser stops
					// sending it.
					httpx.ClearSessionCookie(w, g.SecureCookies)
				}
			}

			switch {
			case protectedPage(path) && !hasSession:
				http.Redirect(w, r, loginPath, http.StatusFound)
			case authOnlyPage(path) && hasSession:
				http.Redirect(w, r, dashboardPath, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
