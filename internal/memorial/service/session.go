package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/pkg/httpx"
	"github.com/willowgate/memorial/pkg/slogx"
)

// SessionService resolves the identity behind an inbound request: cookie →
// verified claims → stored user.
type SessionService struct {
	Tokens *TokenService
	Store  store.Store
}

// Resolve returns the user for the request's session cookie. Every failure
// path (no cookie, invalid token, deleted account, storage error) collapses
// to ok=false so callers apply uniform unauthenticated handling; it never
// returns an error. The returned user has secret fields stripped.
func (s *SessionService) Resolve(ctx context.Context, r *http.Request) (domain.User, bool) {
	cookie, err := r.Cookie(httpx.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return domain.User{}, false // no session, not an error
	}

	claims, err := s.Tokens.Verify(cookie.Value)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", "err", err)
		return domain.User{}, false
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		// A still-valid token for a deleted account resolves to no session.
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("session user lookup failed", "user_id", claims.UserID, "err", err)
		}
		return domain.User{}, false
	}

	return user.Redacted(), true
}
