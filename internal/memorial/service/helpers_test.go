package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/internal/memorial/store/drivers/sqlite"
	"github.com/willowgate/memorial/pkg/httpx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// registerUser creates an account through the service so the password hash is
// real.
func registerUser(t *testing.T, st store.Store, email string, role domain.Role) domain.User {
	t.Helper()

	svc := &UserService{Store: st}
	user, err := svc.Register(context.Background(), RegisterParams{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}

// newCookieRequest builds a GET request carrying the session cookie. An empty
// token means no cookie at all.
func newCookieRequest(t *testing.T, token string) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: httpx.SessionCookieName, Value: token})
	}
	return r
}

// testObituary returns a minimal valid obituary body.
func testObituary(title string, published bool) domain.Obituary {
	return domain.Obituary{
		Title:       title,
		FirstName:   "Margaret",
		LastName:    "Hale",
		Description: "A life well lived.",
		Dates: domain.ObituaryDates{
			BirthDate: time.Date(1940, 3, 14, 0, 0, 0, 0, time.UTC),
			DeathDate: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
		},
		IsPublished: published,
	}
}
