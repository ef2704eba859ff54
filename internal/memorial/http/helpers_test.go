package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/internal/memorial/store/drivers/sqlite"
	"github.com/willowgate/memorial/pkg/httpx"
)

// newTestRouter wires a full router over an in-memory store. Each test gets
// its own database and rate limiter state.
func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := &service.TokenService{Secret: []byte("test-secret")}

	r := NewRouter("test", false, st, slog.New(slog.DiscardHandler))
	r.TokenService = tokens
	r.SessionService = &service.SessionService{Tokens: tokens, Store: st}
	r.UserService = &service.UserService{Store: st}
	r.ObituaryService = &service.ObituaryService{Store: st}
	r.CommentService = &service.CommentService{Store: st}
	r.ApplyRoutes()

	return r
}

func do(
	t *testing.T,
	router *Router,
	method, path string,
	body any,
	cookies ...*http.Cookie,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), target))
}

// createUser seeds an account directly through the service and returns it with
// a ready-to-send session cookie.
func createUser(t *testing.T, router *Router, email string, role domain.Role) (domain.User, *http.Cookie) {
	t.Helper()

	user, err := router.UserService.Register(context.Background(), service.RegisterParams{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
		Role:      role,
	})
	require.NoError(t, err)

	token, err := router.TokenService.Issue(user)
	require.NoError(t, err)

	return user, &http.Cookie{Name: httpx.SessionCookieName, Value: token}
}

// obituaryBody returns a minimal valid write payload.
func obituaryBody(title string, published bool) map[string]any {
	return map[string]any{
		"title":       title,
		"firstName":   "Margaret",
		"lastName":    "Hale",
		"description": "A life well lived.",
		"dates": map[string]any{
			"birthDate": "1940-03-14T00:00:00Z",
			"deathDate": "2024-11-02T00:00:00Z",
		},
		"isPublished": published,
	}
}
