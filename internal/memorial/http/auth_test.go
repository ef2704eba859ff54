package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willowgate/memorial/pkg/httpx"
)

func TestRegisterSetsSessionCookie(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"firstName": "Alice",
		"lastName":  "Smith",
		"email":     "alice@example.com",
		"password":  "password123",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		Message string `json:"message"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, rr, &body)
	require.Equal(t, "User created successfully", body.Message)
	require.Equal(t, "alice@example.com", body.User.Email)
	require.Equal(t, "family", body.User.Role)

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == httpx.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	require.NotEmpty(t, session.Value)
	require.True(t, session.HttpOnly)

	// The fresh cookie must work against a protected endpoint.
	rr = do(t, router, http.MethodGet, "/api/auth/me", nil, session)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("missing fields", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/auth/register", map[string]string{
			"firstName": "Alice",
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "All fields are required")
	})

	t.Run("duplicate email", func(t *testing.T) {
		payload := map[string]string{
			"firstName": "Alice", "lastName": "Smith",
			"email": "dup@example.com", "password": "password123",
		}
		rr := do(t, router, http.MethodPost, "/api/auth/register", payload)
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = do(t, router, http.MethodPost, "/api/auth/register", payload)
		require.Equal(t, http.StatusConflict, rr.Code)
		require.Contains(t, rr.Body.String(), "User already exists with this email")
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	createUser(t, router, "carol@example.com", "")

	t.Run("correct credentials", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "carol@example.com", "password": "password123",
		})
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "Logged in successfully")
		require.NotEmpty(t, rr.Result().Cookies())
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "carol@example.com", "password": "nope-nope",
		})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Contains(t, rr.Body.String(), "Invalid email or password")
	})

	t.Run("unknown account gets the same error", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ghost@example.com", "password": "password123",
		})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Contains(t, rr.Body.String(), "Invalid email or password")
	})
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Logged out successfully")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, httpx.SessionCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestMeRequiresSession(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	user, cookie := createUser(t, router, "me@example.com", "")
	rr = do(t, router, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, rr, &body)
	require.Equal(t, user.ID, body.User.ID)
}
