package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willowgate/memorial/internal/memorial/domain"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	_, family := createUser(t, router, "family@example.com", "")

	t.Run("no session", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/admin/users", nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("authenticated non-admin", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/admin/users", nil, family)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestAdminUserManagement(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	admin, adminCookie := createUser(t, router, "admin@example.com", domain.RoleAdmin)
	target, _ := createUser(t, router, "target@example.com", "")

	t.Run("list users", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/admin/users", nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Users []struct {
				Email string `json:"email"`
			} `json:"users"`
		}
		decodeBody(t, rr, &body)
		require.Len(t, body.Users, 2)
		// The password hash never leaves the server.
		require.NotContains(t, rr.Body.String(), "argon2id")
	})

	t.Run("create user with explicit role", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/admin/users", map[string]string{
			"firstName": "New", "lastName": "Admin",
			"email": "second-admin@example.com", "password": "password123",
			"role": "admin",
		}, adminCookie)
		require.Equal(t, http.StatusCreated, rr.Code)

		var body struct {
			User struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		decodeBody(t, rr, &body)
		require.Equal(t, "admin", body.User.Role)
	})

	t.Run("create user rejects missing role", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/admin/users", map[string]string{
			"firstName": "No", "lastName": "Role",
			"email": "norole@example.com", "password": "password123",
		}, adminCookie)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "All fields are required")
	})

	t.Run("self-delete is refused", func(t *testing.T) {
		rr := do(t, router, http.MethodDelete, "/api/admin/users/"+admin.ID, nil, adminCookie)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "You can't delete your own admin account.")
	})

	t.Run("deleting another user succeeds", func(t *testing.T) {
		rr := do(t, router, http.MethodDelete, "/api/admin/users/"+target.ID, nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "User and related obituaries deleted")
	})
}

func TestAdminObituaryManagement(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	_, adminCookie := createUser(t, router, "admin@example.com", domain.RoleAdmin)
	author, authorCookie := createUser(t, router, "author@example.com", "")

	draftID := createObituary(t, router, authorCookie, "Author Draft", false)

	t.Run("list includes drafts", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/admin/obituaries", nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "Author Draft")
	})

	t.Run("filter by author", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/admin/obituaries?userId="+author.ID, nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)

		var body obituaryListEnvelope
		decodeBody(t, rr, &body)
		require.Len(t, body.Obituaries, 1)

		rr = do(t, router, http.MethodGet, "/api/admin/obituaries?userId=nobody", nil, adminCookie)
		decodeBody(t, rr, &body)
		require.Empty(t, body.Obituaries)
	})

	t.Run("delete without ownership", func(t *testing.T) {
		rr := do(t, router, http.MethodDelete, "/api/admin/obituaries/"+draftID, nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "Obituary deleted")
	})
}

func TestCommentModerationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	_, adminCookie := createUser(t, router, "admin@example.com", domain.RoleAdmin)
	_, authorCookie := createUser(t, router, "author@example.com", "")

	obituaryID := createObituary(t, router, authorCookie, "Commented", true)

	// A visitor submits a comment without any session. Forcing isApproved in
	// the payload must not bypass moderation.
	rr := do(t, router, http.MethodPost, "/api/obituaries/"+obituaryID+"/comments", map[string]any{
		"content": "She will be missed.",
		"author": map[string]string{
			"firstName": "Visitor", "lastName": "One", "email": "visitor@example.com",
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Contains(t, rr.Body.String(), "Comment submitted for approval")

	var created struct {
		Comment struct {
			ID         string `json:"id"`
			IsApproved bool   `json:"isApproved"`
		} `json:"comment"`
	}
	decodeBody(t, rr, &created)
	require.False(t, created.Comment.IsApproved)

	t.Run("pending comments are publicly invisible", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/obituaries/"+obituaryID+"/comments", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.NotContains(t, rr.Body.String(), "She will be missed.")
	})

	t.Run("admin sees the moderation queue", func(t *testing.T) {
		rr := do(t, router, http.MethodGet, "/api/admin/comments", nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), created.Comment.ID)
	})

	t.Run("approval makes the comment visible", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/admin/comments/"+created.Comment.ID+"/approve", nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(t, router, http.MethodGet, "/api/obituaries/"+obituaryID+"/comments", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "She will be missed.")
	})

	t.Run("rejection deletes the comment", func(t *testing.T) {
		rr := do(t, router, http.MethodDelete, "/api/admin/comments/"+created.Comment.ID, nil, adminCookie)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(t, router, http.MethodGet, "/api/obituaries/"+obituaryID+"/comments", nil)
		require.NotContains(t, rr.Body.String(), "She will be missed.")
	})
}

func TestCommentValidationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	_, authorCookie := createUser(t, router, "author@example.com", "")
	obituaryID := createObituary(t, router, authorCookie, "Commented", true)

	t.Run("content required", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/obituaries/"+obituaryID+"/comments", map[string]any{
			"author": map[string]string{"firstName": "A", "lastName": "B", "email": "a@b.com"},
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "Comment content is required")
	})

	t.Run("content length capped", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/obituaries/"+obituaryID+"/comments", map[string]any{
			"content": strings.Repeat("x", 501),
			"author":  map[string]string{"firstName": "A", "lastName": "B", "email": "a@b.com"},
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "Comment cannot exceed 500 characters")
	})

	t.Run("length counts characters, not bytes", func(t *testing.T) {
		// 500 two-byte characters fit the limit.
		rr := do(t, router, http.MethodPost, "/api/obituaries/"+obituaryID+"/comments", map[string]any{
			"content": strings.Repeat("é", 500),
			"author":  map[string]string{"firstName": "A", "lastName": "B", "email": "a@b.com"},
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = do(t, router, http.MethodPost, "/api/obituaries/"+obituaryID+"/comments", map[string]any{
			"content": strings.Repeat("é", 501),
			"author":  map[string]string{"firstName": "A", "lastName": "B", "email": "a@b.com"},
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown obituary", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/obituaries/missing/comments", map[string]any{
			"content": "Hello",
			"author":  map[string]string{"firstName": "A", "lastName": "B", "email": "a@b.com"},
		})
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
