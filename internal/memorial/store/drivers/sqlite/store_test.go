package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/pkg/idx"
)

// Foreign keys must be enabled on every pooled connection, not just the one
// the store happened to open first. The test pins the setup connection so the
// delete is forced onto a fresh connection from the pool.
func TestCascadeFiresOnFreshPoolConnections(t *testing.T) {
	t.Parallel()

	dsn := "file:" + filepath.Join(t.TempDir(), "cascade.db")
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ctx := context.Background()

	user := domain.User{
		ID:           idx.New(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        "author@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleFamily,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	obituary := domain.Obituary{
		ID:          idx.New(),
		Title:       "Cascaded",
		FirstName:   "Margaret",
		LastName:    "Hale",
		Description: "A life well lived.",
		Dates: domain.ObituaryDates{
			BirthDate: time.Date(1940, 3, 14, 0, 0, 0, 0, time.UTC),
			DeathDate: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
		},
		AuthorID: user.ID,
	}
	require.NoError(t, st.Obituaries().CreateObituary(ctx, obituary))

	require.NoError(t, st.Comments().CreateComment(ctx, domain.Comment{
		ID:         idx.New(),
		ObituaryID: obituary.ID,
		Content:    "Deepest condolences.",
		Author:     domain.CommentAuthor{FirstName: "V", LastName: "W", Email: "v@w.com"},
	}))

	// Hold the connection the setup ran on; everything below lands on
	// connections opened fresh from the pool.
	pinned, err := st.db.Conn(ctx)
	require.NoError(t, err)
	defer pinned.Close()

	fresh, err := st.db.Conn(ctx)
	require.NoError(t, err)
	var enabled int
	require.NoError(t, fresh.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&enabled))
	require.Equal(t, 1, enabled)
	require.NoError(t, fresh.Close())

	require.NoError(t, st.Obituaries().DeleteObituary(ctx, obituary.ID))

	var remaining int
	require.NoError(t, st.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments`).Scan(&remaining))
	require.Zero(t, remaining)
}
