package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/willowgate/memorial/internal/memorial/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := &TokenService{Secret: []byte("test-secret")}
	user := domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleAdmin}

	raw, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := &TokenService{
		Secret: []byte("test-secret"),
		Now:    func() time.Time { return now },
	}

	raw, err := svc.Issue(domain.User{ID: "user-1"})
	require.NoError(t, err)

	// Still valid just inside the window.
	svc.Now = func() time.Time { return now.Add(DefaultSessionTTL - time.Minute) }
	_, err = svc.Verify(raw)
	require.NoError(t, err)

	// Rejected once the window has passed.
	svc.Now = func() time.Time { return now.Add(DefaultSessionTTL + time.Minute) }
	_, err = svc.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenVerifyRejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := &TokenService{Secret: []byte("test-secret")}

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.Verify("")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := &TokenService{Secret: []byte("different-secret")}
		raw, err := other.Issue(domain.User{ID: "user-1"})
		require.NoError(t, err)

		_, err = svc.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		raw, err := svc.Issue(domain.User{ID: "user-1"})
		require.NoError(t, err)

		_, err = svc.Verify(raw + "x")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
