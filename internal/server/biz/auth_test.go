package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/server/store"
)

func newTestAuthService(t *testing.T, cfg AuthConfig) (*AuthService, *store.Store) {
	t.Helper()

	st, err := store.Open(store.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	if cfg.SecretKey == "" {
		cfg.SecretKey = "test-secret-key"
	}

	svc, err := NewAuthService(AuthServiceParams{Config: &cfg, Store: st})
	require.NoError(t, err)

	return svc, st
}

func mustCreatePrincipal(t *testing.T, st *store.Store, identity, secret string, role authz.Role, scope authz.ScopeValue) {
	t.Helper()

	hash, err := HashPassword(secret)
	require.NoError(t, err)

	require.NoError(t, st.CreatePrincipal(context.Background(), store.PrincipalRecord{
		Identity:   identity,
		SecretHash: hash,
		Role:       role,
		Scope:      scope,
	}))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	require.NoError(t, VerifyPassword(hash, "hunter2"))
	require.Error(t, VerifyPassword(hash, "hunter3"))
}

func TestAuthenticate(t *testing.T) {
	svc, st := newTestAuthService(t, AuthConfig{})
	ctx := context.Background()

	mustCreatePrincipal(t, st, "owner_prop_001", "pass_PROP_001", authz.RoleOwner, authz.SingleResource("PROP_001"))

	t.Run("valid credentials", func(t *testing.T) {
		p, err := svc.Authenticate(ctx, "owner_prop_001", "pass_PROP_001")
		require.NoError(t, err)
		assert.Equal(t, "owner_prop_001", p.Identity)
		assert.Equal(t, authz.RoleOwner, p.Role)
		assert.True(t, p.Scope.Allows("PROP_001"))
		assert.False(t, p.Scope.Allows("PROP_002"))
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "whatever")
		require.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "owner_prop_001", "wrong")
		require.ErrorIs(t, err, ErrBadSecret)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t, AuthConfig{})
	ctx := context.Background()

	t.Run("scoped owner", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, &authz.Principal{
			Identity: "owner_prop_007",
			Role:     authz.RoleOwner,
			Scope:    authz.SingleResource("PROP_007"),
		})
		require.NoError(t, err)

		p, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "owner_prop_007", p.Identity)
		assert.Equal(t, authz.RoleOwner, p.Role)

		pid, ok := p.Scope.PropertyID()
		require.True(t, ok)
		assert.Equal(t, "PROP_007", pid)
	})

	t.Run("unrestricted admin", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, &authz.Principal{
			Identity: "admin",
			Role:     authz.RoleAdmin,
			Scope:    authz.AllResources(),
		})
		require.NoError(t, err)

		p, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.True(t, p.Scope.IsAll())
	})
}

func TestValidateToken_Failures(t *testing.T) {
	svc, _ := newTestAuthService(t, AuthConfig{})
	ctx := context.Background()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, _ := newTestAuthService(t, AuthConfig{SecretKey: "another-key"})

		token, err := other.IssueToken(ctx, &authz.Principal{
			Identity: "admin",
			Role:     authz.RoleAdmin,
			Scope:    authz.AllResources(),
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("expired", func(t *testing.T) {
		short, _ := newTestAuthService(t, AuthConfig{TokenTTL: time.Nanosecond})

		token, err := short.IssueToken(ctx, &authz.Principal{
			Identity: "admin",
			Role:     authz.RoleAdmin,
			Scope:    authz.AllResources(),
		})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		_, err = short.ValidateToken(ctx, token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, &authz.Principal{
			Identity: "ghost",
			Role:     authz.Role("superuser"),
			Scope:    authz.AllResources(),
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, ErrTokenMalformed)
	})
}
