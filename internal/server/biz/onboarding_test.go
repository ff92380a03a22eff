package biz

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/server/store"
)

func TestEnsureSeeded(t *testing.T) {
	st, err := store.Open(store.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := NewOnboardingService(OnboardingServiceParams{
		Config: &OnboardingConfig{Properties: 3},
		Store:  st,
	})

	ctx := context.Background()
	require.NoError(t, svc.EnsureSeeded(ctx))

	properties, err := st.Properties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 3)

	t.Run("admin provisioned", func(t *testing.T) {
		rec, err := st.FindByIdentity(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, authz.RoleAdmin, rec.Role)
		assert.True(t, rec.Scope.IsAll())
		require.NoError(t, VerifyPassword(rec.SecretHash, "superadmin123"))
	})

	t.Run("owner per property", func(t *testing.T) {
		for _, p := range properties {
			rec, err := st.FindByIdentity(ctx, "owner_"+strings.ToLower(p.ID))
			require.NoError(t, err)
			assert.Equal(t, authz.RoleOwner, rec.Role)

			pid, ok := rec.Scope.PropertyID()
			require.True(t, ok)
			assert.Equal(t, p.ID, pid)

			require.NoError(t, VerifyPassword(rec.SecretHash, "pass_"+p.ID))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, svc.EnsureSeeded(ctx))

		again, err := st.Properties(ctx)
		require.NoError(t, err)
		assert.Len(t, again, 3)
	})
}
