package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticohq/portico/internal/authz"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestPrincipalRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := s.FindByIdentity(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner record", func(t *testing.T) {
		err := s.CreatePrincipal(ctx, PrincipalRecord{
			Identity:   "owner_prop_042",
			SecretHash: "hash",
			Role:       authz.RoleOwner,
			Scope:      authz.SingleResource("PROP_042"),
		})
		require.NoError(t, err)

		rec, err := s.FindByIdentity(ctx, "owner_prop_042")
		require.NoError(t, err)
		assert.Equal(t, authz.RoleOwner, rec.Role)
		assert.Equal(t, "hash", rec.SecretHash)

		id, ok := rec.Scope.PropertyID()
		require.True(t, ok)
		assert.Equal(t, "PROP_042", id)
	})

	t.Run("admin record has unrestricted scope", func(t *testing.T) {
		err := s.CreatePrincipal(ctx, PrincipalRecord{
			Identity:   "admin",
			SecretHash: "hash",
			Role:       authz.RoleAdmin,
			Scope:      authz.AllResources(),
		})
		require.NoError(t, err)

		rec, err := s.FindByIdentity(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, rec.Scope.IsAll())
	})

	t.Run("duplicate identity rejected", func(t *testing.T) {
		err := s.CreatePrincipal(ctx, PrincipalRecord{
			Identity: "admin",
			Role:     authz.RoleAdmin,
			Scope:    authz.AllResources(),
		})
		assert.Error(t, err)
	})
}

func TestSeedPortfolio(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seeded, err := s.Seeded(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	require.NoError(t, s.SeedPortfolio(ctx, 5))

	seeded, err = s.Seeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	properties, err := s.Properties(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 5)
	assert.Equal(t, "PROP_000", properties[0].ID)
	assert.NotEmpty(t, properties[0].Name)

	units, err := s.Units(ctx, "PROP_000")
	require.NoError(t, err)
	require.NotEmpty(t, units)

	for _, u := range units {
		assert.Equal(t, "PROP_000", u.PropertyID)
		assert.Positive(t, u.MarketRent)
		assert.Positive(t, u.Sqft)
	}

	allUnits, err := s.Units(ctx, "")
	require.NoError(t, err)
	assert.Greater(t, len(allUnits), len(units))

	tenants, err := s.Tenants(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tenants)

	// Seeding is deterministic: a second store produces identical rows.
	s2 := setupTestStore(t)
	require.NoError(t, s2.SeedPortfolio(ctx, 5))

	units2, err := s2.Units(ctx, "PROP_000")
	require.NoError(t, err)
	assert.Equal(t, units, units2)
}
