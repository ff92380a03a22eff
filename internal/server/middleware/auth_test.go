package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/contexts"
	"github.com/porticohq/portico/internal/server/biz"
	"github.com/porticohq/portico/internal/server/store"
)

func newAuthService(t *testing.T, ttl time.Duration) *biz.AuthService {
	t.Helper()

	st, err := store.Open(store.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc, err := biz.NewAuthService(biz.AuthServiceParams{
		Config: &biz.AuthConfig{SecretKey: "middleware-test-key", TokenTTL: ttl},
		Store:  st,
	})
	require.NoError(t, err)

	return svc
}

func newProtectedRouter(auth *biz.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(WithBearerAuth(auth))
	router.GET("/whoami", func(c *gin.Context) {
		p := contexts.MustGetPrincipal(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"identity": p.Identity, "role": string(p.Role)})
	})

	return router
}

func TestWithBearerAuth(t *testing.T) {
	auth := newAuthService(t, time.Hour)
	router := newProtectedRouter(auth)

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.IssueToken(t.Context(), &authz.Principal{
			Identity: "owner_prop_001",
			Role:     authz.RoleOwner,
			Scope:    authz.SingleResource("PROP_001"),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "owner_prop_001")
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "malformed token")
	})

	t.Run("expired token", func(t *testing.T) {
		short := newAuthService(t, time.Nanosecond)
		shortRouter := newProtectedRouter(short)

		token, err := short.IssueToken(t.Context(), &authz.Principal{
			Identity: "admin",
			Role:     authz.RoleAdmin,
			Scope:    authz.AllResources(),
		})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		shortRouter.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token expired")
	})
}
