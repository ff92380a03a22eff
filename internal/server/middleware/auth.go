package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/porticohq/portico/internal/contexts"
	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/server/biz"
)

// WithBearerAuth validates the bearer token and stores the resolved
// principal in the request context. Handlers behind this middleware can rely
// on the principal being present.
func WithBearerAuth(auth *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			AbortWithError(c, http.StatusUnauthorized, err)

			return
		}

		principal, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, biz.ErrTokenExpired):
				c.Header("WWW-Authenticate", `Bearer error="invalid_token", error_description="token expired"`)
				AbortWithError(c, http.StatusUnauthorized, biz.ErrTokenExpired)
			case errors.Is(err, biz.ErrTokenMalformed):
				c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
				AbortWithError(c, http.StatusUnauthorized, biz.ErrTokenMalformed)
			default:
				log.Error(c.Request.Context(), "failed to validate token", log.Cause(err))
				AbortWithError(c, http.StatusInternalServerError, biz.ErrInternal)
			}

			return
		}

		ctx := contexts.WithPrincipal(c.Request.Context(), *principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
