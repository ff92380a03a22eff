package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/objects"
)

// Recovery converts handler panics into a 500 response. The stack goes to
// the log, never to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "handler panicked",
					log.Any("panic", r),
					log.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, objects.ErrorResponse{
					Error: objects.Error{
						Type:    http.StatusText(http.StatusInternalServerError),
						Message: "internal server error",
					},
				})
			}
		}()

		c.Next()
	}
}
