package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/porticohq/portico/internal/build"
)

func NewSystemHandlers() *SystemHandlers {
	return &SystemHandlers{}
}

type SystemHandlers struct{}

// Health is the liveness probe.
func (h *SystemHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Version reports build information.
func (h *SystemHandlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, build.GetBuildInfo())
}
