package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/objects"
	"github.com/porticohq/portico/internal/server/biz"
)

type PortfolioHandlersParams struct {
	fx.In

	PortfolioService *biz.PortfolioService
}

func NewPortfolioHandlers(params PortfolioHandlersParams) *PortfolioHandlers {
	return &PortfolioHandlers{
		PortfolioService: params.PortfolioService,
	}
}

type PortfolioHandlers struct {
	PortfolioService *biz.PortfolioService
}

// ListProperties returns the roll-up view of the properties visible to the
// caller.
func (h *PortfolioHandlers) ListProperties(c *gin.Context) {
	properties, err := h.PortfolioService.Properties(c.Request.Context())
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	if properties == nil {
		properties = []objects.Property{}
	}

	c.JSON(http.StatusOK, properties)
}

// YieldResponse wraps the yield opportunity list.
type YieldResponse struct {
	Opportunities []objects.YieldOpportunity `json:"opportunities"`
}

// GetYield returns the top under-rented units of one property.
func (h *PortfolioHandlers) GetYield(c *gin.Context) {
	opportunities, err := h.PortfolioService.Yield(c.Request.Context(), c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	if opportunities == nil {
		opportunities = []objects.YieldOpportunity{}
	}

	c.JSON(http.StatusOK, YieldResponse{Opportunities: opportunities})
}

// ListTenants returns the tenants visible to the caller.
func (h *PortfolioHandlers) ListTenants(c *gin.Context) {
	tenants, err := h.PortfolioService.Tenants(c.Request.Context())
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	if tenants == nil {
		tenants = []objects.Tenant{}
	}

	c.JSON(http.StatusOK, tenants)
}
