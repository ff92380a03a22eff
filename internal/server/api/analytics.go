package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/server/biz"
)

type AnalyticsHandlersParams struct {
	fx.In

	AnalyticsService *biz.AnalyticsService
}

func NewAnalyticsHandlers(params AnalyticsHandlersParams) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		AnalyticsService: params.AnalyticsService,
	}
}

type AnalyticsHandlers struct {
	AnalyticsService *biz.AnalyticsService
}

// ReportRequest optionally narrows the report to a location and year.
type ReportRequest struct {
	Location string `json:"location"`
	Year     string `json:"year"`
}

// RunReport synthesizes the executive report.
func (h *AnalyticsHandlers) RunReport(c *gin.Context) {
	var req ReportRequest

	// The body is optional; an empty request produces the default report.
	_ = c.ShouldBindJSON(&req)

	resp, err := h.AnalyticsService.Report(c.Request.Context(), req.Location, req.Year)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ScenarioRequest is a what-if revenue projection input.
type ScenarioRequest struct {
	RentChangePct      float64 `json:"rent_change_pct"`
	OccupancyChangePct float64 `json:"occupancy_change_pct"`
}

// RunScenario projects revenue under the proposed changes.
func (h *AnalyticsHandlers) RunScenario(c *gin.Context) {
	var req ScenarioRequest

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	result, err := h.AnalyticsService.Scenario(c.Request.Context(), req.RentChangePct, req.OccupancyChangePct)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetData returns the fixed dashboard series.
func (h *AnalyticsHandlers) GetData(c *gin.Context) {
	c.JSON(http.StatusOK, h.AnalyticsService.Data(c.Request.Context()))
}
