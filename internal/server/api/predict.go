package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/objects"
	"github.com/porticohq/portico/internal/server/biz"
)

type PredictHandlersParams struct {
	fx.In

	PredictService *biz.PredictService
}

func NewPredictHandlers(params PredictHandlersParams) *PredictHandlers {
	return &PredictHandlers{
		PredictService: params.PredictService,
	}
}

type PredictHandlers struct {
	PredictService *biz.PredictService
}

// PredictRent serves the dashboard rent estimator widget.
func (h *PredictHandlers) PredictRent(c *gin.Context) {
	var req objects.PropertyFeatures

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	pred, err := h.PredictService.Rent(c.Request.Context(), &req)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, pred)
}

// PredictChurn serves the dashboard churn riskometer.
func (h *PredictHandlers) PredictChurn(c *gin.Context) {
	var req objects.TenantFeatures

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	pred, err := h.PredictService.Churn(c.Request.Context(), &req)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, pred)
}
