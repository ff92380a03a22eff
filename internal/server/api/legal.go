package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/server/biz"
)

type LegalHandlersParams struct {
	fx.In

	AnalyticsService *biz.AnalyticsService
}

func NewLegalHandlers(params LegalHandlersParams) *LegalHandlers {
	return &LegalHandlers{
		AnalyticsService: params.AnalyticsService,
	}
}

type LegalHandlers struct {
	AnalyticsService *biz.AnalyticsService
}

// AnalyzeRequest carries extracted lease text and the question to answer
// about it. Document extraction happens upstream; this endpoint takes text.
type AnalyzeRequest struct {
	DocumentText string `json:"document_text" binding:"required"`
	Query        string `json:"query"         binding:"required"`
}

// AnalyzeResponse carries the lease analysis narrative.
type AnalyzeResponse struct {
	Result string `json:"result"`
}

// Analyze runs the lease analysis over the submitted document text.
func (h *LegalHandlers) Analyze(c *gin.Context) {
	var req AnalyzeRequest

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	result, err := h.AnalyticsService.AnalyzeLease(c.Request.Context(), req.DocumentText, req.Query)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{Result: result})
}
