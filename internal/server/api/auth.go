package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/objects"
	"github.com/porticohq/portico/internal/server/biz"
)

type AuthHandlersParams struct {
	fx.In

	AuthService *biz.AuthService
}

func NewAuthHandlers(params AuthHandlersParams) *AuthHandlers {
	return &AuthHandlers{
		AuthService: params.AuthService,
	}
}

type AuthHandlers struct {
	AuthService *biz.AuthService
}

// TokenRequest is the credential presentation payload.
type TokenRequest struct {
	Identity string `json:"identity" binding:"required"`
	Secret   string `json:"secret"   binding:"required"`
}

// IssueToken exchanges credentials for a signed token. Unknown identity and
// wrong secret produce the same response so the endpoint leaks nothing about
// which identities exist.
func (h *AuthHandlers) IssueToken(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req TokenRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	principal, err := h.AuthService.Authenticate(ctx, req.Identity, req.Secret)
	if err != nil {
		if errors.Is(err, biz.ErrPrincipalNotFound) || errors.Is(err, biz.ErrBadSecret) {
			JSONError(c, http.StatusBadRequest, biz.ErrIncorrectCredentials)
			return
		}

		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)

		return
	}

	token, err := h.AuthService.IssueToken(ctx, principal)
	if err != nil {
		log.Error(ctx, "failed to issue token", log.Cause(err))
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)

		return
	}

	c.JSON(http.StatusOK, objects.TokenResponse{
		Token:         token,
		TokenType:     "bearer",
		Identity:      principal.Identity,
		Role:          string(principal.Role),
		ResourceScope: principal.Scope.Claim(),
	})
}
