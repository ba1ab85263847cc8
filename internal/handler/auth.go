package handler

import (
	"net/http"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthHandler serves the sign-up and token endpoints.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func (h *AuthHandler) signUp(c echo.Context, p *model.SignUpPayload) (*model.SignUpResponse, error) {
	return h.auth.SignUp(c.Request().Context(), p)
}

func (h *AuthHandler) token(c echo.Context, p *model.TokenPayload) (*model.TokenResponse, error) {
	return h.auth.Token(c.Request().Context(), p)
}

// SignUp handles POST /auth/signup/.
func (h *AuthHandler) SignUp() echo.HandlerFunc {
	return Handle(h.Handler, h.signUp, http.StatusOK, &model.SignUpPayload{})
}

// Token handles POST /auth/token/.
func (h *AuthHandler) Token() echo.HandlerFunc {
	return Handle(h.Handler, h.token, http.StatusOK, &model.TokenPayload{})
}
