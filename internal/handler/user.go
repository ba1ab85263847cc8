package handler

import (
	"net/http"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler serves admin account management and /users/me/.
type UserHandler struct {
	Handler
	users *service.UserService
}

func (h *UserHandler) List() echo.HandlerFunc {
	return HandleList(h.Handler, func(c echo.Context, q *model.ListUsersQuery) (*service.PageResult[model.User], error) {
		return h.users.List(c.Request().Context(), q)
	}, &model.ListUsersQuery{})
}

func (h *UserHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CreateUserPayload) (*model.User, error) {
		return h.users.Create(c.Request().Context(), p)
	}, http.StatusCreated, &model.CreateUserPayload{})
}

func (h *UserHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.UserLookupPayload) (*model.User, error) {
		return h.users.Get(c.Request().Context(), p.Username)
	}, http.StatusOK, &model.UserLookupPayload{})
}

func (h *UserHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.UpdateUserPayload) (*model.User, error) {
		return h.users.Update(c.Request().Context(), p)
	}, http.StatusOK, &model.UpdateUserPayload{})
}

func (h *UserHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, p *model.UserLookupPayload) error {
		return h.users.Delete(c.Request().Context(), p.Username)
	}, http.StatusNoContent, &model.UserLookupPayload{})
}

// Me handles GET /users/me/.
func (h *UserHandler) Me() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyPayload) (*model.User, error) {
		return actor(c)
	}, http.StatusOK, &model.EmptyPayload{})
}

// UpdateMe handles PATCH /users/me/. A role in the body is ignored.
func (h *UserHandler) UpdateMe() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.UpdateMePayload) (*model.User, error) {
		user, err := actor(c)
		if err != nil {
			return nil, err
		}
		return h.users.UpdateMe(c.Request().Context(), user, p)
	}, http.StatusOK, &model.UpdateMePayload{})
}
