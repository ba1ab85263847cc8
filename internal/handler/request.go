package handler

import (
	"net/url"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/middleware"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/labstack/echo/v4"
)

// requestURL rebuilds the absolute URL of the current request, used as the
// base of pagination links.
func requestURL(c echo.Context) *url.URL {
	u := *c.Request().URL
	u.Scheme = c.Scheme()
	u.Host = c.Request().Host
	return &u
}

// actor returns the authenticated caller. Routes using it are guarded by
// RequireAuth or RequirePermission, so a nil user is a routing mistake
// reported as 401 rather than a panic.
func actor(c echo.Context) (*model.User, error) {
	user := middleware.GetUser(c)
	if user == nil {
		return nil, errs.NewUnauthorizedError("Authentication credentials were not provided.", true)
	}
	return user, nil
}
