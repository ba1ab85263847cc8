// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/yamdb/internal/handler"
	"github.com/deppfellow/yamdb/internal/middleware"
	"github.com/deppfellow/yamdb/internal/server"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with global middleware, system routes
// and the /api/v1 routes.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	return newRouter(s, h, middleware.NewMiddlewares(s, services.Tokens, services.Users, services.Authz))
}

func newRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Pre(mw.Global.TrailingSlash())

	router.Use(
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Record(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Auth.AuthenticateAPI(),
	)

	registerSystemRoutes(router, h)
	registerV1Routes(router.Group("/api/v1"), h, mw)

	return router
}
