package router

import (
	"github.com/deppfellow/yamdb/internal/authz"
	"github.com/deppfellow/yamdb/internal/handler"
	"github.com/deppfellow/yamdb/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerV1Routes registers the versioned API. Every path ends with a
// slash; the TrailingSlash pre-middleware adds it when a client omits it.
func registerV1Routes(g *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	can := mw.Auth.RequirePermission

	limit := mw.RateLimit.AuthLimiter()
	g.POST("/auth/signup/", h.Auth.SignUp(), limit)
	g.POST("/auth/token/", h.Auth.Token(), limit)

	g.GET("/categories/", h.Categories.List(), can(authz.Categories, authz.Read))
	g.POST("/categories/", h.Categories.Create(), can(authz.Categories, authz.Create))
	g.DELETE("/categories/:slug/", h.Categories.Delete(), can(authz.Categories, authz.Delete))

	g.GET("/genres/", h.Genres.List(), can(authz.Genres, authz.Read))
	g.POST("/genres/", h.Genres.Create(), can(authz.Genres, authz.Create))
	g.DELETE("/genres/:slug/", h.Genres.Delete(), can(authz.Genres, authz.Delete))

	titles := g.Group("/titles")
	titles.GET("/", h.Titles.List(), can(authz.Titles, authz.Read))
	titles.POST("/", h.Titles.Create(), can(authz.Titles, authz.Create))
	titles.GET("/:title_id/", h.Titles.Get(), can(authz.Titles, authz.Read))
	titles.PATCH("/:title_id/", h.Titles.Update(), can(authz.Titles, authz.Update))
	titles.DELETE("/:title_id/", h.Titles.Delete(), can(authz.Titles, authz.Delete))

	// Authors may change their own reviews and comments: the route admits
	// the ":own" permission and the service checks authorship.
	reviews := titles.Group("/:title_id/reviews")
	reviews.GET("/", h.Reviews.List(), can(authz.Reviews, authz.Read))
	reviews.POST("/", h.Reviews.Create(), can(authz.Reviews, authz.Create))
	reviews.GET("/:review_id/", h.Reviews.Get(), can(authz.Reviews, authz.Read))
	reviews.PATCH("/:review_id/", h.Reviews.Update(), can(authz.Reviews, authz.Update.Own()))
	reviews.DELETE("/:review_id/", h.Reviews.Delete(), can(authz.Reviews, authz.Delete.Own()))

	comments := reviews.Group("/:review_id/comments")
	comments.GET("/", h.Comments.List(), can(authz.Comments, authz.Read))
	comments.POST("/", h.Comments.Create(), can(authz.Comments, authz.Create))
	comments.GET("/:comment_id/", h.Comments.Get(), can(authz.Comments, authz.Read))
	comments.PATCH("/:comment_id/", h.Comments.Update(), can(authz.Comments, authz.Update.Own()))
	comments.DELETE("/:comment_id/", h.Comments.Delete(), can(authz.Comments, authz.Delete.Own()))

	users := g.Group("/users")
	users.GET("/me/", h.Users.Me(), can(authz.Profile, authz.Read))
	users.PATCH("/me/", h.Users.UpdateMe(), can(authz.Profile, authz.Update))
	users.GET("/", h.Users.List(), can(authz.Users, authz.Read))
	users.POST("/", h.Users.Create(), can(authz.Users, authz.Create))
	users.GET("/:username/", h.Users.Get(), can(authz.Users, authz.Read))
	users.PATCH("/:username/", h.Users.Update(), can(authz.Users, authz.Update))
	users.DELETE("/:username/", h.Users.Delete(), can(authz.Users, authz.Delete))
}
