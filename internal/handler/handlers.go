package handler

import (
	"github.com/deppfellow/yamdb/internal/server"
	"github.com/deppfellow/yamdb/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Auth       *AuthHandler
	Users      *UserHandler
	Categories *CategoryHandler
	Genres     *GenreHandler
	Titles     *TitleHandler
	Reviews    *ReviewHandler
	Comments   *CommentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	base := NewHandler(s)

	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Auth:       &AuthHandler{Handler: base, auth: services.Auth},
		Users:      &UserHandler{Handler: base, users: services.Users},
		Categories: &CategoryHandler{Handler: base, categories: services.Categories},
		Genres:     &GenreHandler{Handler: base, genres: services.Genres},
		Titles:     &TitleHandler{Handler: base, titles: services.Titles},
		Reviews:    &ReviewHandler{Handler: base, reviews: services.Reviews},
		Comments:   &CommentHandler{Handler: base, comments: services.Comments},
	}
}
