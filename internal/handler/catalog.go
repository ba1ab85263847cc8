package handler

import (
	"net/http"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categories *service.CatalogService[model.Category]
}

func (h *CategoryHandler) List() echo.HandlerFunc {
	return HandleList(h.Handler, func(c echo.Context, q *model.ListCategoriesQuery) (*service.PageResult[model.Category], error) {
		return h.categories.List(c.Request().Context(), q.Search, q.PageQuery)
	}, &model.ListCategoriesQuery{})
}

func (h *CategoryHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CreateCategoryPayload) (*model.Category, error) {
		return h.categories.Create(c.Request().Context(), p.Name, p.Slug)
	}, http.StatusCreated, &model.CreateCategoryPayload{})
}

func (h *CategoryHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, p *model.DeleteCategoryPayload) error {
		return h.categories.Delete(c.Request().Context(), p.Slug)
	}, http.StatusNoContent, &model.DeleteCategoryPayload{})
}

type GenreHandler struct {
	Handler
	genres *service.CatalogService[model.Genre]
}

func (h *GenreHandler) List() echo.HandlerFunc {
	return HandleList(h.Handler, func(c echo.Context, q *model.ListGenresQuery) (*service.PageResult[model.Genre], error) {
		return h.genres.List(c.Request().Context(), q.Search, q.PageQuery)
	}, &model.ListGenresQuery{})
}

func (h *GenreHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CreateGenrePayload) (*model.Genre, error) {
		return h.genres.Create(c.Request().Context(), p.Name, p.Slug)
	}, http.StatusCreated, &model.CreateGenrePayload{})
}

func (h *GenreHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, p *model.DeleteGenrePayload) error {
		return h.genres.Delete(c.Request().Context(), p.Slug)
	}, http.StatusNoContent, &model.DeleteGenrePayload{})
}
