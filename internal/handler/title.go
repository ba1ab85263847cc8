package handler

import (
	"net/http"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

type TitleHandler struct {
	Handler
	titles *service.TitleService
}

func (h *TitleHandler) List() echo.HandlerFunc {
	return HandleList(h.Handler, func(c echo.Context, q *model.ListTitlesQuery) (*service.PageResult[model.Title], error) {
		return h.titles.List(c.Request().Context(), q)
	}, &model.ListTitlesQuery{})
}

func (h *TitleHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.TitleLookupPayload) (*model.Title, error) {
		return h.titles.Get(c.Request().Context(), p.ID)
	}, http.StatusOK, &model.TitleLookupPayload{})
}

func (h *TitleHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CreateTitlePayload) (*model.Title, error) {
		return h.titles.Create(c.Request().Context(), p)
	}, http.StatusCreated, &model.CreateTitlePayload{})
}

func (h *TitleHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.UpdateTitlePayload) (*model.Title, error) {
		return h.titles.Update(c.Request().Context(), p)
	}, http.StatusOK, &model.UpdateTitlePayload{})
}

func (h *TitleHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, p *model.TitleLookupPayload) error {
		return h.titles.Delete(c.Request().Context(), p.ID)
	}, http.StatusNoContent, &model.TitleLookupPayload{})
}
