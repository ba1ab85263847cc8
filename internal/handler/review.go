package handler

import (
	"net/http"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	Handler
	reviews *service.ReviewService
}

func (h *ReviewHandler) List() echo.HandlerFunc {
	return HandleList(h.Handler, func(c echo.Context, q *model.ListReviewsQuery) (*service.PageResult[model.Review], error) {
		return h.reviews.List(c.Request().Context(), q)
	}, &model.ListReviewsQuery{})
}

func (h *ReviewHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.ReviewLookupPayload) (*model.Review, error) {
		return h.reviews.Get(c.Request().Context(), p.TitleID, p.ReviewID)
	}, http.StatusOK, &model.ReviewLookupPayload{})
}

func (h *ReviewHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CreateReviewPayload) (*model.Review, error) {
		author, err := actor(c)
		if err != nil {
			return nil, err
		}
		return h.reviews.Create(c.Request().Context(), author, p)
	}, http.StatusCreated, &model.CreateReviewPayload{})
}

func (h *ReviewHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.UpdateReviewPayload) (*model.Review, error) {
		user, err := actor(c)
		if err != nil {
			return nil, err
		}
		return h.reviews.Update(c.Request().Context(), user, p)
	}, http.StatusOK, &model.UpdateReviewPayload{})
}

func (h *ReviewHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, p *model.ReviewLookupPayload) error {
		user, err := actor(c)
		if err != nil {
			return err
		}
		return h.reviews.Delete(c.Request().Context(), user, p.TitleID, p.ReviewID)
	}, http.StatusNoContent, &model.ReviewLookupPayload{})
}
