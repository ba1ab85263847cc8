package handler

import (
	"net/http"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	Handler
	comments *service.CommentService
}

func (h *CommentHandler) List() echo.HandlerFunc {
	return HandleList(h.Handler, func(c echo.Context, q *model.ListCommentsQuery) (*service.PageResult[model.Comment], error) {
		return h.comments.List(c.Request().Context(), q)
	}, &model.ListCommentsQuery{})
}

func (h *CommentHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CommentLookupPayload) (*model.Comment, error) {
		return h.comments.Get(c.Request().Context(), p)
	}, http.StatusOK, &model.CommentLookupPayload{})
}

func (h *CommentHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.CreateCommentPayload) (*model.Comment, error) {
		author, err := actor(c)
		if err != nil {
			return nil, err
		}
		return h.comments.Create(c.Request().Context(), author, p)
	}, http.StatusCreated, &model.CreateCommentPayload{})
}

func (h *CommentHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, p *model.UpdateCommentPayload) (*model.Comment, error) {
		user, err := actor(c)
		if err != nil {
			return nil, err
		}
		return h.comments.Update(c.Request().Context(), user, p)
	}, http.StatusOK, &model.UpdateCommentPayload{})
}

func (h *CommentHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, p *model.CommentLookupPayload) error {
		user, err := actor(c)
		if err != nil {
			return err
		}
		return h.comments.Delete(c.Request().Context(), user, p)
	}, http.StatusNoContent, &model.CommentLookupPayload{})
}
