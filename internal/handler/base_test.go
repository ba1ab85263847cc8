package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleBindsFreshPayload(t *testing.T) {
	var seen []*model.CreateCategoryPayload
	h := Handle(Handler{}, func(c echo.Context, p *model.CreateCategoryPayload) (*model.Category, error) {
		seen = append(seen, p)
		return &model.Category{Name: p.Name, Slug: p.Slug}, nil
	}, http.StatusCreated, &model.CreateCategoryPayload{})

	for _, body := range []string{`{"name":"Films","slug":"films"}`, `{"name":"Books","slug":"books"}`} {
		c, rec := newContext(http.MethodPost, "/api/v1/categories/", body)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Equal(t, "films", seen[0].Slug)
	assert.Equal(t, "books", seen[1].Slug)
}

func TestHandleValidationError(t *testing.T) {
	called := false
	h := Handle(Handler{}, func(c echo.Context, p *model.CreateCategoryPayload) (*model.Category, error) {
		called = true
		return nil, nil
	}, http.StatusCreated, &model.CreateCategoryPayload{})

	c, _ := newContext(http.MethodPost, "/api/v1/categories/", `{"name":"Films","slug":"not a slug"}`)
	err := h(c)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "slug", httpErr.Errors[0].Field)
	assert.False(t, called)
}

func TestHandleListEnvelope(t *testing.T) {
	h := HandleList(Handler{}, func(c echo.Context, q *model.ListGenresQuery) (*service.PageResult[model.Genre], error) {
		assert.Equal(t, "dra", q.Search)
		page := model.NewPage(q.PageQuery, 2)
		return &service.PageResult[model.Genre]{
			Items: []model.Genre{{Name: "Drama", Slug: "drama"}},
			Total: 5,
			Page:  page,
		}, nil
	}, &model.ListGenresQuery{})

	c, rec := newContext(http.MethodGet, "http://api.example.com/api/v1/genres/?search=dra&page=2", "")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int           `json:"count"`
		Next     *string       `json:"next"`
		Previous *string       `json:"previous"`
		Results  []model.Genre `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 5, body.Count)
	require.NotNil(t, body.Next)
	assert.Equal(t, "http://api.example.com/api/v1/genres/?page=3&search=dra", *body.Next)
	require.NotNil(t, body.Previous)
	assert.Equal(t, "http://api.example.com/api/v1/genres/?search=dra", *body.Previous)
	assert.Equal(t, []model.Genre{{Name: "Drama", Slug: "drama"}}, body.Results)
}

func TestHandleNoContent(t *testing.T) {
	h := HandleNoContent(Handler{}, func(c echo.Context, p *model.DeleteGenrePayload) error {
		assert.Equal(t, "drama", p.Slug)
		return nil
	}, http.StatusNoContent, &model.DeleteGenrePayload{})

	c, rec := newContext(http.MethodDelete, "/api/v1/genres/drama/", "")
	c.SetParamNames("slug")
	c.SetParamValues("drama")

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestActorRequiresUser(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/v1/users/me/", "")
	_, err := actor(c)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}
