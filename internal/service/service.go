// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// payloads from the handlers, applies the rules a database constraint cannot
// express (ownership, one review per title, confirmation codes) and calls
// repository methods to persist the result.
//
// Services depend on small interfaces rather than concrete repositories so
// they can be tested with in-memory fakes.
package service

import (
	"context"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/rs/zerolog"
)

// PageResult is one page of a listing, ready to be wrapped into a
// model.PaginatedResponse by the handler.
type PageResult[T any] struct {
	Items []T
	Total int
	Page  model.Page
}

// ErrInvalidPage is returned for a page number past the last page.
var ErrInvalidPage = errs.NewNotFoundError("Invalid page.", true, nil)

// paginate checks that page exists for total rows. The first page always
// exists, even when there are no rows.
func paginate[T any](items []T, total int, page model.Page, err error) (*PageResult[T], error) {
	if err != nil {
		return nil, err
	}
	if page.Number > 1 && page.Offset() >= total {
		return nil, ErrInvalidPage
	}
	return &PageResult[T]{Items: items, Total: total, Page: page}, nil
}

// loggerFor returns the request logger carried by ctx, or fallback outside
// a request.
func loggerFor(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
