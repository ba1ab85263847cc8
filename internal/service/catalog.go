package service

import (
	"context"

	"github.com/deppfellow/yamdb/internal/model"
)

// slugStore is the repository surface shared by categories and genres.
type slugStore[T any] interface {
	Create(ctx context.Context, name, slug string) (*T, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, search string, page model.Page) ([]T, int, error)
}

// CatalogService manages a flat slug-addressed collection: categories or
// genres.
type CatalogService[T any] struct {
	repo     slugStore[T]
	pageSize int
}

func NewCatalogService[T any](repo slugStore[T], pageSize int) *CatalogService[T] {
	return &CatalogService[T]{repo: repo, pageSize: pageSize}
}

func (s *CatalogService[T]) List(ctx context.Context, search string, q model.PageQuery) (*PageResult[T], error) {
	page := model.NewPage(q, s.pageSize)
	items, total, err := s.repo.List(ctx, search, page)
	return paginate(items, total, page, err)
}

// Create stores a new entry. A duplicate slug surfaces as a unique
// violation and is mapped to 400 by the error handler.
func (s *CatalogService[T]) Create(ctx context.Context, name, slug string) (*T, error) {
	return s.repo.Create(ctx, name, slug)
}

func (s *CatalogService[T]) Delete(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}
