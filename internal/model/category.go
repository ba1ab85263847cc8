package model

import (
	"strings"

	"github.com/deppfellow/yamdb/internal/validation"
)

// Category classifies titles ("Films", "Books", ...).
type Category struct {
	ID   int64  `db:"id" json:"-"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// CreateCategoryPayload creates a category.
type CreateCategoryPayload struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (p *CreateCategoryPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

// DeleteCategoryPayload addresses a category by slug.
type DeleteCategoryPayload struct {
	Slug string `param:"slug" json:"-" validate:"required"`
}

func (p *DeleteCategoryPayload) Validate() error {
	return validation.Struct(p)
}

// ListCategoriesQuery filters the category listing by a name substring.
type ListCategoriesQuery struct {
	PageQuery
	Search string `query:"search" json:"-" validate:"max=256"`
}

func (q *ListCategoriesQuery) Validate() error {
	return validation.Struct(q)
}
