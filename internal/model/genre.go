package model

import (
	"strings"

	"github.com/deppfellow/yamdb/internal/validation"
)

// Genre tags titles; a title may have many.
type Genre struct {
	ID   int64  `db:"id" json:"-"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

type CreateGenrePayload struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (p *CreateGenrePayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

type DeleteGenrePayload struct {
	Slug string `param:"slug" json:"-" validate:"required"`
}

func (p *DeleteGenrePayload) Validate() error {
	return validation.Struct(p)
}

type ListGenresQuery struct {
	PageQuery
	Search string `query:"search" json:"-" validate:"max=256"`
}

func (q *ListGenresQuery) Validate() error {
	return validation.Struct(q)
}
