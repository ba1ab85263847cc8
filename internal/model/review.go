package model

import (
	"time"

	"github.com/deppfellow/yamdb/internal/validation"
)

// Review is one user's scored opinion of a title. A user reviews a title
// at most once.
type Review struct {
	ID       int64     `db:"id" json:"id"`
	Text     string    `db:"text" json:"text"`
	Author   string    `db:"author" json:"author"`
	Score    int       `db:"score" json:"score"`
	Title    string    `db:"title" json:"title"`
	PubDate  time.Time `db:"pub_date" json:"pub_date"`
	TitleID  int64     `db:"title_id" json:"-"`
	AuthorID int64     `db:"author_id" json:"-"`
}

type CreateReviewPayload struct {
	TitleID int64  `param:"title_id" json:"-" validate:"required"`
	Text    string `json:"text" validate:"required"`
	Score   int    `json:"score" validate:"required,min=1,max=10"`
}

func (p *CreateReviewPayload) Validate() error {
	trimSpace(&p.Text)
	return validation.Struct(p)
}

type UpdateReviewPayload struct {
	TitleID  int64   `param:"title_id" json:"-" validate:"required"`
	ReviewID int64   `param:"review_id" json:"-" validate:"required"`
	Text     *string `json:"text" validate:"omitnil,min=1"`
	Score    *int    `json:"score" validate:"omitnil,min=1,max=10"`
}

func (p *UpdateReviewPayload) Validate() error {
	trimSpace(p.Text)
	return validation.Struct(p)
}

// ReviewLookupPayload addresses one review under its title.
type ReviewLookupPayload struct {
	TitleID  int64 `param:"title_id" json:"-" validate:"required"`
	ReviewID int64 `param:"review_id" json:"-" validate:"required"`
}

func (p *ReviewLookupPayload) Validate() error {
	return validation.Struct(p)
}

type ListReviewsQuery struct {
	PageQuery
	TitleID int64 `param:"title_id" json:"-" validate:"required"`
}

func (q *ListReviewsQuery) Validate() error {
	return validation.Struct(q)
}
