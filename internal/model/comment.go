package model

import (
	"time"

	"github.com/deppfellow/yamdb/internal/validation"
)

// Comment is a reply to a review.
type Comment struct {
	ID       int64     `db:"id" json:"id"`
	Text     string    `db:"text" json:"text"`
	Author   string    `db:"author" json:"author"`
	Review   int64     `db:"review_id" json:"review"`
	PubDate  time.Time `db:"pub_date" json:"pub_date"`
	AuthorID int64     `db:"author_id" json:"-"`
}

type CreateCommentPayload struct {
	TitleID  int64  `param:"title_id" json:"-" validate:"required"`
	ReviewID int64  `param:"review_id" json:"-" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

func (p *CreateCommentPayload) Validate() error {
	trimSpace(&p.Text)
	return validation.Struct(p)
}

type UpdateCommentPayload struct {
	TitleID   int64   `param:"title_id" json:"-" validate:"required"`
	ReviewID  int64   `param:"review_id" json:"-" validate:"required"`
	CommentID int64   `param:"comment_id" json:"-" validate:"required"`
	Text      *string `json:"text" validate:"omitnil,min=1"`
}

func (p *UpdateCommentPayload) Validate() error {
	trimSpace(p.Text)
	return validation.Struct(p)
}

type CommentLookupPayload struct {
	TitleID   int64 `param:"title_id" json:"-" validate:"required"`
	ReviewID  int64 `param:"review_id" json:"-" validate:"required"`
	CommentID int64 `param:"comment_id" json:"-" validate:"required"`
}

func (p *CommentLookupPayload) Validate() error {
	return validation.Struct(p)
}

type ListCommentsQuery struct {
	PageQuery
	TitleID  int64 `param:"title_id" json:"-" validate:"required"`
	ReviewID int64 `param:"review_id" json:"-" validate:"required"`
}

func (q *ListCommentsQuery) Validate() error {
	return validation.Struct(q)
}
