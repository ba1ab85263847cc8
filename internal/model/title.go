package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/yamdb/internal/validation"
)

// Title is a reviewable work.
//
// Rating is the rounded mean review score, nil while the title has no
// reviews. Category is nil once its category has been deleted.
type Title struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Rating      *int      `json:"rating"`
	Description string    `json:"description"`
	Genre       []Genre   `json:"genre"`
	Category    *Category `json:"category"`
}

// TitleFilter narrows the title listing. Zero values are ignored; slugs
// match exactly and Name matches a case-insensitive substring.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     int
}

// TitleWrite is the resolved form of a create or update: optional fields
// are nil when unchanged.
type TitleWrite struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

func defaultCurrentYear() int { return time.Now().Year() }

// currentYear is a variable so tests can pin the clock.
var currentYear = defaultCurrentYear

func validateYear(year *int) error {
	if year != nil && *year > currentYear() {
		return validation.CustomValidationErrors{
			{Field: "year", Message: fmt.Sprintf("must not be later than %d", currentYear())},
		}
	}
	return nil
}

// CreateTitlePayload creates a title. Genre and Category are slugs.
type CreateTitlePayload struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description string   `json:"description"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,slug"`
	Category    string   `json:"category" validate:"required,slug"`
}

func (p *CreateTitlePayload) Validate() error {
	trimSpace(&p.Name)
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateYear(&p.Year)
}

// Write converts the payload into a repository write.
func (p *CreateTitlePayload) Write() TitleWrite {
	genres := p.Genre
	return TitleWrite{
		Name:        &p.Name,
		Year:        &p.Year,
		Description: &p.Description,
		Category:    &p.Category,
		Genres:      &genres,
	}
}

// UpdateTitlePayload is a partial update; omitted fields keep their value.
type UpdateTitlePayload struct {
	ID          int64     `param:"title_id" json:"-" validate:"required"`
	Name        *string   `json:"name" validate:"omitnil,min=1,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre" validate:"omitnil,min=1,dive,slug"`
	Category    *string   `json:"category" validate:"omitnil,required,slug"`
}

func (p *UpdateTitlePayload) Validate() error {
	trimSpace(p.Name)
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateYear(p.Year)
}

func (p *UpdateTitlePayload) Write() TitleWrite {
	return TitleWrite{
		Name:        p.Name,
		Year:        p.Year,
		Description: p.Description,
		Category:    p.Category,
		Genres:      p.Genre,
	}
}

// TitleLookupPayload addresses one title.
type TitleLookupPayload struct {
	ID int64 `param:"title_id" json:"-" validate:"required"`
}

func (p *TitleLookupPayload) Validate() error {
	return validation.Struct(p)
}

// ListTitlesQuery carries the title listing filters.
type ListTitlesQuery struct {
	PageQuery
	Category string `query:"category" json:"-"`
	Genre    string `query:"genre" json:"-"`
	Name     string `query:"name" json:"-" validate:"max=256"`
	Year     int    `query:"year" json:"-"`
}

func (q *ListTitlesQuery) Validate() error {
	return validation.Struct(q)
}

func (q *ListTitlesQuery) Filter() TitleFilter {
	return TitleFilter{
		Category: q.Category,
		Genre:    q.Genre,
		Name:     q.Name,
		Year:     q.Year,
	}
}
