// Package model holds the domain entities and the request payloads
// accepted by the HTTP layer.
//
// Entities carry `db` tags for pgx row scanning and `json` tags for the
// response shape. Payloads carry `param`/`query`/`json` binding tags and
// `validate` rules, and implement validation.Validatable.
package model

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// PaginatedResponse is the envelope of every list endpoint.
type PaginatedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// PageQuery is embedded by list payloads. Page is 1-based.
type PageQuery struct {
	Page int `query:"page" json:"-" validate:"omitempty,min=1"`
}

// Page is a resolved page request: the 1-based number plus the page size
// chosen by the server configuration.
type Page struct {
	Number int
	Size   int
}

// NewPage resolves a page query against the configured page size.
func NewPage(q PageQuery, size int) Page {
	number := q.Page
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Size: size}
}

// Limit is the SQL LIMIT for this page.
func (p Page) Limit() int {
	return p.Size
}

// Offset is the SQL OFFSET for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NewPaginatedResponse builds the envelope for one page of results.
//
// next/previous are absolute links derived from base (the request URL) with
// the page parameter replaced; they are nil at the edges.
func NewPaginatedResponse[T any](results []T, total int, page Page, base *url.URL) PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}

	resp := PaginatedResponse[T]{
		Count:   total,
		Results: results,
	}

	if base == nil || page.Size <= 0 {
		return resp
	}

	lastPage := int(math.Ceil(float64(total) / float64(page.Size)))
	if page.Number < lastPage {
		next := pageLink(base, page.Number+1)
		resp.Next = &next
	}
	if page.Number > 1 {
		prevNumber := page.Number - 1
		if lastPage > 0 && prevNumber > lastPage {
			prevNumber = lastPage
		}
		prev := pageLink(base, prevNumber)
		resp.Previous = &prev
	}

	return resp
}

func pageLink(base *url.URL, number int) string {
	u := *base
	q := u.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// trimSpace trims the set values in place, so whitespace-only input fails
// the same rules as empty input.
func trimSpace(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
}
