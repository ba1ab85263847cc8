package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorPgErrors(t *testing.T) {
	tests := []struct {
		name        string
		pgErr       *pgconn.PgError
		wantStatus  int
		wantCode    string
		wantMessage string
		wantFields  []errs.FieldError
	}{
		{
			name: "duplicate review",
			pgErr: &pgconn.PgError{
				Code: "23505", Severity: "ERROR", TableName: "reviews",
				ConstraintName: "unique_reviews_author",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "REVIEW_ALREADY_EXISTS",
			wantMessage: "A Review with this Author already exists",
		},
		{
			name: "duplicate email",
			pgErr: &pgconn.PgError{
				Code: "23505", Severity: "ERROR", TableName: "users",
				ConstraintName: "users_email_key",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_ALREADY_EXISTS",
			wantMessage: "A User with this Email already exists",
		},
		{
			name: "duplicate category slug",
			pgErr: &pgconn.PgError{
				Code: "23505", Severity: "ERROR", TableName: "categories",
				ConstraintName: "categories_slug_key",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "CATEGORY_ALREADY_EXISTS",
			wantMessage: "A Category with this Slug already exists",
		},
		{
			name: "missing category reference",
			pgErr: &pgconn.PgError{
				Code: "23503", Severity: "ERROR", TableName: "titles", ColumnName: "category_id",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "TITLE_NOT_FOUND",
			wantMessage: "The referenced Category does not exist",
		},
		{
			name: "not null",
			pgErr: &pgconn.PgError{
				Code: "23502", Severity: "ERROR", TableName: "genres", ColumnName: "name",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "GENRE_REQUIRED",
			wantMessage: "The Name is required",
			wantFields:  []errs.FieldError{{Field: "name", Error: "is required"}},
		},
		{
			name: "role check",
			pgErr: &pgconn.PgError{
				Code: "23514", Severity: "ERROR", TableName: "users", ConstraintName: "users_role_check",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "USER_INVALID",
			wantMessage: "One or more values do not meet required conditions",
		},
		{
			name:       "unknown sqlstate",
			pgErr:      &pgconn.PgError{Code: "XX000", Severity: "ERROR"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleError(fmt.Errorf("repository call: %w", tt.pgErr))

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, httpErr.Message)
			}
			assert.Equal(t, tt.wantFields, httpErr.Errors)
		})
	}
}

func TestHandleErrorNoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("failed to get title table:titles: %w", pgx.ErrNoRows))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Title not found", httpErr.Message)

	err = HandleError(pgx.ErrNoRows)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewForbiddenError("not yours", true)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorUnknown(t *testing.T) {
	err := HandleError(errors.New("boom"))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, ForeignKeyViolation, ErrCode(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgErr))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "category", singular("categories"))
	assert.Equal(t, "title_genre", singular("title_genres"))
	assert.Equal(t, "user", singular("users"))
	assert.Equal(t, "x", singular("x"))
}
