// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist or update data,
// keeping SQL away from the service layer. Queries use pgx named arguments
// and rows are scanned by column name into model structs.
//
// Missing rows are reported as "table:<name>: no rows in result set" so
// sqlerr.HandleError can name the missing entity.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/yamdb/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Categories *CategoryRepository
	Genres     *GenreRepository
	Titles     *TitleRepository
	Reviews    *ReviewRepository
	Comments   *CommentRepository
	Users      *UserRepository
}

// NewRepositories constructs every repository over the shared pool.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Categories: NewCategoryRepository(db.Pool),
		Genres:     NewGenreRepository(db.Pool),
		Titles:     NewTitleRepository(db),
		Reviews:    NewReviewRepository(db.Pool),
		Comments:   NewCommentRepository(db.Pool),
		Users:      NewUserRepository(db.Pool),
	}
}

func notFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}

// wrapNoRows tags pgx.ErrNoRows with the table; other errors are wrapped
// with the operation only.
func wrapNoRows(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, notFound(table))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// count runs a "SELECT COUNT(*) ..." query.
func count(ctx context.Context, db DBTX, query string, args pgx.NamedArgs) (int, error) {
	var total int
	if err := db.QueryRow(ctx, query, args).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
