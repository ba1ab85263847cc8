package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
)

// slugRepository implements the storage shared by the two slug-addressed
// catalog tables, categories and genres.
type slugRepository[T any] struct {
	db    DBTX
	table string
}

func (r *slugRepository[T]) Create(ctx context.Context, name, slug string) (*T, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug)
		VALUES (@name, @slug)
		RETURNING id, name, slug`, r.table)

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"name": name, "slug": slug})
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return item, nil
}

func (r *slugRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	query := fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE slug = @slug`, r.table)

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by slug: %w", r.table, err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	return item, wrapNoRows("failed to get by slug", r.table, err)
}

func (r *slugRepository[T]) DeleteBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slug = @slug`, r.table)

	tag, err := r.db.Exec(ctx, query, pgx.NamedArgs{"slug": slug})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete: %w", notFound(r.table))
	}
	return nil
}

// List returns one page of rows whose name contains search
// (case-insensitive), ordered by name, plus the total match count.
func (r *slugRepository[T]) List(ctx context.Context, search string, page model.Page) ([]T, int, error) {
	args := pgx.NamedArgs{
		"search": search,
		"limit":  page.Limit(),
		"offset": page.Offset(),
	}
	where := `WHERE (@search::text = '' OR name ILIKE '%' || @search::text || '%')`

	total, err := count(ctx, r.db, fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.table, where), args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, slug
		FROM %s
		%s
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`, r.table, where)

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", r.table, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect %s: %w", r.table, err)
	}
	return items, total, nil
}

// CategoryRepository stores categories.
type CategoryRepository struct {
	slugRepository[model.Category]
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{slugRepository[model.Category]{db: db, table: "categories"}}
}

// GenreRepository stores genres.
type GenreRepository struct {
	slugRepository[model.Genre]
}

func NewGenreRepository(db DBTX) *GenreRepository {
	return &GenreRepository{slugRepository[model.Genre]{db: db, table: "genres"}}
}
