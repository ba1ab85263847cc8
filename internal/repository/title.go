package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/deppfellow/yamdb/internal/database"
	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
)

// TitleRepository stores titles and their genre links. Writes touching
// both tables run in one transaction.
type TitleRepository struct {
	db *database.Database
}

func NewTitleRepository(db *database.Database) *TitleRepository {
	return &TitleRepository{db: db}
}

// titleRow is the flat read shape; genres are loaded separately.
type titleRow struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Year         int     `db:"year"`
	Description  string  `db:"description"`
	Rating       *int    `db:"rating"`
	CategoryName *string `db:"category_name"`
	CategorySlug *string `db:"category_slug"`
}

func (r titleRow) toModel(genres []model.Genre) model.Title {
	t := model.Title{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Rating:      r.Rating,
		Description: r.Description,
		Genre:       genres,
	}
	if t.Genre == nil {
		t.Genre = []model.Genre{}
	}
	if r.CategorySlug != nil {
		t.Category = &model.Category{Name: *r.CategoryName, Slug: *r.CategorySlug}
	}
	return t
}

const titleSelect = `
	SELECT
		t.id,
		t.name,
		t.year,
		t.description,
		(SELECT ROUND(AVG(r.score))::int FROM reviews r WHERE r.title_id = t.id) AS rating,
		c.name AS category_name,
		c.slug AS category_slug
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id`

const titleFilter = `
	WHERE (@category::text = '' OR c.slug = @category::text)
	  AND (@genre::text = '' OR EXISTS (
		SELECT 1 FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = t.id AND g.slug = @genre::text))
	  AND (@name::text = '' OR t.name ILIKE '%' || @name::text || '%')
	  AND (@year::int = 0 OR t.year = @year::int)`

// genresFor loads the genres of every title in ids, keyed by title id.
func genresFor(ctx context.Context, db DBTX, ids []int64) (map[int64][]model.Genre, error) {
	byTitle := make(map[int64][]model.Genre, len(ids))
	if len(ids) == 0 {
		return byTitle, nil
	}

	rows, err := db.Query(ctx, `
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY(@ids)
		ORDER BY g.name, g.id`, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to load title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var g model.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan title genre: %w", err)
		}
		byTitle[titleID] = append(byTitle[titleID], g)
	}
	return byTitle, rows.Err()
}

func getTitle(ctx context.Context, db DBTX, id int64) (*model.Title, error) {
	rows, err := db.Query(ctx, titleSelect+` WHERE t.id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get title: %w", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		return nil, wrapNoRows("failed to get title", "titles", err)
	}

	genres, err := genresFor(ctx, db, []int64{id})
	if err != nil {
		return nil, err
	}

	title := row.toModel(genres[id])
	return &title, nil
}

// GetByID returns a title with its genres, category and rating.
func (r *TitleRepository) GetByID(ctx context.Context, id int64) (*model.Title, error) {
	return getTitle(ctx, r.db.Pool, id)
}

// Exists returns a not-found error when no title has the given id.
func (r *TitleRepository) Exists(ctx context.Context, id int64) error {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM titles WHERE id = @id)`,
		pgx.NamedArgs{"id": id}).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if !exists {
		return notFound("titles")
	}
	return nil
}

// List returns one page of titles matching filter, ordered by id.
func (r *TitleRepository) List(ctx context.Context, filter model.TitleFilter, page model.Page) ([]model.Title, int, error) {
	args := pgx.NamedArgs{
		"category": filter.Category,
		"genre":    filter.Genre,
		"name":     filter.Name,
		"year":     filter.Year,
		"limit":    page.Limit(),
		"offset":   page.Offset(),
	}

	total, err := count(ctx, r.db.Pool, `
		SELECT COUNT(*)
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id`+titleFilter, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, titleSelect+titleFilter+`
		ORDER BY t.id
		LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list titles: %w", err)
	}

	titleRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[titleRow])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect titles: %w", err)
	}

	ids := make([]int64, len(titleRows))
	for i, row := range titleRows {
		ids[i] = row.ID
	}
	genres, err := genresFor(ctx, r.db.Pool, ids)
	if err != nil {
		return nil, 0, err
	}

	titles := make([]model.Title, len(titleRows))
	for i, row := range titleRows {
		titles[i] = row.toModel(genres[row.ID])
	}
	return titles, total, nil
}

// Create inserts a title and its genre links, resolving slugs first.
func (r *TitleRepository) Create(ctx context.Context, w model.TitleWrite) (*model.Title, error) {
	var created *model.Title

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		categoryID, err := resolveCategory(ctx, tx, *w.Category)
		if err != nil {
			return err
		}
		genreIDs, err := resolveGenres(ctx, tx, *w.Genres)
		if err != nil {
			return err
		}

		var id int64
		err = tx.QueryRow(ctx, `
			INSERT INTO titles (name, year, description, category_id)
			VALUES (@name, @year, @description, @category_id)
			RETURNING id`,
			pgx.NamedArgs{
				"name":        *w.Name,
				"year":        *w.Year,
				"description": *w.Description,
				"category_id": categoryID,
			}).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert title: %w", err)
		}

		if err := linkGenres(ctx, tx, id, genreIDs); err != nil {
			return err
		}

		created, err = getTitle(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. A non-nil Genres replaces all links.
func (r *TitleRepository) Update(ctx context.Context, id int64, w model.TitleWrite) (*model.Title, error) {
	var updated *model.Title

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id FROM titles WHERE id = @id FOR UPDATE`,
			pgx.NamedArgs{"id": id}).Scan(&locked)
		if err != nil {
			return wrapNoRows("failed to lock title", "titles", err)
		}

		var categoryID *int64
		if w.Category != nil {
			resolved, err := resolveCategory(ctx, tx, *w.Category)
			if err != nil {
				return err
			}
			categoryID = &resolved
		}

		_, err = tx.Exec(ctx, `
			UPDATE titles SET
				name        = COALESCE(@name::text, name),
				year        = COALESCE(@year::int, year),
				description = COALESCE(@description::text, description),
				category_id = CASE WHEN @set_category::bool THEN @category_id::bigint ELSE category_id END
			WHERE id = @id`,
			pgx.NamedArgs{
				"id":           id,
				"name":         w.Name,
				"year":         w.Year,
				"description":  w.Description,
				"set_category": categoryID != nil,
				"category_id":  categoryID,
			})
		if err != nil {
			return fmt.Errorf("failed to update title: %w", err)
		}

		if w.Genres != nil {
			genreIDs, err := resolveGenres(ctx, tx, *w.Genres)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = @id`,
				pgx.NamedArgs{"id": id}); err != nil {
				return fmt.Errorf("failed to clear title genres: %w", err)
			}
			if err := linkGenres(ctx, tx, id, genreIDs); err != nil {
				return err
			}
		}

		updated, err = getTitle(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a title; reviews and comments cascade.
func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM titles WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete title: %w", notFound("titles"))
	}
	return nil
}

func unknownSlug(field string, slugs ...string) error {
	return errs.NewBadRequestError(
		fmt.Sprintf("Object with slug %s does not exist", strings.Join(slugs, ", ")),
		true,
		errs.Code("UNKNOWN_"+strings.ToUpper(field)),
		[]errs.FieldError{{Field: field, Error: "unknown slug: " + strings.Join(slugs, ", ")}},
	)
}

func resolveCategory(ctx context.Context, db DBTX, slug string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `SELECT id FROM categories WHERE slug = @slug`,
		pgx.NamedArgs{"slug": slug}).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, unknownSlug("category", slug)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve category: %w", err)
	}
	return id, nil
}

// resolveGenres maps slugs to ids, reporting every slug that is missing.
// Duplicate slugs collapse into one link.
func resolveGenres(ctx context.Context, db DBTX, slugs []string) ([]int64, error) {
	unique := slices.Compact(slices.Sorted(slices.Values(slugs)))
	if len(unique) == 0 {
		return nil, nil
	}

	rows, err := db.Query(ctx, `SELECT id, slug FROM genres WHERE slug = ANY(@slugs)`,
		pgx.NamedArgs{"slugs": unique})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve genres: %w", err)
	}
	defer rows.Close()

	found := make(map[string]int64, len(unique))
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		found[slug] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to resolve genres: %w", err)
	}

	var missing []string
	ids := make([]int64, 0, len(unique))
	for _, slug := range unique {
		id, ok := found[slug]
		if !ok {
			missing = append(missing, slug)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, unknownSlug("genre", missing...)
	}
	return ids, nil
}

func linkGenres(ctx context.Context, db DBTX, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx, `
		INSERT INTO title_genres (title_id, genre_id)
		SELECT @title_id, unnest(@genre_ids::bigint[])`,
		pgx.NamedArgs{"title_id": titleID, "genre_ids": genreIDs})
	if err != nil {
		return fmt.Errorf("failed to link title genres: %w", err)
	}
	return nil
}
