package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
)

// ReviewRepository stores reviews. Every lookup is scoped to its title.
type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// reviewColumns projects a reviews row aliased "r" into model.Review.
const reviewColumns = `
	r.id, r.text, u.username AS author, r.score, t.name AS title,
	r.pub_date, r.title_id, r.author_id`

const reviewJoins = `
	JOIN users u ON u.id = r.author_id
	JOIN titles t ON t.id = r.title_id`

func collectReview(rows pgx.Rows, op string) (*model.Review, error) {
	review, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Review])
	if err != nil {
		return nil, wrapNoRows(op, "reviews", err)
	}
	return review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, titleID, authorID int64, text string, score int) (*model.Review, error) {
	rows, err := r.db.Query(ctx, `
		WITH r AS (
			INSERT INTO reviews (title_id, author_id, text, score)
			VALUES (@title_id, @author_id, @text, @score)
			RETURNING *
		)
		SELECT`+reviewColumns+` FROM r`+reviewJoins,
		pgx.NamedArgs{
			"title_id":  titleID,
			"author_id": authorID,
			"text":      text,
			"score":     score,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return collectReview(rows, "failed to insert review")
}

func (r *ReviewRepository) Get(ctx context.Context, titleID, reviewID int64) (*model.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+reviewColumns+`
		FROM reviews r`+reviewJoins+`
		WHERE r.id = @id AND r.title_id = @title_id`,
		pgx.NamedArgs{"id": reviewID, "title_id": titleID})
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return collectReview(rows, "failed to get review")
}

// ExistsByAuthor reports whether authorID already reviewed titleID.
func (r *ReviewRepository) ExistsByAuthor(ctx context.Context, titleID, authorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = @title_id AND author_id = @author_id)`,
		pgx.NamedArgs{"title_id": titleID, "author_id": authorID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check review author: %w", err)
	}
	return exists, nil
}

// List returns one page of a title's reviews, oldest first.
func (r *ReviewRepository) List(ctx context.Context, titleID int64, page model.Page) ([]model.Review, int, error) {
	args := pgx.NamedArgs{
		"title_id": titleID,
		"limit":    page.Limit(),
		"offset":   page.Offset(),
	}

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM reviews WHERE title_id = @title_id`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT`+reviewColumns+`
		FROM reviews r`+reviewJoins+`
		WHERE r.title_id = @title_id
		ORDER BY r.pub_date, r.id
		LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect reviews: %w", err)
	}
	return reviews, total, nil
}

// Update changes the non-nil fields.
func (r *ReviewRepository) Update(ctx context.Context, titleID, reviewID int64, text *string, score *int) (*model.Review, error) {
	rows, err := r.db.Query(ctx, `
		WITH r AS (
			UPDATE reviews SET
				text  = COALESCE(@text::text, text),
				score = COALESCE(@score::smallint, score)
			WHERE id = @id AND title_id = @title_id
			RETURNING *
		)
		SELECT`+reviewColumns+` FROM r`+reviewJoins,
		pgx.NamedArgs{
			"id":       reviewID,
			"title_id": titleID,
			"text":     text,
			"score":    score,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return collectReview(rows, "failed to update review")
}

// Delete removes a review; its comments cascade.
func (r *ReviewRepository) Delete(ctx context.Context, titleID, reviewID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = @id AND title_id = @title_id`,
		pgx.NamedArgs{"id": reviewID, "title_id": titleID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete review: %w", notFound("reviews"))
	}
	return nil
}
