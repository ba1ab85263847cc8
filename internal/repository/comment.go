package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
)

// CommentRepository stores comments. Lookups are scoped to the review; the
// service checks that the review belongs to the requested title.
type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `c.id, c.text, u.username AS author, c.review_id, c.pub_date, c.author_id`

const commentJoins = ` JOIN users u ON u.id = c.author_id`

func collectComment(rows pgx.Rows, op string) (*model.Comment, error) {
	comment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Comment])
	if err != nil {
		return nil, wrapNoRows(op, "comments", err)
	}
	return comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, reviewID, authorID int64, text string) (*model.Comment, error) {
	rows, err := r.db.Query(ctx, `
		WITH c AS (
			INSERT INTO comments (review_id, author_id, text)
			VALUES (@review_id, @author_id, @text)
			RETURNING *
		)
		SELECT `+commentColumns+` FROM c`+commentJoins,
		pgx.NamedArgs{"review_id": reviewID, "author_id": authorID, "text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return collectComment(rows, "failed to insert comment")
}

func (r *CommentRepository) Get(ctx context.Context, reviewID, commentID int64) (*model.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments c`+commentJoins+`
		WHERE c.id = @id AND c.review_id = @review_id`,
		pgx.NamedArgs{"id": commentID, "review_id": reviewID})
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return collectComment(rows, "failed to get comment")
}

func (r *CommentRepository) List(ctx context.Context, reviewID int64, page model.Page) ([]model.Comment, int, error) {
	args := pgx.NamedArgs{
		"review_id": reviewID,
		"limit":     page.Limit(),
		"offset":    page.Offset(),
	}

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM comments WHERE review_id = @review_id`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments c`+commentJoins+`
		WHERE c.review_id = @review_id
		ORDER BY c.pub_date, c.id
		LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect comments: %w", err)
	}
	return comments, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, reviewID, commentID int64, text *string) (*model.Comment, error) {
	rows, err := r.db.Query(ctx, `
		WITH c AS (
			UPDATE comments SET text = COALESCE(@text::text, text)
			WHERE id = @id AND review_id = @review_id
			RETURNING *
		)
		SELECT `+commentColumns+` FROM c`+commentJoins,
		pgx.NamedArgs{"id": commentID, "review_id": reviewID, "text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return collectComment(rows, "failed to update comment")
}

func (r *CommentRepository) Delete(ctx context.Context, reviewID, commentID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = @id AND review_id = @review_id`,
		pgx.NamedArgs{"id": commentID, "review_id": reviewID})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete comment: %w", notFound("comments"))
	}
	return nil
}
