package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	reviews := &fakeReviewStore{}
	review, err := reviews.Create(context.Background(), 1, alice.ID, "great", 9)
	require.NoError(t, err)

	svc := NewCommentService(&fakeCommentStore{}, reviews, newEnforcer(t), 10)
	ctx := context.Background()

	comment, err := svc.Create(ctx, bob, &model.CreateCommentPayload{TitleID: 1, ReviewID: review.ID, Text: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, review.ID, comment.Review)

	lookup := &model.CommentLookupPayload{TitleID: 1, ReviewID: review.ID, CommentID: comment.ID}

	_, err = svc.Update(ctx, alice, &model.UpdateCommentPayload{
		TitleID: 1, ReviewID: review.ID, CommentID: comment.ID, Text: ptr("hijacked"),
	})
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))

	updated, err := svc.Update(ctx, bob, &model.UpdateCommentPayload{
		TitleID: 1, ReviewID: review.ID, CommentID: comment.ID, Text: ptr("strongly agreed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "strongly agreed", updated.Text)

	page, err := svc.List(ctx, &model.ListCommentsQuery{TitleID: 1, ReviewID: review.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	// The review must belong to the title in the path.
	_, err = svc.Get(ctx, &model.CommentLookupPayload{TitleID: 2, ReviewID: review.ID, CommentID: comment.ID})
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	require.NoError(t, svc.Delete(ctx, mod, lookup))
	_, err = svc.Get(ctx, lookup)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
