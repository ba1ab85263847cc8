package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &model.User{ID: 1, Username: "alice", Role: model.RoleUser}
	bob   = &model.User{ID: 2, Username: "bob", Role: model.RoleUser}
	mod   = &model.User{ID: 3, Username: "mod", Role: model.RoleModerator}
	root  = &model.User{ID: 4, Username: "root", Role: model.RoleAdmin}
)

func newTestReviewService(t *testing.T) (*ReviewService, *fakeReviewStore) {
	store := &fakeReviewStore{}
	return NewReviewService(store, fakeTitles{1: true, 2: true}, newEnforcer(t), 10), store
}

func TestCreateReviewOnePerTitle(t *testing.T) {
	svc, _ := newTestReviewService(t)
	ctx := context.Background()

	review, err := svc.Create(ctx, alice, &model.CreateReviewPayload{TitleID: 1, Text: "great", Score: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(1), review.AuthorID)

	_, err = svc.Create(ctx, alice, &model.CreateReviewPayload{TitleID: 1, Text: "again", Score: 3})
	assert.Same(t, ErrDuplicateReview, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	// Other titles and other authors are unaffected.
	_, err = svc.Create(ctx, alice, &model.CreateReviewPayload{TitleID: 2, Text: "fine", Score: 6})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, bob, &model.CreateReviewPayload{TitleID: 1, Text: "meh", Score: 5})
	assert.NoError(t, err)
}

func TestCreateReviewConstraintRace(t *testing.T) {
	svc, store := newTestReviewService(t)
	store.createErr = fmt.Errorf("failed to insert review: %w", &pgconn.PgError{
		Code:           "23505",
		TableName:      "reviews",
		ConstraintName: "unique_reviews_author",
	})

	_, err := svc.Create(context.Background(), alice, &model.CreateReviewPayload{TitleID: 1, Text: "great", Score: 9})
	assert.Same(t, ErrDuplicateReview, err)
}

func TestCreateReviewMissingTitle(t *testing.T) {
	svc, _ := newTestReviewService(t)

	_, err := svc.Create(context.Background(), alice, &model.CreateReviewPayload{TitleID: 42, Text: "x", Score: 5})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestReviewOwnership(t *testing.T) {
	tests := []struct {
		name    string
		actor   *model.User
		allowed bool
	}{
		{name: "author", actor: alice, allowed: true},
		{name: "other user", actor: bob, allowed: false},
		{name: "moderator", actor: mod, allowed: true},
		{name: "admin", actor: root, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestReviewService(t)
			ctx := context.Background()

			review, err := svc.Create(ctx, alice, &model.CreateReviewPayload{TitleID: 1, Text: "great", Score: 9})
			require.NoError(t, err)

			updated, err := svc.Update(ctx, tt.actor, &model.UpdateReviewPayload{
				TitleID: 1, ReviewID: review.ID, Score: ptr(4),
			})
			if !tt.allowed {
				assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
				assert.Equal(t, http.StatusForbidden, httpStatus(t, svc.Delete(ctx, tt.actor, 1, review.ID)))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 4, updated.Score)
			assert.Equal(t, "great", updated.Text)
			assert.NoError(t, svc.Delete(ctx, tt.actor, 1, review.ID))
		})
	}
}

func TestReviewScopedToTitle(t *testing.T) {
	svc, _ := newTestReviewService(t)
	ctx := context.Background()

	review, err := svc.Create(ctx, alice, &model.CreateReviewPayload{TitleID: 1, Text: "great", Score: 9})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, review.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestListReviewsPagination(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, fakeTitles{1: true}, newEnforcer(t), 2)
	ctx := context.Background()

	for _, u := range []*model.User{alice, bob, mod} {
		_, err := svc.Create(ctx, u, &model.CreateReviewPayload{TitleID: 1, Text: "t", Score: 5})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, &model.ListReviewsQuery{TitleID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total)
	assert.Len(t, first.Items, 2)

	second, err := svc.List(ctx, &model.ListReviewsQuery{TitleID: 1, PageQuery: model.PageQuery{Page: 2}})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)

	_, err = svc.List(ctx, &model.ListReviewsQuery{TitleID: 1, PageQuery: model.PageQuery{Page: 3}})
	assert.Same(t, ErrInvalidPage, err)

	_, err = svc.List(ctx, &model.ListReviewsQuery{TitleID: 9})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
