package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/deppfellow/yamdb/internal/authz"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func errNoRows(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}

type fakeUserStore struct {
	users  []*model.User
	nextID int64
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.nextID++
	created := *u
	created.ID = f.nextID
	f.users = append(f.users, &created)
	return &created, nil
}

func (f *fakeUserStore) byID(id int64) *model.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u := f.byID(id); u != nil {
		c := *u
		return &c, nil
	}
	return nil, errNoRows("users")
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, errNoRows("users")
}

func (f *fakeUserStore) FindByUsernameOrEmail(_ context.Context, username, email string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) SetConfirmationCode(_ context.Context, id int64, hash string) error {
	u := f.byID(id)
	if u == nil {
		return errNoRows("users")
	}
	u.ConfirmationCode = hash
	return nil
}

func (f *fakeUserStore) ConsumeConfirmationCode(_ context.Context, id int64, hash string) (bool, error) {
	u := f.byID(id)
	if u == nil || u.ConfirmationCode == "" || u.ConfirmationCode != hash {
		return false, nil
	}
	u.ConfirmationCode = ""
	return true, nil
}

func (f *fakeUserStore) List(_ context.Context, search string, page model.Page) ([]model.User, int, error) {
	var matched []model.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			matched = append(matched, *u)
		}
	}
	return window(matched, page), len(matched), nil
}

func (f *fakeUserStore) Update(_ context.Context, id int64, upd model.UserUpdate) (*model.User, error) {
	u := f.byID(id)
	if u == nil {
		return nil, errNoRows("users")
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) DeleteByUsername(_ context.Context, username string) error {
	for i, u := range f.users {
		if u.Username == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return errNoRows("users")
}

func window[T any](items []T, page model.Page) []T {
	start := min(page.Offset(), len(items))
	end := min(start+page.Limit(), len(items))
	return items[start:end]
}

type sentCode struct {
	to, username, code string
}

type fakeMailer struct {
	sent []sentCode
	err  error
}

func (f *fakeMailer) EnqueueConfirmationCode(_ context.Context, to, username, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentCode{to: to, username: username, code: code})
	return nil
}

func (f *fakeMailer) last() string {
	return f.sent[len(f.sent)-1].code
}

type fakeTokens struct{}

func (fakeTokens) Generate(userID int64, username, role string) (string, error) {
	return fmt.Sprintf("token-%d-%s-%s", userID, username, role), nil
}

type fakeTitles map[int64]bool

func (f fakeTitles) Exists(_ context.Context, id int64) error {
	if f[id] {
		return nil
	}
	return errNoRows("titles")
}

type fakeReviewStore struct {
	reviews   []*model.Review
	nextID    int64
	createErr error
}

func (f *fakeReviewStore) find(titleID, reviewID int64) (int, *model.Review) {
	for i, r := range f.reviews {
		if r.TitleID == titleID && r.ID == reviewID {
			return i, r
		}
	}
	return -1, nil
}

func (f *fakeReviewStore) Create(_ context.Context, titleID, authorID int64, text string, score int) (*model.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	r := &model.Review{ID: f.nextID, TitleID: titleID, AuthorID: authorID, Text: text, Score: score}
	f.reviews = append(f.reviews, r)
	c := *r
	return &c, nil
}

func (f *fakeReviewStore) Get(_ context.Context, titleID, reviewID int64) (*model.Review, error) {
	if _, r := f.find(titleID, reviewID); r != nil {
		c := *r
		return &c, nil
	}
	return nil, errNoRows("reviews")
}

func (f *fakeReviewStore) ExistsByAuthor(_ context.Context, titleID, authorID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewStore) List(_ context.Context, titleID int64, page model.Page) ([]model.Review, int, error) {
	var matched []model.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			matched = append(matched, *r)
		}
	}
	return window(matched, page), len(matched), nil
}

func (f *fakeReviewStore) Update(_ context.Context, titleID, reviewID int64, text *string, score *int) (*model.Review, error) {
	_, r := f.find(titleID, reviewID)
	if r == nil {
		return nil, errNoRows("reviews")
	}
	if text != nil {
		r.Text = *text
	}
	if score != nil {
		r.Score = *score
	}
	c := *r
	return &c, nil
}

func (f *fakeReviewStore) Delete(_ context.Context, titleID, reviewID int64) error {
	i, r := f.find(titleID, reviewID)
	if r == nil {
		return errNoRows("reviews")
	}
	f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
	return nil
}

type fakeCommentStore struct {
	comments []*model.Comment
	nextID   int64
}

func (f *fakeCommentStore) find(reviewID, commentID int64) (int, *model.Comment) {
	for i, c := range f.comments {
		if c.Review == reviewID && c.ID == commentID {
			return i, c
		}
	}
	return -1, nil
}

func (f *fakeCommentStore) Create(_ context.Context, reviewID, authorID int64, text string) (*model.Comment, error) {
	f.nextID++
	c := &model.Comment{ID: f.nextID, Review: reviewID, AuthorID: authorID, Text: text}
	f.comments = append(f.comments, c)
	cp := *c
	return &cp, nil
}

func (f *fakeCommentStore) Get(_ context.Context, reviewID, commentID int64) (*model.Comment, error) {
	if _, c := f.find(reviewID, commentID); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, errNoRows("comments")
}

func (f *fakeCommentStore) List(_ context.Context, reviewID int64, page model.Page) ([]model.Comment, int, error) {
	var matched []model.Comment
	for _, c := range f.comments {
		if c.Review == reviewID {
			matched = append(matched, *c)
		}
	}
	return window(matched, page), len(matched), nil
}

func (f *fakeCommentStore) Update(_ context.Context, reviewID, commentID int64, text *string) (*model.Comment, error) {
	_, c := f.find(reviewID, commentID)
	if c == nil {
		return nil, errNoRows("comments")
	}
	if text != nil {
		c.Text = *text
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, reviewID, commentID int64) error {
	i, c := f.find(reviewID, commentID)
	if c == nil {
		return errNoRows("comments")
	}
	f.comments = append(f.comments[:i], f.comments[i+1:]...)
	return nil
}

func newEnforcer(t *testing.T) *authz.Enforcer {
	t.Helper()
	e, err := authz.NewEnforcer()
	require.NoError(t, err)
	return e
}

func ptr[T any](v T) *T { return &v }
