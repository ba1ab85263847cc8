package service

import (
	"context"

	"github.com/deppfellow/yamdb/internal/authz"
	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/sqlerr"
)

type reviewStore interface {
	Create(ctx context.Context, titleID, authorID int64, text string, score int) (*model.Review, error)
	Get(ctx context.Context, titleID, reviewID int64) (*model.Review, error)
	ExistsByAuthor(ctx context.Context, titleID, authorID int64) (bool, error)
	List(ctx context.Context, titleID int64, page model.Page) ([]model.Review, int, error)
	Update(ctx context.Context, titleID, reviewID int64, text *string, score *int) (*model.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64) error
}

type titleChecker interface {
	Exists(ctx context.Context, id int64) error
}

// ownershipChecker decides whether actor may change an object it may or may
// not have authored.
type ownershipChecker interface {
	CanModify(actor *model.User, obj authz.Object, act authz.Action, authorID int64) bool
}

// ErrDuplicateReview is returned when an author reviews the same title twice.
var ErrDuplicateReview = errs.NewBadRequestError(
	"A user may leave only one review per title",
	true,
	errs.Code("REVIEW_ALREADY_EXISTS"),
	nil,
)

var errNotOwner = errs.NewForbiddenError("You do not have permission to perform this action.", true)

type ReviewService struct {
	reviews  reviewStore
	titles   titleChecker
	perms    ownershipChecker
	pageSize int
}

func NewReviewService(reviews reviewStore, titles titleChecker, perms ownershipChecker, pageSize int) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		titles:   titles,
		perms:    perms,
		pageSize: pageSize,
	}
}

func (s *ReviewService) List(ctx context.Context, q *model.ListReviewsQuery) (*PageResult[model.Review], error) {
	if err := s.titles.Exists(ctx, q.TitleID); err != nil {
		return nil, err
	}
	page := model.NewPage(q.PageQuery, s.pageSize)
	items, total, err := s.reviews.List(ctx, q.TitleID, page)
	return paginate(items, total, page, err)
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID int64) (*model.Review, error) {
	return s.reviews.Get(ctx, titleID, reviewID)
}

// Create stores author's review of a title. A second review of the same
// title is rejected up front; the unique constraint catches concurrent
// requests and is reported the same way.
func (s *ReviewService) Create(ctx context.Context, author *model.User, p *model.CreateReviewPayload) (*model.Review, error) {
	if err := s.titles.Exists(ctx, p.TitleID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByAuthor(ctx, p.TitleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.RecordEvent(metrics.EventReviewRejected)
		return nil, ErrDuplicateReview
	}

	review, err := s.reviews.Create(ctx, p.TitleID, author.ID, p.Text, p.Score)
	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
		metrics.RecordEvent(metrics.EventReviewRejected)
		return nil, ErrDuplicateReview
	}
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventReviewCreated)
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *model.User, p *model.UpdateReviewPayload) (*model.Review, error) {
	review, err := s.reviews.Get(ctx, p.TitleID, p.ReviewID)
	if err != nil {
		return nil, err
	}
	if !s.perms.CanModify(actor, authz.Reviews, authz.Update, review.AuthorID) {
		return nil, errNotOwner
	}
	if p.Text == nil && p.Score == nil {
		return review, nil
	}
	return s.reviews.Update(ctx, p.TitleID, p.ReviewID, p.Text, p.Score)
}

func (s *ReviewService) Delete(ctx context.Context, actor *model.User, titleID, reviewID int64) error {
	review, err := s.reviews.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !s.perms.CanModify(actor, authz.Reviews, authz.Delete, review.AuthorID) {
		return errNotOwner
	}
	return s.reviews.Delete(ctx, titleID, reviewID)
}
