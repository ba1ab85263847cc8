package service

import (
	"context"

	"github.com/deppfellow/yamdb/internal/authz"
	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/model"
)

type commentStore interface {
	Create(ctx context.Context, reviewID, authorID int64, text string) (*model.Comment, error)
	Get(ctx context.Context, reviewID, commentID int64) (*model.Comment, error)
	List(ctx context.Context, reviewID int64, page model.Page) ([]model.Comment, int, error)
	Update(ctx context.Context, reviewID, commentID int64, text *string) (*model.Comment, error)
	Delete(ctx context.Context, reviewID, commentID int64) error
}

// reviewGetter resolves the review a comment route addresses, which also
// checks that the review belongs to the title in the path.
type reviewGetter interface {
	Get(ctx context.Context, titleID, reviewID int64) (*model.Review, error)
}

type CommentService struct {
	comments commentStore
	reviews  reviewGetter
	perms    ownershipChecker
	pageSize int
}

func NewCommentService(comments commentStore, reviews reviewGetter, perms ownershipChecker, pageSize int) *CommentService {
	return &CommentService{
		comments: comments,
		reviews:  reviews,
		perms:    perms,
		pageSize: pageSize,
	}
}

func (s *CommentService) List(ctx context.Context, q *model.ListCommentsQuery) (*PageResult[model.Comment], error) {
	if _, err := s.reviews.Get(ctx, q.TitleID, q.ReviewID); err != nil {
		return nil, err
	}
	page := model.NewPage(q.PageQuery, s.pageSize)
	items, total, err := s.comments.List(ctx, q.ReviewID, page)
	return paginate(items, total, page, err)
}

func (s *CommentService) Get(ctx context.Context, p *model.CommentLookupPayload) (*model.Comment, error) {
	if _, err := s.reviews.Get(ctx, p.TitleID, p.ReviewID); err != nil {
		return nil, err
	}
	return s.comments.Get(ctx, p.ReviewID, p.CommentID)
}

func (s *CommentService) Create(ctx context.Context, author *model.User, p *model.CreateCommentPayload) (*model.Comment, error) {
	if _, err := s.reviews.Get(ctx, p.TitleID, p.ReviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Create(ctx, p.ReviewID, author.ID, p.Text)
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventCommentCreated)
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *model.User, p *model.UpdateCommentPayload) (*model.Comment, error) {
	comment, err := s.Get(ctx, &model.CommentLookupPayload{TitleID: p.TitleID, ReviewID: p.ReviewID, CommentID: p.CommentID})
	if err != nil {
		return nil, err
	}
	if !s.perms.CanModify(actor, authz.Comments, authz.Update, comment.AuthorID) {
		return nil, errNotOwner
	}
	if p.Text == nil {
		return comment, nil
	}
	return s.comments.Update(ctx, p.ReviewID, p.CommentID, p.Text)
}

func (s *CommentService) Delete(ctx context.Context, actor *model.User, p *model.CommentLookupPayload) error {
	comment, err := s.Get(ctx, p)
	if err != nil {
		return err
	}
	if !s.perms.CanModify(actor, authz.Comments, authz.Delete, comment.AuthorID) {
		return errNotOwner
	}
	return s.comments.Delete(ctx, p.ReviewID, p.CommentID)
}
