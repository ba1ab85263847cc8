package service

import (
	"context"

	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/model"
)

type titleStore interface {
	GetByID(ctx context.Context, id int64) (*model.Title, error)
	List(ctx context.Context, filter model.TitleFilter, page model.Page) ([]model.Title, int, error)
	Create(ctx context.Context, w model.TitleWrite) (*model.Title, error)
	Update(ctx context.Context, id int64, w model.TitleWrite) (*model.Title, error)
	Delete(ctx context.Context, id int64) error
}

type TitleService struct {
	repo     titleStore
	pageSize int
}

func NewTitleService(repo titleStore, pageSize int) *TitleService {
	return &TitleService{repo: repo, pageSize: pageSize}
}

func (s *TitleService) List(ctx context.Context, q *model.ListTitlesQuery) (*PageResult[model.Title], error) {
	page := model.NewPage(q.PageQuery, s.pageSize)
	items, total, err := s.repo.List(ctx, q.Filter(), page)
	return paginate(items, total, page, err)
}

func (s *TitleService) Get(ctx context.Context, id int64) (*model.Title, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a title. Category and genre slugs are resolved by the
// repository, which rejects unknown slugs with 400.
func (s *TitleService) Create(ctx context.Context, p *model.CreateTitlePayload) (*model.Title, error) {
	title, err := s.repo.Create(ctx, p.Write())
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventTitleCreated)
	return title, nil
}

func (s *TitleService) Update(ctx context.Context, p *model.UpdateTitlePayload) (*model.Title, error) {
	return s.repo.Update(ctx, p.ID, p.Write())
}

func (s *TitleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
