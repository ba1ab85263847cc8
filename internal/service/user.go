package service

import (
	"context"

	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/model"
)

type userStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, search string, page model.Page) ([]model.User, int, error)
	Update(ctx context.Context, id int64, upd model.UserUpdate) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

// UserService covers admin account management and the caller's own profile.
type UserService struct {
	repo     userStore
	pageSize int
}

func NewUserService(repo userStore, pageSize int) *UserService {
	return &UserService{repo: repo, pageSize: pageSize}
}

func (s *UserService) List(ctx context.Context, q *model.ListUsersQuery) (*PageResult[model.User], error) {
	page := model.NewPage(q.PageQuery, s.pageSize)
	items, total, err := s.repo.List(ctx, q.Search, page)
	return paginate(items, total, page, err)
}

// Create adds an account without a confirmation code. The owner obtains
// one by signing up with the same username and email.
func (s *UserService) Create(ctx context.Context, p *model.CreateUserPayload) (*model.User, error) {
	user, err := s.repo.Create(ctx, &model.User{
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Bio:       p.Bio,
		Role:      p.Role,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventUserCreated)
	return user, nil
}

// GetByID loads the account behind an access token.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) Update(ctx context.Context, p *model.UpdateUserPayload) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, p.Lookup)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, user.ID, model.UserUpdate{
		UserProfileFields: p.UserProfileFields,
		Role:              p.Role,
	})
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.repo.DeleteByUsername(ctx, username)
}

// UpdateMe edits the caller's profile. The role never changes here.
func (s *UserService) UpdateMe(ctx context.Context, actor *model.User, p *model.UpdateMePayload) (*model.User, error) {
	return s.repo.Update(ctx, actor.ID, model.UserUpdate{
		UserProfileFields: p.UserProfileFields,
	})
}
