package service

import (
	"fmt"
	"time"

	"github.com/deppfellow/yamdb/internal/authz"
	"github.com/deppfellow/yamdb/internal/lib/job"
	"github.com/deppfellow/yamdb/internal/lib/token"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/repository"
	"github.com/deppfellow/yamdb/internal/server"
)

// Services is a container that groups every business service, plus the
// token manager and permission enforcer the auth middleware shares.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Categories *CatalogService[model.Category]
	Genres     *CatalogService[model.Genre]
	Titles     *TitleService
	Reviews    *ReviewService
	Comments   *CommentService

	Tokens *token.Manager
	Authz  *authz.Enforcer
	Job    *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tokens, err := token.NewManager(s.Config.Auth.SecretKey, time.Duration(s.Config.Auth.TokenTTL)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}

	pageSize := s.Config.Pagination.PageSize

	return &Services{
		Auth:       NewAuthService(repos.Users, s.Job, tokens, s.Config.Auth.CodeLength, s.Logger),
		Users:      NewUserService(repos.Users, pageSize),
		Categories: NewCatalogService[model.Category](repos.Categories, pageSize),
		Genres:     NewCatalogService[model.Genre](repos.Genres, pageSize),
		Titles:     NewTitleService(repos.Titles, pageSize),
		Reviews:    NewReviewService(repos.Reviews, repos.Titles, enforcer, pageSize),
		Comments:   NewCommentService(repos.Comments, repos.Reviews, enforcer, pageSize),
		Tokens:     tokens,
		Authz:      enforcer,
		Job:        s.Job,
	}, nil
}
