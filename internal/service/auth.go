package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type authUserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) ([]model.User, error)
	SetConfirmationCode(ctx context.Context, id int64, hash string) error
	ConsumeConfirmationCode(ctx context.Context, id int64, hash string) (bool, error)
}

// codeMailer delivers confirmation codes, normally by enqueueing a job.
type codeMailer interface {
	EnqueueConfirmationCode(ctx context.Context, to, username, code string) error
}

type tokenIssuer interface {
	Generate(userID int64, username, role string) (string, error)
}

// ErrInvalidConfirmationCode covers a wrong, already used or never issued
// confirmation code.
var ErrInvalidConfirmationCode = errs.NewBadRequestError(
	"Invalid confirmation code",
	true,
	errs.Code("INVALID_CONFIRMATION_CODE"),
	[]errs.FieldError{{Field: "confirmation_code", Error: "is invalid"}},
)

// AuthService runs the sign-up and token exchange flow.
type AuthService struct {
	users      authUserStore
	mailer     codeMailer
	tokens     tokenIssuer
	codeLength int
	hashCost   int
	logger     *zerolog.Logger
}

func NewAuthService(users authUserStore, mailer codeMailer, tokens tokenIssuer, codeLength int, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		mailer:     mailer,
		tokens:     tokens,
		codeLength: codeLength,
		hashCost:   bcrypt.DefaultCost,
		logger:     logger,
	}
}

// SignUp registers the account if needed and emails it a fresh
// confirmation code.
//
// Signing up again with the same username and email re-sends a new code,
// which invalidates the previous one. A username or email belonging to a
// different account is rejected.
func (s *AuthService) SignUp(ctx context.Context, p *model.SignUpPayload) (*model.SignUpResponse, error) {
	matches, err := s.users.FindByUsernameOrEmail(ctx, p.Username, p.Email)
	if err != nil {
		return nil, err
	}

	var user *model.User
	var conflicts []errs.FieldError
	for i := range matches {
		m := &matches[i]
		switch {
		case m.Username == p.Username && m.Email == p.Email:
			user = m
		case m.Username == p.Username:
			conflicts = append(conflicts, errs.FieldError{Field: "username", Error: "is already taken"})
		default:
			conflicts = append(conflicts, errs.FieldError{Field: "email", Error: "is already registered"})
		}
	}
	if len(conflicts) > 0 {
		return nil, errs.NewBadRequestError(
			"A user with this username or email already exists",
			true,
			errs.Code("USER_ALREADY_EXISTS"),
			conflicts,
		)
	}

	event := metrics.EventCodeResent
	if user == nil {
		user, err = s.users.Create(ctx, &model.User{
			Username: p.Username,
			Email:    p.Email,
			Role:     model.RoleUser,
		})
		if err != nil {
			return nil, err
		}
		event = metrics.EventSignUp
	}

	if err := s.sendCode(ctx, user); err != nil {
		return nil, err
	}
	metrics.RecordEvent(event)

	return &model.SignUpResponse{Email: user.Email, Username: user.Username}, nil
}

func (s *AuthService) sendCode(ctx context.Context, user *model.User) error {
	code, err := generateCode(s.codeLength)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash confirmation code: %w", err)
	}

	if err := s.users.SetConfirmationCode(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	if err := s.mailer.EnqueueConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		return fmt.Errorf("failed to send confirmation code: %w", err)
	}

	loggerFor(ctx, s.logger).Info().
		Str("username", user.Username).
		Msg("confirmation code issued")
	return nil
}

// Token exchanges a confirmation code for an access token. The code is
// consumed: a second exchange of the same code fails.
func (s *AuthService) Token(ctx context.Context, p *model.TokenPayload) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}

	if user.ConfirmationCode == "" {
		metrics.RecordEvent(metrics.EventTokenRejected)
		return nil, ErrInvalidConfirmationCode
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCode), []byte(strings.TrimSpace(p.ConfirmationCode)))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		metrics.RecordEvent(metrics.EventTokenRejected)
		return nil, ErrInvalidConfirmationCode
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compare confirmation code: %w", err)
	}

	consumed, err := s.users.ConsumeConfirmationCode(ctx, user.ID, user.ConfirmationCode)
	if err != nil {
		return nil, err
	}
	if !consumed {
		metrics.RecordEvent(metrics.EventTokenRejected)
		return nil, ErrInvalidConfirmationCode
	}

	tok, err := s.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	metrics.RecordEvent(metrics.EventTokenIssued)

	return &model.TokenResponse{Token: tok}, nil
}

// generateCode returns n random decimal digits.
func generateCode(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)

	ten := big.NewInt(10)
	for range n {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
