package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeMailer) {
	users := &fakeUserStore{}
	mailer := &fakeMailer{}
	logger := zerolog.Nop()

	svc := NewAuthService(users, mailer, fakeTokens{}, 8, &logger)
	svc.hashCost = bcrypt.MinCost
	return svc, users, mailer
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	return httpErr.Status
}

func TestSignUpCreatesUserAndSendsCode(t *testing.T) {
	svc, users, mailer := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "a@example.com", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, &model.SignUpResponse{Email: "a@example.com", Username: "alice"}, resp)

	require.Len(t, users.users, 1)
	assert.Equal(t, model.RoleUser, users.users[0].Role)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@example.com", mailer.sent[0].to)
	assert.Len(t, mailer.last(), 8)
	assert.Regexp(t, `^[0-9]+$`, mailer.last())

	// Only the hash is stored.
	assert.NotEqual(t, mailer.last(), users.users[0].ConfirmationCode)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[0].ConfirmationCode), []byte(mailer.last())))
}

func TestSignUpAgainResendsCode(t *testing.T) {
	svc, users, mailer := newTestAuthService()
	ctx := context.Background()
	p := &model.SignUpPayload{Email: "a@example.com", Username: "alice"}

	_, err := svc.SignUp(ctx, p)
	require.NoError(t, err)
	first := mailer.last()

	_, err = svc.SignUp(ctx, p)
	require.NoError(t, err)

	assert.Len(t, users.users, 1)
	require.Len(t, mailer.sent, 2)

	// The first code is no longer accepted once a new one was issued.
	if first != mailer.last() {
		_, err = svc.Token(ctx, &model.TokenPayload{Username: "alice", ConfirmationCode: first})
		assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	}
}

func TestSignUpConflicts(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "a@example.com", Username: "alice"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		payload   model.SignUpPayload
		wantField string
	}{
		{name: "username taken", payload: model.SignUpPayload{Email: "other@example.com", Username: "alice"}, wantField: "username"},
		{name: "email taken", payload: model.SignUpPayload{Email: "a@example.com", Username: "bob"}, wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, &tt.payload)

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, tt.wantField, httpErr.Errors[0].Field)
		})
	}
}

func TestSignUpMailerFailure(t *testing.T) {
	svc, _, mailer := newTestAuthService()
	mailer.err = errors.New("redis unavailable")

	_, err := svc.SignUp(context.Background(), &model.SignUpPayload{Email: "a@example.com", Username: "alice"})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestTokenExchange(t *testing.T) {
	svc, _, mailer := newTestAuthService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "a@example.com", Username: "alice"})
	require.NoError(t, err)
	code := mailer.last()

	_, err = svc.Token(ctx, &model.TokenPayload{Username: "alice", ConfirmationCode: "00000000x"})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	resp, err := svc.Token(ctx, &model.TokenPayload{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)
	assert.Equal(t, "token-1-alice-user", resp.Token)

	_, err = svc.Token(ctx, &model.TokenPayload{Username: "alice", ConfirmationCode: code})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err), "codes are single use")
}

func TestTokenUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Token(context.Background(), &model.TokenPayload{Username: "nobody", ConfirmationCode: "123"})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestTokenWithoutPendingCode(t *testing.T) {
	svc, users, _ := newTestAuthService()
	_, err := users.Create(context.Background(), &model.User{Username: "admin-made", Email: "m@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = svc.Token(context.Background(), &model.TokenPayload{Username: "admin-made", ConfirmationCode: "12345678"})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestGenerateCode(t *testing.T) {
	code, err := generateCode(12)
	require.NoError(t, err)
	assert.Len(t, code, 12)
	assert.Regexp(t, `^[0-9]{12}$`, code)
}

func TestSignUpLogsWithRequestLogger(t *testing.T) {
	svc, _, _ := newTestAuthService()

	var out bytes.Buffer
	requestLogger := zerolog.New(&out).With().Str("request_id", "req-1").Logger()
	ctx := requestLogger.WithContext(context.Background())

	_, err := svc.SignUp(ctx, &model.SignUpPayload{Email: "a@example.com", Username: "alice"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"request_id":"req-1"`)
	assert.Contains(t, out.String(), "confirmation code issued")
}
