package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deppfellow/yamdb/internal/authz"
	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/lib/token"
	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const bearerPrefix = "Bearer "

// TokenValidator verifies access tokens.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// UserLookup loads the account a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// PermissionChecker answers role permission questions.
type PermissionChecker interface {
	Can(role model.Role, obj authz.Object, act authz.Action) bool
}

// AuthMiddleware authenticates bearer tokens and enforces role permissions.
type AuthMiddleware struct {
	logger *zerolog.Logger
	tokens TokenValidator
	users  UserLookup
	perms  PermissionChecker
}

func NewAuthMiddleware(logger *zerolog.Logger, tokens TokenValidator, users UserLookup, perms PermissionChecker) *AuthMiddleware {
	return &AuthMiddleware{
		logger: logger,
		tokens: tokens,
		users:  users,
		perms:  perms,
	}
}

// AuthenticateAPI runs Authenticate for API paths only. Install it on the
// router, not on a group: a group with middleware turns 405 into 404.
func (auth *AuthMiddleware) AuthenticateAPI() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		authenticated := auth.Authenticate(next)
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().URL.Path, APIPrefix) {
				return next(c)
			}
			return authenticated(c)
		}
	}
}

// Authenticate resolves the caller from an "Authorization: Bearer <token>"
// header. Requests without the header continue as anonymous; a malformed or
// invalid token, or one whose user no longer exists, is rejected with 401.
//
// The user is reloaded on every request so role changes and deletions take
// effect before the token expires.
func (auth *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}

		start := time.Now()
		logger := GetLogger(c)

		if !strings.HasPrefix(header, bearerPrefix) {
			metrics.RecordEvent(metrics.EventTokenRejected)
			return errs.NewUnauthorizedError("Authorization header must use the Bearer scheme", true)
		}

		claims, err := auth.tokens.Validate(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			metrics.RecordEvent(metrics.EventTokenRejected)
			logger.Warn().
				Err(err).
				Str("function", "Authenticate").
				Dur("duration", time.Since(start)).
				Msg("token validation failed")
			return errs.NewUnauthorizedError("Given token not valid for any token type", true)
		}

		userID, err := claims.UserID()
		if err != nil {
			metrics.RecordEvent(metrics.EventTokenRejected)
			return errs.NewUnauthorizedError("Token contained no recognizable user identification", true)
		}

		user, err := auth.users.GetByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				metrics.RecordEvent(metrics.EventTokenRejected)
				return errs.NewUnauthorizedError("User not found", true)
			}
			return err
		}

		setUser(c, user)

		GetLogger(c).Debug().
			Str("function", "Authenticate").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequireAuth rejects anonymous requests with 401.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUser(c) == nil {
			return errs.NewUnauthorizedError("Authentication credentials were not provided.", true)
		}
		return next(c)
	}
}

// RequirePermission lets the request through only when the caller's role
// may perform act on obj. Anonymous callers get 401, authenticated callers
// without the permission get 403.
//
// Routes guarded by an ":own" action still need an authorship check in the
// service layer.
func (auth *AuthMiddleware) RequirePermission(obj authz.Object, act authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetUser(c)
			if auth.perms.Can(model.RoleOf(user), obj, act) {
				return next(c)
			}

			if user == nil {
				return errs.NewUnauthorizedError("Authentication credentials were not provided.", true)
			}

			metrics.RecordEvent(metrics.EventPermissionDenied)
			GetLogger(c).Warn().
				Str("object", string(obj)).
				Str("action", string(act)).
				Msg("permission denied")

			return errs.NewForbiddenError("You do not have permission to perform this action.", true)
		}
	}
}
