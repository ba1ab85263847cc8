package middleware

import (
	"github.com/deppfellow/yamdb/internal/logger"
	"github.com/deppfellow/yamdb/internal/model"
	"github.com/deppfellow/yamdb/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Echo context keys.
const (
	UserKey     = "user"
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	LoggerKey   = "logger"
)

// ContextEnhancer stores a request-scoped logger carrying the request id,
// method, route, client ip and New Relic trace ids.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			setLogger(c, &contextLogger)
			return next(c)
		}
	}
}

// setLogger stores l in both the Echo context and the request context, so
// services that only see a context.Context log with request fields through
// zerolog.Ctx.
func setLogger(c echo.Context, l *zerolog.Logger) {
	c.Set(LoggerKey, l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// setUser records the authenticated user and adds its identity to the
// request logger.
func setUser(c echo.Context, u *model.User) {
	c.Set(UserKey, u)
	c.Set(UserIDKey, u.Username)
	c.Set(UserRoleKey, string(u.Role))

	l := GetLogger(c).With().
		Str("user_id", u.Username).
		Str("user_role", string(u.Role)).
		Logger()
	setLogger(c, &l)
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c echo.Context) *model.User {
	if u, ok := c.Get(UserKey).(*model.User); ok {
		return u
	}
	return nil
}

// GetUserID returns the authenticated username, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	l := zerolog.Nop()
	return &l
}
