package middleware

import (
	"time"

	"github.com/deppfellow/yamdb/internal/errs"
	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/deppfellow/yamdb/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles clients by IP.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// AuthLimiter guards the sign-up and token endpoints, which send email and
// compare confirmation codes.
func (r *RateLimitMiddleware) AuthLimiter() echo.MiddlewareFunc {
	return r.limiter(rate.Limit(r.server.Config.Server.AuthRateLimit), r.server.Config.Server.AuthRateBurst)
}

func (r *RateLimitMiddleware) limiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Could not identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Request was throttled. Try again later.")
		},
	})
}

// RecordRateLimitHit counts a rejected request in Prometheus and, when
// enabled, as a New Relic custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	metrics.RecordRateLimitHit(endpoint)

	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
