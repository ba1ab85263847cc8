package middleware

import (
	"time"

	"github.com/deppfellow/yamdb/internal/metrics"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records Prometheus request metrics.
type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

// Record observes the route template, method, final status and latency of
// every request.
func (m *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				status = statusFor(err)
			}
			metrics.RecordAPIRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}
