package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/yamdb/internal/middleware"
	"github.com/deppfellow/yamdb/internal/server"
	"github.com/labstack/echo/v4"
)

// healthProbe checks one dependency. A failing required probe makes the
// service unhealthy (503); an optional one only degrades it.
type healthProbe struct {
	name     string
	required bool
	check    func(ctx context.Context) error
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	probes []healthProbe
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	var probes []healthProbe

	obs := s.Config.Observability
	if obs.HealthCheckEnabled("database") && s.DB != nil {
		probes = append(probes, healthProbe{
			name:     "database",
			required: true,
			check:    s.DB.Pool.Ping,
		})
	}
	// Redis only backs the email queue: reads keep working without it.
	if obs.HealthCheckEnabled("redis") && s.Redis != nil {
		probes = append(probes, healthProbe{
			name: "redis",
			check: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			},
		})
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		probes:  probes,
	}
}

// CheckHealth returns 200 when every required dependency answers, 503
// otherwise, with per-dependency results.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.probes))
	status := "healthy"

	for _, probe := range h.probes {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
		probeStart := time.Now()
		err := probe.check(ctx)
		elapsed := time.Since(probeStart)
		cancel()

		if err == nil {
			checks[probe.name] = map[string]interface{}{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}
			logger.Debug().Str("check", probe.name).Dur("response_time", elapsed).Msg("health check passed")
			continue
		}

		checks[probe.name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}
		switch {
		case probe.required:
			status = "unhealthy"
		case status == "healthy":
			status = "degraded"
		}

		logger.Error().
			Err(err).
			Str("check", probe.name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(probe.name, elapsed, err)
	}

	response := map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	if err := c.JSON(code, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
