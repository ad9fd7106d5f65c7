package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/erestaurant/internal/config"
	"github.com/deppfellow/erestaurant/internal/middleware"
	"github.com/deppfellow/erestaurant/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

type HealthHandler struct {
	env    string
	cfg    config.HealthChecksConfig
	checks map[string]Pinger
	nrApp  *newrelic.Application
}

// NewHealthHandler builds the health check handler. Only the checks named in
// observability.health_checks.checks are run.
func NewHealthHandler(s *server.Server, checks map[string]Pinger) *HealthHandler {
	h := &HealthHandler{
		env:    s.Config.Primary.Env,
		checks: checks,
	}
	if s.Config.Observability != nil {
		h.cfg = s.Config.Observability.HealthChecks
	}
	if s.LoggerService != nil {
		h.nrApp = s.LoggerService.GetApplication()
	}
	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth runs the configured dependency checks, each bounded by the
// configured timeout.
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.env,
		Checks:      make(map[string]checkResult),
	}

	if h.cfg.Enabled {
		for _, name := range h.cfg.Checks {
			pinger, ok := h.checks[name]
			if !ok {
				continue
			}

			result := h.runCheck(c.Request().Context(), name, pinger)
			response.Checks[name] = result

			if result.Error != "" {
				response.Status = "unhealthy"
				logger.Error().
					Str("check", name).
					Str("error", result.Error).
					Str("response_time", result.ResponseTime).
					Msg("health check failed")
			}
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		h.recordFailure("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runCheck(ctx context.Context, name string, pinger Pinger) checkResult {
	timeout := h.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checkStart := time.Now()
	err := pinger.Ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		h.recordFailure(name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return checkResult{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return checkResult{
		Status:       "healthy",
		ResponseTime: elapsed.String(),
	}
}

// recordFailure sends a HealthCheckError custom event when New Relic is
// configured.
func (h *HealthHandler) recordFailure(check string, attrs map[string]any) {
	if h.nrApp == nil {
		return
	}

	attrs["check_type"] = check
	attrs["operation"] = "health_check"
	h.nrApp.RecordCustomEvent("HealthCheckError", attrs)
}
