package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/core/ports"
)

const healthTimeout = 3 * time.Second

// Dependency is a named backing service probed by the health endpoint.
type Dependency struct {
	Name   string
	Pinger ports.Pinger
}

// HealthHandler handles GET /api/health. It reports ok only when every
// dependency answers a ping. Failure causes are logged, not returned.
type HealthHandler struct {
	deps []Dependency
	log  zerolog.Logger
}

func NewHealthHandler(log zerolog.Logger, deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, log: log}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type healthResponse struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Health reports service and dependency status.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true

	for _, d := range h.deps {
		if err := d.Pinger.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", d.Name).Msg("health check failed")
			deps[d.Name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[d.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, healthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Dependencies: deps,
	})
}
