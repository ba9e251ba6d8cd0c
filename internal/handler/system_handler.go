package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
)

// Pinger is satisfied by *sqlx.DB and adapters around the Redis client.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler exposes liveness, readiness and Prometheus endpoints.
type SystemHandler struct {
	metrics *service.MetricsService
	checks  map[string]Pinger
	started time.Time
}

// NewSystemHandler constructs the handler. Each named pinger is probed by
// Ready; a nil pinger is skipped.
func NewSystemHandler(metrics *service.MetricsService, checks map[string]Pinger) *SystemHandler {
	return &SystemHandler{metrics: metrics, checks: checks, started: time.Now()}
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Pings the database and, when enabled, Redis.
// @Tags System
// @Produce json
// @Success 200 {object} models.ReadinessReport
// @Failure 503 {object} models.ReadinessReport
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	report := models.ReadinessReport{
		Status:  "ready",
		Checks:  make(map[string]string, len(h.checks)),
		Metrics: h.metrics.Snapshot(),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checked: time.Now().UTC(),
	}

	status := http.StatusOK
	for name, pinger := range h.checks {
		if pinger == nil {
			continue
		}
		if err := pinger.PingContext(ctx); err != nil {
			report.Checks[name] = err.Error()
			report.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		report.Checks[name] = "ok"
	}

	c.JSON(status, report)
}

// Prometheus serves the metrics registry.
func (h *SystemHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
