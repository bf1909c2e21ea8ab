package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/scheduler"
)

// MetricsStore defines the interface for database health data.
type MetricsStore interface {
	Ping(ctx context.Context) error
	Health() map[string]any
}

// EngineStats exposes scheduler engine counters.
type EngineStats interface {
	Stats() scheduler.Stats
}

// PendingCounter reports the number of pending schedule entries.
type PendingCounter interface {
	Len() int
}

// MetricsHandler handles the Prometheus-compatible metrics endpoint.
type MetricsHandler struct {
	db      MetricsStore
	engine  EngineStats
	pending PendingCounter
	logger  zerolog.Logger
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(db MetricsStore, engine EngineStats, pending PendingCounter, logger zerolog.Logger) *MetricsHandler {
	return &MetricsHandler{
		db:      db,
		engine:  engine,
		pending: pending,
		logger:  logger.With().Str("component", "metrics_handler").Logger(),
	}
}

// RegisterPublicRoutes registers the metrics route on the engine root.
func (h *MetricsHandler) RegisterPublicRoutes(r *gin.Engine) {
	r.GET("/metrics", h.Metrics)
}

// Metrics returns metrics in Prometheus exposition format.
// GET /metrics
func (h *MetricsHandler) Metrics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var sb strings.Builder

	sb.WriteString("# HELP inkwell_up Server health status (1 = healthy, 0 = unhealthy)\n")
	sb.WriteString("# TYPE inkwell_up gauge\n")
	dbHealthy := 1
	if err := h.db.Ping(ctx); err != nil {
		dbHealthy = 0
		h.logger.Warn().Err(err).Msg("database ping failed for metrics")
	}
	sb.WriteString(fmt.Sprintf("inkwell_up{component=\"database\"} %d\n", dbHealthy))
	sb.WriteString("\n")

	poolStats := h.db.Health()
	sb.WriteString("# HELP inkwell_db_connections_total Total number of connections in the pool\n")
	sb.WriteString("# TYPE inkwell_db_connections_total gauge\n")
	if v, ok := poolStats["total_conns"].(int32); ok {
		sb.WriteString(fmt.Sprintf("inkwell_db_connections_total %d\n", v))
	}
	sb.WriteString("\n")

	sb.WriteString("# HELP inkwell_db_connections_idle Number of idle connections\n")
	sb.WriteString("# TYPE inkwell_db_connections_idle gauge\n")
	if v, ok := poolStats["idle_conns"].(int32); ok {
		sb.WriteString(fmt.Sprintf("inkwell_db_connections_idle %d\n", v))
	}
	sb.WriteString("\n")

	stats := h.engine.Stats()

	sb.WriteString("# HELP inkwell_scheduler_ticks_total Scheduler ticks executed\n")
	sb.WriteString("# TYPE inkwell_scheduler_ticks_total counter\n")
	sb.WriteString(fmt.Sprintf("inkwell_scheduler_ticks_total %d\n", stats.Ticks))
	sb.WriteString("\n")

	sb.WriteString("# HELP inkwell_scheduler_transitions_total Content transitions applied by the scheduler\n")
	sb.WriteString("# TYPE inkwell_scheduler_transitions_total counter\n")
	sb.WriteString(fmt.Sprintf("inkwell_scheduler_transitions_total{action=\"publish\"} %d\n", stats.Published))
	sb.WriteString(fmt.Sprintf("inkwell_scheduler_transitions_total{action=\"unpublish\"} %d\n", stats.Unpublished))
	sb.WriteString("\n")

	sb.WriteString("# HELP inkwell_scheduler_orphans_removed_total Orphaned schedule entries removed\n")
	sb.WriteString("# TYPE inkwell_scheduler_orphans_removed_total counter\n")
	sb.WriteString(fmt.Sprintf("inkwell_scheduler_orphans_removed_total %d\n", stats.OrphansRemoved))
	sb.WriteString("\n")

	sb.WriteString("# HELP inkwell_scheduler_redundant_dropped_total Redundant schedule entries dropped without a transition\n")
	sb.WriteString("# TYPE inkwell_scheduler_redundant_dropped_total counter\n")
	sb.WriteString(fmt.Sprintf("inkwell_scheduler_redundant_dropped_total %d\n", stats.RedundantDropped))
	sb.WriteString("\n")

	sb.WriteString("# HELP inkwell_scheduler_failures_total Failed due-entry queries and entry applications\n")
	sb.WriteString("# TYPE inkwell_scheduler_failures_total counter\n")
	sb.WriteString(fmt.Sprintf("inkwell_scheduler_failures_total %d\n", stats.Failures))
	sb.WriteString("\n")

	sb.WriteString("# HELP inkwell_schedules_pending Pending schedule entries in the index\n")
	sb.WriteString("# TYPE inkwell_schedules_pending gauge\n")
	sb.WriteString(fmt.Sprintf("inkwell_schedules_pending %d\n", h.pending.Len()))

	c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(sb.String()))
}
