package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/scheduler"
)

type mockMetricsStore struct {
	pingErr error
}

func (m *mockMetricsStore) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockMetricsStore) Health() map[string]any {
	return map[string]any{
		"total_conns": int32(5),
		"idle_conns":  int32(3),
	}
}

type mockEngineStats struct {
	stats scheduler.Stats
}

func (m *mockEngineStats) Stats() scheduler.Stats {
	return m.stats
}

type mockPendingCounter struct {
	n int
}

func (m *mockPendingCounter) Len() int {
	return m.n
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	engine := &mockEngineStats{stats: scheduler.Stats{Ticks: 7, Published: 3, Unpublished: 1, OrphansRemoved: 2}}
	handler := NewMetricsHandler(&mockMetricsStore{}, engine, &mockPendingCounter{n: 4}, zerolog.Nop())
	handler.RegisterPublicRoutes(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		"inkwell_up{component=\"database\"} 1",
		"inkwell_scheduler_ticks_total 7",
		"inkwell_scheduler_transitions_total{action=\"publish\"} 3",
		"inkwell_scheduler_transitions_total{action=\"unpublish\"} 1",
		"inkwell_scheduler_orphans_removed_total 2",
		"inkwell_schedules_pending 4",
		"inkwell_db_connections_total 5",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q, got:\n%s", want, body)
		}
	}
}
