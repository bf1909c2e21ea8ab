package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/models"
	"github.com/inkwell-cms/inkwell/internal/scheduler"
)

// ScheduleManager defines the scheduling operations the handler exposes over
// HTTP. All schedule writes go through the manager so the in-memory index
// stays consistent with the store.
type ScheduleManager interface {
	UpdateSchedule(ctx context.Context, contentID uuid.UUID, at time.Time, action models.ScheduleAction, note string) (*models.ScheduleEntry, error)
	RemoveSchedule(ctx context.Context, contentID uuid.UUID, action models.ScheduleAction) error
	RemoveAllSchedules(ctx context.Context, contentID uuid.UUID) error
	GetContentSchedule(ctx context.Context, contentID uuid.UUID) (*models.ContentScheduleStatus, error)
}

// SchedulesHandler handles content scheduling HTTP endpoints.
type SchedulesHandler struct {
	manager ScheduleManager
	logger  zerolog.Logger
}

// NewSchedulesHandler creates a new SchedulesHandler.
func NewSchedulesHandler(manager ScheduleManager, logger zerolog.Logger) *SchedulesHandler {
	return &SchedulesHandler{
		manager: manager,
		logger:  logger.With().Str("component", "schedules_handler").Logger(),
	}
}

// RegisterRoutes registers schedule routes on the given router group.
func (h *SchedulesHandler) RegisterRoutes(r *gin.RouterGroup) {
	content := r.Group("/content/:id")
	{
		content.GET("/schedule", h.Get)
		content.POST("/schedule", h.Set)
		content.DELETE("/schedule", h.Remove)
	}
}

// SetScheduleRequest is the request body for scheduling a transition.
type SetScheduleRequest struct {
	Action models.ScheduleAction `json:"action" binding:"required"`
	Date   time.Time             `json:"date" binding:"required"`
	Note   string                `json:"note,omitempty"`
}

// Get returns the pending publish and unpublish schedules for a content entity.
// GET /api/v1/content/:id/schedule
func (h *SchedulesHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.manager.GetContentSchedule(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to get schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get schedule"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Set schedules a publish or unpublish transition for a content entity. An
// existing schedule for the same action is updated in place.
// POST /api/v1/content/:id/schedule
func (h *SchedulesHandler) Set(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	entry, err := h.manager.UpdateSchedule(c.Request.Context(), id, req.Date, req.Action, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidSchedule):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, scheduler.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		default:
			h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to set schedule")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set schedule"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Remove cancels pending schedules for a content entity. With an action query
// parameter only that action's schedule is cancelled; without one both are.
// DELETE /api/v1/content/:id/schedule?action=publish
func (h *SchedulesHandler) Remove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actionParam := c.Query("action")
	if actionParam == "" {
		if err := h.manager.RemoveAllSchedules(c.Request.Context(), id); err != nil {
			h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to remove schedules")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove schedules"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "schedules removed"})
		return
	}

	action := models.ScheduleAction(actionParam)
	if err := h.manager.RemoveSchedule(c.Request.Context(), id, action); err != nil {
		if errors.Is(err, scheduler.ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to remove schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "schedule removed"})
}
