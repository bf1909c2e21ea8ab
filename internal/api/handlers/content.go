package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// ContentStore defines the interface for content persistence operations.
type ContentStore interface {
	CreateContent(ctx context.Context, content *models.Content) error
	GetContentByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
	GetContentBySlug(ctx context.Context, slug string) (*models.Content, error)
	ListContent(ctx context.Context, status models.ContentStatus) ([]*models.Content, error)
	UpdateContent(ctx context.Context, content *models.Content) error
	DeleteContent(ctx context.Context, id uuid.UUID) error
}

// ScheduleRemover cancels pending schedules for a content entity. Deleting
// content must cancel its schedules so the engine never sees stale entries.
type ScheduleRemover interface {
	RemoveAllSchedules(ctx context.Context, contentID uuid.UUID) error
}

// ContentHandler handles content CRUD endpoints.
type ContentHandler struct {
	store     ContentStore
	schedules ScheduleRemover
	logger    zerolog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(store ContentStore, schedules ScheduleRemover, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		store:     store,
		schedules: schedules,
		logger:    logger.With().Str("component", "content_handler").Logger(),
	}
}

// RegisterRoutes registers content routes on the given router group.
func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	content := r.Group("/content")
	{
		content.GET("", h.List)
		content.POST("", h.Create)
		content.GET("/:id", h.Get)
		content.PUT("/:id", h.Update)
		content.DELETE("/:id", h.Delete)
		content.POST("/:id/publish", h.Publish)
		content.POST("/:id/unpublish", h.Unpublish)
	}
}

// CreateContentRequest is the request body for creating content.
type CreateContentRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Slug  string `json:"slug" binding:"required,min=1,max=255"`
	Body  string `json:"body"`
}

// UpdateContentRequest is the request body for updating content.
type UpdateContentRequest struct {
	Title    string     `json:"title,omitempty"`
	Slug     string     `json:"slug,omitempty"`
	Body     *string    `json:"body,omitempty"`
	Changes  string     `json:"changes,omitempty"`
	EditorID *uuid.UUID `json:"editor_id,omitempty"`
}

// List returns content entities, optionally filtered by status.
// GET /api/v1/content
func (h *ContentHandler) List(c *gin.Context) {
	status := models.ContentStatus(c.Query("status"))
	if status != "" && !models.IsValidContentStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	contents, err := h.store.ListContent(c.Request.Context(), status)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": contents})
}

// Get returns a content entity by ID.
// GET /api/v1/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	content, err := h.store.GetContentByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to get content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	c.JSON(http.StatusOK, content)
}

// Create creates a new draft content entity.
// POST /api/v1/content
func (h *ContentHandler) Create(c *gin.Context) {
	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	existing, err := h.store.GetContentBySlug(c.Request.Context(), req.Slug)
	if err != nil {
		h.logger.Error().Err(err).Str("slug", req.Slug).Msg("failed to check slug")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create content"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
		return
	}

	content := models.NewContent(req.Title, req.Slug, req.Body)

	if err := h.store.CreateContent(c.Request.Context(), content); err != nil {
		h.logger.Error().Err(err).Str("slug", req.Slug).Msg("failed to create content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create content"})
		return
	}

	h.logger.Info().
		Str("content_id", content.ID.String()).
		Str("slug", content.Slug).
		Msg("content created")

	c.JSON(http.StatusCreated, content)
}

// Update updates an existing content entity and records a revision.
// PUT /api/v1/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	content, err := h.store.GetContentByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to get content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	if content.Status == models.StatusArchived {
		c.JSON(http.StatusConflict, gin.H{"error": "archived content is not editable"})
		return
	}

	if req.Title != "" {
		content.Title = req.Title
	}
	if req.Slug != "" && req.Slug != content.Slug {
		other, err := h.store.GetContentBySlug(c.Request.Context(), req.Slug)
		if err != nil {
			h.logger.Error().Err(err).Str("slug", req.Slug).Msg("failed to check slug")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update content"})
			return
		}
		if other != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
			return
		}
		content.Slug = req.Slug
	}
	if req.Body != nil {
		content.Body = *req.Body
	}

	now := time.Now().UTC()
	changes := req.Changes
	if changes == "" {
		changes = "content updated"
	}
	content.AddRevision(now, changes, req.EditorID)
	content.UpdatedAt = now

	if err := h.store.UpdateContent(c.Request.Context(), content); err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to update content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update content"})
		return
	}

	h.logger.Info().Str("content_id", id.String()).Msg("content updated")
	c.JSON(http.StatusOK, content)
}

// Delete removes a content entity and cancels its pending schedules.
// DELETE /api/v1/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	content, err := h.store.GetContentByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to get content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	// Cancel schedules first so the engine never acts on deleted content.
	if err := h.schedules.RemoveAllSchedules(c.Request.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to remove schedules")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete content"})
		return
	}

	if err := h.store.DeleteContent(c.Request.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to delete content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete content"})
		return
	}

	h.logger.Info().Str("content_id", id.String()).Msg("content deleted")
	c.JSON(http.StatusOK, gin.H{"message": "content deleted"})
}

// Publish transitions content to published immediately.
// POST /api/v1/content/:id/publish
func (h *ContentHandler) Publish(c *gin.Context) {
	h.transition(c, models.ActionPublish)
}

// Unpublish transitions content back to draft immediately.
// POST /api/v1/content/:id/unpublish
func (h *ContentHandler) Unpublish(c *gin.Context) {
	h.transition(c, models.ActionUnpublish)
}

func (h *ContentHandler) transition(c *gin.Context, action models.ScheduleAction) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	content, err := h.store.GetContentByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to get content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	if content.Status == action.TargetStatus() {
		c.JSON(http.StatusOK, content)
		return
	}

	now := time.Now().UTC()
	if action == models.ActionPublish {
		content.Publish(now)
	} else {
		content.Unpublish(now)
	}
	content.AddRevision(now, "manual "+string(action), nil)

	if err := h.store.UpdateContent(c.Request.Context(), content); err != nil {
		h.logger.Error().Err(err).Str("content_id", id.String()).Msg("failed to update content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update content"})
		return
	}

	h.logger.Info().
		Str("content_id", id.String()).
		Str("action", string(action)).
		Msg("content transitioned")

	c.JSON(http.StatusOK, content)
}

// parseIDParam parses the :id path parameter, writing a 400 response on failure.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content ID"})
		return uuid.Nil, false
	}
	return id, true
}
