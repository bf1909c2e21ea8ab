package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// Store defines the persistence operations the scheduler needs. The schedule
// store is the only writer of ScheduleEntry records; editing workflows go
// through the Manager, never through the store directly.
type Store interface {
	// GetAllSchedules returns every persisted schedule entry.
	GetAllSchedules(ctx context.Context) ([]*models.ScheduleEntry, error)

	// GetDueSchedules returns entries for the given action whose scheduled
	// time is at or before now, each joined with its content entity (nil
	// content for orphaned entries).
	GetDueSchedules(ctx context.Context, action models.ScheduleAction, now time.Time) ([]*models.DueSchedule, error)

	// GetScheduleByContentAndAction returns the entry for a (content, action)
	// pair, or nil if none exists.
	GetScheduleByContentAndAction(ctx context.Context, contentID uuid.UUID, action models.ScheduleAction) (*models.ScheduleEntry, error)

	// ReplaceSchedule inserts the entry, replacing any existing entry for the
	// same (content, action) pair. A uniqueness conflict is resolved as a
	// replace, never surfaced as a duplicate-key error.
	ReplaceSchedule(ctx context.Context, entry *models.ScheduleEntry) error

	// UpdateScheduleTime changes the scheduled time of an existing entry in
	// place, preserving its identifier.
	UpdateScheduleTime(ctx context.Context, id uuid.UUID, at time.Time) error

	// DeleteSchedule removes an entry by ID. Deleting a missing entry is not
	// an error.
	DeleteSchedule(ctx context.Context, id uuid.UUID) error

	// DeleteSchedulesByContent removes all entries for a content entity.
	DeleteSchedulesByContent(ctx context.Context, contentID uuid.UUID) error

	// GetContentByID returns the content entity, or nil if it does not exist.
	GetContentByID(ctx context.Context, id uuid.UUID) (*models.Content, error)

	// UpdateContent persists content mutations, including appended revision
	// history records.
	UpdateContent(ctx context.Context, content *models.Content) error
}

// Manager is the single entry point through which editing workflows create,
// update, query, and cancel content schedules. It keeps the schedule store and
// the in-memory index mutually consistent.
type Manager struct {
	store  Store
	index  *Index
	logger zerolog.Logger
}

// NewManager creates a new schedule Manager.
func NewManager(store Store, index *Index, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		index:  index,
		logger: logger.With().Str("component", "schedule_manager").Logger(),
	}
}

// ScheduleContent schedules a publish or unpublish transition for the given
// content at the given future time. Any pre-existing entry for the same
// (content, action) pair is replaced. Scheduling against content already in
// the target status is accepted; the engine resolves it as a no-op at tick
// time.
func (m *Manager) ScheduleContent(ctx context.Context, contentID uuid.UUID, at time.Time, action models.ScheduleAction, note string) (*models.ScheduleEntry, error) {
	if err := validateSchedule(at, action); err != nil {
		return nil, err
	}

	content, err := m.store.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}

	entry := models.NewScheduleEntry(contentID, action, at, note)
	if err := m.store.ReplaceSchedule(ctx, entry); err != nil {
		return nil, fmt.Errorf("replace schedule: %w", err)
	}

	m.index.Set(action, contentID, IndexEntry{ScheduleID: entry.ID, ScheduledAt: entry.ScheduledAt})

	m.logger.Info().
		Str("content_id", contentID.String()).
		Str("action", string(action)).
		Time("scheduled_at", at).
		Msg("content scheduled")

	return entry, nil
}

// UpdateSchedule changes the scheduled time of an existing (content, action)
// entry in place, preserving its identifier. If no entry exists it behaves as
// ScheduleContent.
func (m *Manager) UpdateSchedule(ctx context.Context, contentID uuid.UUID, at time.Time, action models.ScheduleAction, note string) (*models.ScheduleEntry, error) {
	if err := validateSchedule(at, action); err != nil {
		return nil, err
	}

	existing, err := m.store.GetScheduleByContentAndAction(ctx, contentID, action)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if existing == nil {
		return m.ScheduleContent(ctx, contentID, at, action, note)
	}

	if err := m.store.UpdateScheduleTime(ctx, existing.ID, at); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	existing.ScheduledAt = at

	m.index.Set(action, contentID, IndexEntry{ScheduleID: existing.ID, ScheduledAt: at})

	m.logger.Info().
		Str("content_id", contentID.String()).
		Str("action", string(action)).
		Time("scheduled_at", at).
		Msg("schedule updated")

	return existing, nil
}

// RemoveSchedule cancels the pending schedule for a (content, action) pair.
// Removing a schedule that does not exist is a no-op, not an error.
func (m *Manager) RemoveSchedule(ctx context.Context, contentID uuid.UUID, action models.ScheduleAction) error {
	if !models.IsValidScheduleAction(action) {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidSchedule, action)
	}

	entry, err := m.store.GetScheduleByContentAndAction(ctx, contentID, action)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	if entry == nil {
		m.index.Remove(action, contentID)
		return nil
	}

	if err := m.store.DeleteSchedule(ctx, entry.ID); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	m.index.Remove(action, contentID)

	m.logger.Info().
		Str("content_id", contentID.String()).
		Str("action", string(action)).
		Msg("schedule removed")

	return nil
}

// RemoveAllSchedules cancels both the publish and unpublish schedules for a
// content entity, typically ahead of content deletion.
func (m *Manager) RemoveAllSchedules(ctx context.Context, contentID uuid.UUID) error {
	if err := m.store.DeleteSchedulesByContent(ctx, contentID); err != nil {
		return fmt.Errorf("delete schedules: %w", err)
	}
	m.index.RemoveContent(contentID)

	m.logger.Info().
		Str("content_id", contentID.String()).
		Msg("all schedules removed")

	return nil
}

// GetContentSchedule returns the pending publish and unpublish schedules for a
// content entity. It queries the store rather than the index so callers always
// read their own writes.
func (m *Manager) GetContentSchedule(ctx context.Context, contentID uuid.UUID) (*models.ContentScheduleStatus, error) {
	status := &models.ContentScheduleStatus{}

	for _, action := range models.ScheduleActions() {
		entry, err := m.store.GetScheduleByContentAndAction(ctx, contentID, action)
		if err != nil {
			return nil, fmt.Errorf("get %s schedule: %w", action, err)
		}
		if entry == nil {
			continue
		}

		slot := &models.ScheduleSlot{
			ScheduledAt: entry.ScheduledAt,
			CreatedAt:   entry.CreatedAt,
			Note:        entry.Note,
		}
		if action == models.ActionPublish {
			status.Publish = slot
		} else {
			status.Unpublish = slot
		}
	}

	return status, nil
}

// validateSchedule checks that the action is recognized and the time is
// strictly in the future.
func validateSchedule(at time.Time, action models.ScheduleAction) error {
	if !models.IsValidScheduleAction(action) {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidSchedule, action)
	}
	if !at.After(time.Now()) {
		return fmt.Errorf("%w: scheduled time must be in the future", ErrInvalidSchedule)
	}
	return nil
}
