package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleAction is the transition a schedule entry triggers when due.
type ScheduleAction string

const (
	// ActionPublish transitions content to published.
	ActionPublish ScheduleAction = "publish"
	// ActionUnpublish transitions content back to draft.
	ActionUnpublish ScheduleAction = "unpublish"
)

// ScheduleActions returns both recognized actions.
func ScheduleActions() []ScheduleAction {
	return []ScheduleAction{ActionPublish, ActionUnpublish}
}

// IsValidScheduleAction checks if the action is one of the two recognized values.
func IsValidScheduleAction(a ScheduleAction) bool {
	return a == ActionPublish || a == ActionUnpublish
}

// TargetStatus returns the content status this action transitions to.
func (a ScheduleAction) TargetStatus() ContentStatus {
	if a == ActionPublish {
		return StatusPublished
	}
	return StatusDraft
}

// ScheduleEntry binds a content entity to an action and a target timestamp.
// At most one entry exists per (content, action) pair; the store enforces
// this with a uniqueness constraint.
type ScheduleEntry struct {
	ID          uuid.UUID      `json:"id"`
	ContentID   uuid.UUID      `json:"content_id"`
	Action      ScheduleAction `json:"action"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	Note        string         `json:"note,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewScheduleEntry creates a new ScheduleEntry for the given content and action.
func NewScheduleEntry(contentID uuid.UUID, action ScheduleAction, at time.Time, note string) *ScheduleEntry {
	return &ScheduleEntry{
		ID:          uuid.New(),
		ContentID:   contentID,
		Action:      action,
		ScheduledAt: at,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsDue returns true if the entry's scheduled time has arrived.
func (e *ScheduleEntry) IsDue(now time.Time) bool {
	return !e.ScheduledAt.After(now)
}

// DueSchedule is a due schedule entry joined with its content entity.
// Content is nil when the referenced content no longer exists (an orphaned
// entry, cleaned up by the engine).
type DueSchedule struct {
	Entry   ScheduleEntry
	Content *Content
}

// ScheduleSlot describes one pending schedule for a content entity.
type ScheduleSlot struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
	Note        string    `json:"note,omitempty"`
}

// ContentScheduleStatus reports the pending publish and unpublish schedules
// for a content entity. A nil slot means no schedule is pending for that action.
type ContentScheduleStatus struct {
	Publish   *ScheduleSlot `json:"publish"`
	Unpublish *ScheduleSlot `json:"unpublish"`
}
