package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentStatus represents the publication state of a content entity.
type ContentStatus string

const (
	// StatusDraft is the initial state; content is not publicly visible.
	StatusDraft ContentStatus = "draft"
	// StatusPublished means the content is live.
	StatusPublished ContentStatus = "published"
	// StatusArchived means the content has been retired and is no longer editable.
	StatusArchived ContentStatus = "archived"
)

// ValidContentStatuses returns all valid content statuses.
func ValidContentStatuses() []ContentStatus {
	return []ContentStatus{StatusDraft, StatusPublished, StatusArchived}
}

// IsValidContentStatus checks if the status is one of the recognized values.
func IsValidContentStatus(s ContentStatus) bool {
	for _, valid := range ValidContentStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Revision is a single entry in a content's revision history.
type Revision struct {
	ChangedAt time.Time  `json:"changed_at"`
	Changes   string     `json:"changes"`
	EditorID  *uuid.UUID `json:"editor_id,omitempty"`
}

// Content represents a content entity (article, page, etc.).
type Content struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Body        string        `json:"body"`
	Status      ContentStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	Revisions   []Revision    `json:"revisions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewContent creates a new draft Content with the given details.
func NewContent(title, slug, body string) *Content {
	now := time.Now().UTC()
	return &Content{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Body:      body,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Publish transitions the content to published at the given time.
// PublishedAt is set on every publish; it records the most recent one.
func (c *Content) Publish(at time.Time) {
	c.Status = StatusPublished
	c.PublishedAt = &at
	c.UpdatedAt = at
}

// Unpublish transitions the content back to draft.
// PublishedAt is deliberately left intact: a non-nil PublishedAt means the
// content has been published at least once.
func (c *Content) Unpublish(at time.Time) {
	c.Status = StatusDraft
	c.UpdatedAt = at
}

// IsPublished returns true if the content is currently published.
func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}

// AddRevision appends a revision record to the content's history.
func (c *Content) AddRevision(at time.Time, changes string, editorID *uuid.UUID) {
	c.Revisions = append(c.Revisions, Revision{
		ChangedAt: at,
		Changes:   changes,
		EditorID:  editorID,
	})
}

// TrimRevisions keeps only the most recent limit revision records.
// A limit of zero or less means the history is unbounded.
func (c *Content) TrimRevisions(limit int) {
	if limit <= 0 || len(c.Revisions) <= limit {
		return
	}
	c.Revisions = c.Revisions[len(c.Revisions)-limit:]
}

// SetRevisions sets the revision history from JSON bytes.
func (c *Content) SetRevisions(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &c.Revisions)
}

// RevisionsJSON returns the revision history as JSON bytes for database storage.
func (c *Content) RevisionsJSON() ([]byte, error) {
	if c.Revisions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Revisions)
}
