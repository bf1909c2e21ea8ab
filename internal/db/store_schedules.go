package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// Schedule methods

// GetAllSchedules returns every persisted schedule entry.
func (db *DB) GetAllSchedules(ctx context.Context) ([]*models.ScheduleEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, content_id, action, scheduled_at, COALESCE(note, ''), created_at
		FROM content_schedules
		ORDER BY scheduled_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var entries []*models.ScheduleEntry
	for rows.Next() {
		var entry models.ScheduleEntry
		var actionStr string
		err := rows.Scan(&entry.ID, &entry.ContentID, &actionStr, &entry.ScheduledAt, &entry.Note, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		entry.Action = models.ScheduleAction(actionStr)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// GetDueSchedules returns entries for the given action due at or before now,
// joined with their content entities. Content is nil for orphaned entries.
func (db *DB) GetDueSchedules(ctx context.Context, action models.ScheduleAction, now time.Time) ([]*models.DueSchedule, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT s.id, s.content_id, s.action, s.scheduled_at, COALESCE(s.note, ''), s.created_at,
		       c.id, c.title, c.slug, c.body, c.status, c.published_at, c.revisions, c.created_at, c.updated_at
		FROM content_schedules s
		LEFT JOIN contents c ON c.id = s.content_id
		WHERE s.action = $1 AND s.scheduled_at <= $2
		ORDER BY s.scheduled_at
	`, string(action), now)
	if err != nil {
		return nil, fmt.Errorf("query due schedules: %w", err)
	}
	defer rows.Close()

	var due []*models.DueSchedule
	for rows.Next() {
		var d models.DueSchedule
		var actionStr string
		var contentID *uuid.UUID
		var title, slug, body, statusStr *string
		var publishedAt *time.Time
		var revisions []byte
		var createdAt, updatedAt *time.Time

		err := rows.Scan(
			&d.Entry.ID, &d.Entry.ContentID, &actionStr, &d.Entry.ScheduledAt, &d.Entry.Note, &d.Entry.CreatedAt,
			&contentID, &title, &slug, &body, &statusStr, &publishedAt, &revisions, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan due schedule: %w", err)
		}
		d.Entry.Action = models.ScheduleAction(actionStr)

		if contentID != nil {
			content := &models.Content{
				ID:          *contentID,
				Title:       *title,
				Slug:        *slug,
				Body:        *body,
				Status:      models.ContentStatus(*statusStr),
				PublishedAt: publishedAt,
				CreatedAt:   *createdAt,
				UpdatedAt:   *updatedAt,
			}
			if err := content.SetRevisions(revisions); err != nil {
				return nil, fmt.Errorf("unmarshal revisions: %w", err)
			}
			d.Content = content
		}

		due = append(due, &d)
	}

	return due, rows.Err()
}

// GetScheduleByContentAndAction returns the entry for a (content, action)
// pair, or nil if none exists.
func (db *DB) GetScheduleByContentAndAction(ctx context.Context, contentID uuid.UUID, action models.ScheduleAction) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	var actionStr string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, content_id, action, scheduled_at, COALESCE(note, ''), created_at
		FROM content_schedules
		WHERE content_id = $1 AND action = $2
	`, contentID, string(action)).Scan(
		&entry.ID, &entry.ContentID, &actionStr, &entry.ScheduledAt, &entry.Note, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	entry.Action = models.ScheduleAction(actionStr)
	return &entry, nil
}

// ReplaceSchedule inserts the entry, replacing any existing entry for the same
// (content, action) pair. The uniqueness constraint conflict is resolved as a
// full replace, so callers never see a duplicate-key error.
func (db *DB) ReplaceSchedule(ctx context.Context, entry *models.ScheduleEntry) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO content_schedules (id, content_id, action, scheduled_at, note, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		ON CONFLICT ON CONSTRAINT content_schedules_content_action_key DO UPDATE
		SET id = EXCLUDED.id,
		    scheduled_at = EXCLUDED.scheduled_at,
		    note = EXCLUDED.note,
		    created_at = EXCLUDED.created_at
	`, entry.ID, entry.ContentID, string(entry.Action), entry.ScheduledAt, entry.Note, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("replace schedule: %w", err)
	}
	return nil
}

// UpdateScheduleTime changes the scheduled time of an existing entry in place.
func (db *DB) UpdateScheduleTime(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE content_schedules SET scheduled_at = $2 WHERE id = $1
	`, id, at)
	if err != nil {
		return fmt.Errorf("update schedule time: %w", err)
	}
	return nil
}

// DeleteSchedule removes a schedule entry by ID. Deleting a missing entry is
// not an error.
func (db *DB) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, "DELETE FROM content_schedules WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// DeleteSchedulesByContent removes all schedule entries for a content entity.
func (db *DB) DeleteSchedulesByContent(ctx context.Context, contentID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, "DELETE FROM content_schedules WHERE content_id = $1", contentID)
	if err != nil {
		return fmt.Errorf("delete schedules by content: %w", err)
	}
	return nil
}
