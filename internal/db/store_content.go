package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// Content methods

// CreateContent inserts a new content entity.
func (db *DB) CreateContent(ctx context.Context, content *models.Content) error {
	revisions, err := content.RevisionsJSON()
	if err != nil {
		return fmt.Errorf("marshal revisions: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO contents (id, title, slug, body, status, published_at, revisions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, content.ID, content.Title, content.Slug, content.Body, string(content.Status),
		content.PublishedAt, revisions, content.CreatedAt, content.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create content: %w", err)
	}
	return nil
}

// GetContentByID returns a content entity by ID, or nil if it does not exist.
func (db *DB) GetContentByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	var statusStr string
	var revisions []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT id, title, slug, body, status, published_at, revisions, created_at, updated_at
		FROM contents
		WHERE id = $1
	`, id).Scan(
		&content.ID, &content.Title, &content.Slug, &content.Body, &statusStr,
		&content.PublishedAt, &revisions, &content.CreatedAt, &content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get content by ID: %w", err)
	}

	content.Status = models.ContentStatus(statusStr)
	if err := content.SetRevisions(revisions); err != nil {
		return nil, fmt.Errorf("unmarshal revisions: %w", err)
	}
	return &content, nil
}

// GetContentBySlug returns a content entity by slug, or nil if it does not exist.
func (db *DB) GetContentBySlug(ctx context.Context, slug string) (*models.Content, error) {
	var content models.Content
	var statusStr string
	var revisions []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT id, title, slug, body, status, published_at, revisions, created_at, updated_at
		FROM contents
		WHERE slug = $1
	`, slug).Scan(
		&content.ID, &content.Title, &content.Slug, &content.Body, &statusStr,
		&content.PublishedAt, &revisions, &content.CreatedAt, &content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get content by slug: %w", err)
	}

	content.Status = models.ContentStatus(statusStr)
	if err := content.SetRevisions(revisions); err != nil {
		return nil, fmt.Errorf("unmarshal revisions: %w", err)
	}
	return &content, nil
}

// ListContent returns all content entities, optionally filtered by status,
// most recently updated first.
func (db *DB) ListContent(ctx context.Context, status models.ContentStatus) ([]*models.Content, error) {
	query := `
		SELECT id, title, slug, body, status, published_at, revisions, created_at, updated_at
		FROM contents
	`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, string(status))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []*models.Content
	for rows.Next() {
		var content models.Content
		var statusStr string
		var revisions []byte
		err := rows.Scan(
			&content.ID, &content.Title, &content.Slug, &content.Body, &statusStr,
			&content.PublishedAt, &revisions, &content.CreatedAt, &content.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		content.Status = models.ContentStatus(statusStr)
		if err := content.SetRevisions(revisions); err != nil {
			return nil, fmt.Errorf("unmarshal revisions: %w", err)
		}
		items = append(items, &content)
	}

	return items, rows.Err()
}

// UpdateContent persists content mutations, including appended revision
// history records. The revision history is trimmed to the configured retention
// limit before writing.
func (db *DB) UpdateContent(ctx context.Context, content *models.Content) error {
	content.TrimRevisions(db.revisionLimit)

	revisions, err := content.RevisionsJSON()
	if err != nil {
		return fmt.Errorf("marshal revisions: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		UPDATE contents
		SET title = $2, slug = $3, body = $4, status = $5, published_at = $6,
		    revisions = $7, updated_at = $8
		WHERE id = $1
	`, content.ID, content.Title, content.Slug, content.Body, string(content.Status),
		content.PublishedAt, revisions, content.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// DeleteContent removes a content entity.
func (db *DB) DeleteContent(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, "DELETE FROM contents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
