// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const workshopSessionColumns = `id, workshop_id, title, description, duration, html_content_url,
video_url, sort_order, created_at`

func scanWorkshopSession(row scanner) (WorkshopSession, error) {
	var s WorkshopSession
	err := row.Scan(
		&s.ID,
		&s.WorkshopID,
		&s.Title,
		&s.Description,
		&s.Duration,
		&s.HtmlContentUrl,
		&s.VideoUrl,
		&s.SortOrder,
		&s.CreatedAt,
	)
	return s, err
}

const listWorkshopSessions = `-- name: ListWorkshopSessions :many
SELECT ` + workshopSessionColumns + ` FROM workshop_sessions
WHERE workshop_id = ?
ORDER BY sort_order ASC, title COLLATE unicode_nocase ASC`

func (q *Queries) ListWorkshopSessions(ctx context.Context, workshopID string) ([]WorkshopSession, error) {
	rows, err := q.db.QueryContext(ctx, listWorkshopSessions, workshopID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []WorkshopSession{}
	for rows.Next() {
		s, err := scanWorkshopSession(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const listWorkshopSessionContentURLs = `-- name: ListWorkshopSessionContentURLs :many
SELECT html_content_url FROM workshop_sessions
WHERE workshop_id = ? AND html_content_url IS NOT NULL AND html_content_url != ''`

func (q *Queries) ListWorkshopSessionContentURLs(ctx context.Context, workshopID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listWorkshopSessionContentURLs, workshopID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

const getWorkshopSession = `-- name: GetWorkshopSession :one
SELECT ` + workshopSessionColumns + ` FROM workshop_sessions WHERE id = ?`

func (q *Queries) GetWorkshopSession(ctx context.Context, id string) (WorkshopSession, error) {
	return scanWorkshopSession(q.db.QueryRowContext(ctx, getWorkshopSession, id))
}

const createWorkshopSession = `-- name: CreateWorkshopSession :one
INSERT INTO workshop_sessions (` + workshopSessionColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + workshopSessionColumns

type CreateWorkshopSessionParams struct {
	ID             string
	WorkshopID     string
	Title          string
	Description    sql.NullString
	Duration       sql.NullString
	HtmlContentUrl sql.NullString
	VideoUrl       sql.NullString
	SortOrder      int64
	CreatedAt      time.Time
}

func (q *Queries) CreateWorkshopSession(ctx context.Context, arg CreateWorkshopSessionParams) (WorkshopSession, error) {
	row := q.db.QueryRowContext(ctx, createWorkshopSession,
		arg.ID,
		arg.WorkshopID,
		arg.Title,
		arg.Description,
		arg.Duration,
		arg.HtmlContentUrl,
		arg.VideoUrl,
		arg.SortOrder,
		arg.CreatedAt,
	)
	return scanWorkshopSession(row)
}

const updateWorkshopSession = `-- name: UpdateWorkshopSession :one
UPDATE workshop_sessions SET
    workshop_id = ?, title = ?, description = ?, duration = ?, html_content_url = ?,
    video_url = ?, sort_order = ?
WHERE id = ?
RETURNING ` + workshopSessionColumns

type UpdateWorkshopSessionParams struct {
	ID             string
	WorkshopID     string
	Title          string
	Description    sql.NullString
	Duration       sql.NullString
	HtmlContentUrl sql.NullString
	VideoUrl       sql.NullString
	SortOrder      int64
}

func (q *Queries) UpdateWorkshopSession(ctx context.Context, arg UpdateWorkshopSessionParams) (WorkshopSession, error) {
	row := q.db.QueryRowContext(ctx, updateWorkshopSession,
		arg.WorkshopID,
		arg.Title,
		arg.Description,
		arg.Duration,
		arg.HtmlContentUrl,
		arg.VideoUrl,
		arg.SortOrder,
		arg.ID,
	)
	return scanWorkshopSession(row)
}

const deleteWorkshopSession = `-- name: DeleteWorkshopSession :exec
DELETE FROM workshop_sessions WHERE id = ?`

func (q *Queries) DeleteWorkshopSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteWorkshopSession, id)
	return err
}
