// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const workshopColumns = `id, title, description, sort_order, created_at`

func scanWorkshop(row scanner) (Workshop, error) {
	var w Workshop
	err := row.Scan(&w.ID, &w.Title, &w.Description, &w.SortOrder, &w.CreatedAt)
	return w, err
}

const listWorkshopsWithSessionCount = `-- name: ListWorkshopsWithSessionCount :many
SELECT w.id, w.title, w.description, w.sort_order, w.created_at, COUNT(s.id) AS session_count
FROM workshops w
LEFT JOIN workshop_sessions s ON s.workshop_id = w.id
GROUP BY w.id
ORDER BY w.sort_order ASC, w.title COLLATE unicode_nocase ASC`

func (q *Queries) ListWorkshopsWithSessionCount(ctx context.Context) ([]WorkshopWithCount, error) {
	rows, err := q.db.QueryContext(ctx, listWorkshopsWithSessionCount)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []WorkshopWithCount{}
	for rows.Next() {
		var i WorkshopWithCount
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.SortOrder,
			&i.CreatedAt,
			&i.SessionCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getWorkshop = `-- name: GetWorkshop :one
SELECT ` + workshopColumns + ` FROM workshops WHERE id = ?`

func (q *Queries) GetWorkshop(ctx context.Context, id string) (Workshop, error) {
	return scanWorkshop(q.db.QueryRowContext(ctx, getWorkshop, id))
}

const createWorkshop = `-- name: CreateWorkshop :one
INSERT INTO workshops (` + workshopColumns + `)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + workshopColumns

type CreateWorkshopParams struct {
	ID          string
	Title       string
	Description string
	SortOrder   int64
	CreatedAt   time.Time
}

func (q *Queries) CreateWorkshop(ctx context.Context, arg CreateWorkshopParams) (Workshop, error) {
	row := q.db.QueryRowContext(ctx, createWorkshop,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.SortOrder,
		arg.CreatedAt,
	)
	return scanWorkshop(row)
}

const updateWorkshop = `-- name: UpdateWorkshop :one
UPDATE workshops SET title = ?, description = ?, sort_order = ?
WHERE id = ?
RETURNING ` + workshopColumns

type UpdateWorkshopParams struct {
	ID          string
	Title       string
	Description string
	SortOrder   int64
}

func (q *Queries) UpdateWorkshop(ctx context.Context, arg UpdateWorkshopParams) (Workshop, error) {
	row := q.db.QueryRowContext(ctx, updateWorkshop,
		arg.Title,
		arg.Description,
		arg.SortOrder,
		arg.ID,
	)
	return scanWorkshop(row)
}

const deleteWorkshop = `-- name: DeleteWorkshop :exec
DELETE FROM workshops WHERE id = ?`

// DeleteWorkshop removes the workshop; its sessions go with it via ON DELETE CASCADE.
func (q *Queries) DeleteWorkshop(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteWorkshop, id)
	return err
}
