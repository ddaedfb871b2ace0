// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const promptColumns = `id, title, content, category, tags, featured, sort_order, created_at`

func scanPrompt(row scanner) (Prompt, error) {
	var p Prompt
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Category,
		&p.Tags,
		&p.Featured,
		&p.SortOrder,
		&p.CreatedAt,
	)
	return p, err
}

const listPrompts = `-- name: ListPrompts :many
SELECT ` + promptColumns + ` FROM prompts
WHERE (?1 = '' OR category = ?1)
  AND (?2 IS NULL OR featured = ?2)
  AND (?3 = '' OR unicode_lower(title) LIKE ?3 ESCAPE '\' OR unicode_lower(content) LIKE ?3 ESCAPE '\')
ORDER BY featured DESC, sort_order ASC, title COLLATE unicode_nocase ASC`

type ListPromptsParams struct {
	Category string
	Featured *bool
	Search   string
}

func (q *Queries) ListPrompts(ctx context.Context, arg ListPromptsParams) ([]Prompt, error) {
	rows, err := q.db.QueryContext(ctx, listPrompts,
		arg.Category,
		nullBool(arg.Featured),
		likePattern(arg.Search),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getPrompt = `-- name: GetPrompt :one
SELECT ` + promptColumns + ` FROM prompts WHERE id = ?`

func (q *Queries) GetPrompt(ctx context.Context, id string) (Prompt, error) {
	return scanPrompt(q.db.QueryRowContext(ctx, getPrompt, id))
}

const createPrompt = `-- name: CreatePrompt :one
INSERT INTO prompts (` + promptColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + promptColumns

type CreatePromptParams struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Tags      StringList
	Featured  bool
	SortOrder int64
	CreatedAt time.Time
}

func (q *Queries) CreatePrompt(ctx context.Context, arg CreatePromptParams) (Prompt, error) {
	row := q.db.QueryRowContext(ctx, createPrompt,
		arg.ID,
		arg.Title,
		arg.Content,
		arg.Category,
		arg.Tags,
		arg.Featured,
		arg.SortOrder,
		arg.CreatedAt,
	)
	return scanPrompt(row)
}

const updatePrompt = `-- name: UpdatePrompt :one
UPDATE prompts SET
    title = ?, content = ?, category = ?, tags = ?, featured = ?, sort_order = ?
WHERE id = ?
RETURNING ` + promptColumns

type UpdatePromptParams struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Tags      StringList
	Featured  bool
	SortOrder int64
}

func (q *Queries) UpdatePrompt(ctx context.Context, arg UpdatePromptParams) (Prompt, error) {
	row := q.db.QueryRowContext(ctx, updatePrompt,
		arg.Title,
		arg.Content,
		arg.Category,
		arg.Tags,
		arg.Featured,
		arg.SortOrder,
		arg.ID,
	)
	return scanPrompt(row)
}

const deletePrompt = `-- name: DeletePrompt :exec
DELETE FROM prompts WHERE id = ?`

func (q *Queries) DeletePrompt(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deletePrompt, id)
	return err
}
