// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
)

const aiToolColumns = `id, name, category, pricing, features, use_cases, description,
detailed_description, strengths, weaknesses, best_for, link, logo, video_url, sort_order`

func scanAiTool(row scanner) (AiTool, error) {
	var t AiTool
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Category,
		&t.Pricing,
		&t.Features,
		&t.UseCases,
		&t.Description,
		&t.DetailedDescription,
		&t.Strengths,
		&t.Weaknesses,
		&t.BestFor,
		&t.Link,
		&t.Logo,
		&t.VideoUrl,
		&t.SortOrder,
	)
	return t, err
}

const listAiTools = `-- name: ListAiTools :many
SELECT ` + aiToolColumns + ` FROM ai_tools
WHERE (?1 = '' OR category = ?1)
  AND (?2 = ''
       OR unicode_lower(name) LIKE ?2 ESCAPE '\'
       OR unicode_lower(description) LIKE ?2 ESCAPE '\'
       OR unicode_lower(use_cases) LIKE ?2 ESCAPE '\')
ORDER BY sort_order ASC, name COLLATE unicode_nocase ASC`

// ListAiToolsParams filters the catalog. Empty fields do not filter.
type ListAiToolsParams struct {
	Category string
	Search   string
}

func (q *Queries) ListAiTools(ctx context.Context, arg ListAiToolsParams) ([]AiTool, error) {
	rows, err := q.db.QueryContext(ctx, listAiTools, arg.Category, likePattern(arg.Search))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []AiTool{}
	for rows.Next() {
		t, err := scanAiTool(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const getAiTool = `-- name: GetAiTool :one
SELECT ` + aiToolColumns + ` FROM ai_tools WHERE id = ?`

func (q *Queries) GetAiTool(ctx context.Context, id string) (AiTool, error) {
	return scanAiTool(q.db.QueryRowContext(ctx, getAiTool, id))
}

const createAiTool = `-- name: CreateAiTool :one
INSERT INTO ai_tools (` + aiToolColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + aiToolColumns

type CreateAiToolParams struct {
	ID                  string
	Name                string
	Category            string
	Pricing             string
	Features            StringList
	UseCases            string
	Description         string
	DetailedDescription sql.NullString
	Strengths           StringList
	Weaknesses          StringList
	BestFor             StringList
	Link                string
	Logo                sql.NullString
	VideoUrl            sql.NullString
	SortOrder           int64
}

func (q *Queries) CreateAiTool(ctx context.Context, arg CreateAiToolParams) (AiTool, error) {
	row := q.db.QueryRowContext(ctx, createAiTool,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.Pricing,
		arg.Features,
		arg.UseCases,
		arg.Description,
		arg.DetailedDescription,
		arg.Strengths,
		arg.Weaknesses,
		arg.BestFor,
		arg.Link,
		arg.Logo,
		arg.VideoUrl,
		arg.SortOrder,
	)
	return scanAiTool(row)
}

const updateAiTool = `-- name: UpdateAiTool :one
UPDATE ai_tools SET
    name = ?, category = ?, pricing = ?, features = ?, use_cases = ?, description = ?,
    detailed_description = ?, strengths = ?, weaknesses = ?, best_for = ?, link = ?,
    logo = ?, video_url = ?, sort_order = ?
WHERE id = ?
RETURNING ` + aiToolColumns

// UpdateAiToolParams carries the full row; partial updates are merged by the caller.
type UpdateAiToolParams CreateAiToolParams

func (q *Queries) UpdateAiTool(ctx context.Context, arg UpdateAiToolParams) (AiTool, error) {
	row := q.db.QueryRowContext(ctx, updateAiTool,
		arg.Name,
		arg.Category,
		arg.Pricing,
		arg.Features,
		arg.UseCases,
		arg.Description,
		arg.DetailedDescription,
		arg.Strengths,
		arg.Weaknesses,
		arg.BestFor,
		arg.Link,
		arg.Logo,
		arg.VideoUrl,
		arg.SortOrder,
		arg.ID,
	)
	return scanAiTool(row)
}

const deleteAiTool = `-- name: DeleteAiTool :exec
DELETE FROM ai_tools WHERE id = ?`

func (q *Queries) DeleteAiTool(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteAiTool, id)
	return err
}

const countAiTools = `-- name: CountAiTools :one
SELECT COUNT(*) FROM ai_tools`

func (q *Queries) CountAiTools(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAiTools).Scan(&n)
	return n, err
}
