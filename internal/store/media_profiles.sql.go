// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
)

const mediaProfileColumns = `id, name, title, bio, avatar, youtube_url, instagram_url, x_url,
linkedin_url, website_url, tiktok_url, category, featured, sort_order`

func scanMediaProfile(row scanner) (MediaProfile, error) {
	var p MediaProfile
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Title,
		&p.Bio,
		&p.Avatar,
		&p.YoutubeUrl,
		&p.InstagramUrl,
		&p.XUrl,
		&p.LinkedinUrl,
		&p.WebsiteUrl,
		&p.TiktokUrl,
		&p.Category,
		&p.Featured,
		&p.SortOrder,
	)
	return p, err
}

const listMediaProfiles = `-- name: ListMediaProfiles :many
SELECT ` + mediaProfileColumns + ` FROM media_profiles
WHERE (?1 = '' OR category = ?1)
  AND (?2 IS NULL OR featured = ?2)
ORDER BY featured DESC, sort_order ASC, name COLLATE unicode_nocase ASC`

// ListMediaProfilesParams filters profiles. A nil Featured does not filter.
type ListMediaProfilesParams struct {
	Category string
	Featured *bool
}

func (q *Queries) ListMediaProfiles(ctx context.Context, arg ListMediaProfilesParams) ([]MediaProfile, error) {
	rows, err := q.db.QueryContext(ctx, listMediaProfiles, arg.Category, nullBool(arg.Featured))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []MediaProfile{}
	for rows.Next() {
		p, err := scanMediaProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getMediaProfile = `-- name: GetMediaProfile :one
SELECT ` + mediaProfileColumns + ` FROM media_profiles WHERE id = ?`

func (q *Queries) GetMediaProfile(ctx context.Context, id string) (MediaProfile, error) {
	return scanMediaProfile(q.db.QueryRowContext(ctx, getMediaProfile, id))
}

const createMediaProfile = `-- name: CreateMediaProfile :one
INSERT INTO media_profiles (` + mediaProfileColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + mediaProfileColumns

type CreateMediaProfileParams struct {
	ID           string
	Name         string
	Title        sql.NullString
	Bio          string
	Avatar       sql.NullString
	YoutubeUrl   sql.NullString
	InstagramUrl sql.NullString
	XUrl         sql.NullString
	LinkedinUrl  sql.NullString
	WebsiteUrl   sql.NullString
	TiktokUrl    sql.NullString
	Category     sql.NullString
	Featured     bool
	SortOrder    int64
}

func (q *Queries) CreateMediaProfile(ctx context.Context, arg CreateMediaProfileParams) (MediaProfile, error) {
	row := q.db.QueryRowContext(ctx, createMediaProfile,
		arg.ID,
		arg.Name,
		arg.Title,
		arg.Bio,
		arg.Avatar,
		arg.YoutubeUrl,
		arg.InstagramUrl,
		arg.XUrl,
		arg.LinkedinUrl,
		arg.WebsiteUrl,
		arg.TiktokUrl,
		arg.Category,
		arg.Featured,
		arg.SortOrder,
	)
	return scanMediaProfile(row)
}

const updateMediaProfile = `-- name: UpdateMediaProfile :one
UPDATE media_profiles SET
    name = ?, title = ?, bio = ?, avatar = ?, youtube_url = ?, instagram_url = ?, x_url = ?,
    linkedin_url = ?, website_url = ?, tiktok_url = ?, category = ?, featured = ?, sort_order = ?
WHERE id = ?
RETURNING ` + mediaProfileColumns

type UpdateMediaProfileParams CreateMediaProfileParams

func (q *Queries) UpdateMediaProfile(ctx context.Context, arg UpdateMediaProfileParams) (MediaProfile, error) {
	row := q.db.QueryRowContext(ctx, updateMediaProfile,
		arg.Name,
		arg.Title,
		arg.Bio,
		arg.Avatar,
		arg.YoutubeUrl,
		arg.InstagramUrl,
		arg.XUrl,
		arg.LinkedinUrl,
		arg.WebsiteUrl,
		arg.TiktokUrl,
		arg.Category,
		arg.Featured,
		arg.SortOrder,
		arg.ID,
	)
	return scanMediaProfile(row)
}

const deleteMediaProfile = `-- name: DeleteMediaProfile :exec
DELETE FROM media_profiles WHERE id = ?`

func (q *Queries) DeleteMediaProfile(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteMediaProfile, id)
	return err
}
