// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const userColumns = `id, email, password_hash, name, google_id, is_admin, created_at`

func scanUser(row scanner) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.GoogleID,
		&u.IsAdmin,
		&u.CreatedAt,
	)
	return u, err
}

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, email, password_hash, name, google_id, is_admin, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + userColumns

type CreateUserParams struct {
	ID           string
	Email        string
	PasswordHash sql.NullString
	Name         sql.NullString
	GoogleID     sql.NullString
	IsAdmin      bool
	CreatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.PasswordHash,
		arg.Name,
		arg.GoogleID,
		arg.IsAdmin,
		arg.CreatedAt,
	)
	return scanUser(row)
}

const getUserByID = `-- name: GetUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE email = ?`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const getUserByGoogleID = `-- name: GetUserByGoogleID :one
SELECT ` + userColumns + ` FROM users WHERE google_id = ?`

func (q *Queries) GetUserByGoogleID(ctx context.Context, googleID string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByGoogleID, googleID))
}

const linkUserGoogleID = `-- name: LinkUserGoogleID :one
UPDATE users SET google_id = ? WHERE id = ?
RETURNING ` + userColumns

func (q *Queries) LinkUserGoogleID(ctx context.Context, googleID, id string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, linkUserGoogleID, googleID, id))
}

const setUserAdmin = `-- name: SetUserAdmin :execrows
UPDATE users SET is_admin = ? WHERE id = ?`

func (q *Queries) SetUserAdmin(ctx context.Context, isAdmin bool, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, setUserAdmin, isAdmin, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const setUserAdminByEmail = `-- name: SetUserAdminByEmail :execrows
UPDATE users SET is_admin = ? WHERE email = ?`

func (q *Queries) SetUserAdminByEmail(ctx context.Context, isAdmin bool, email string) (int64, error) {
	res, err := q.db.ExecContext(ctx, setUserAdminByEmail, isAdmin, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countUsers = `-- name: CountUsers :one
SELECT COUNT(*) FROM users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}
