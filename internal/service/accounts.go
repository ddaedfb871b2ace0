// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business rules that sit between the HTTP
// handlers and the store: accounts, HTML uploads and the workshop hierarchy.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovito/dovito-edu/internal/auth"
	"github.com/dovito/dovito-edu/internal/store"
)

// Account errors.
var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash is compared against when the account has no password so that
// unknown emails cost the same as wrong passwords.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("dovito-timing-equalizer")
	return h
})

// AccountService registers and authenticates users.
type AccountService struct {
	queries *store.Queries
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{queries: store.New(db)}
}

// Register creates a password account. Email and password are required.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (store.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return store.User{}, ErrMissingCredentials
	}

	if _, err := s.queries.GetUserByEmail(ctx, email); err == nil {
		return store.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, fmt.Errorf("looking up email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return store.User{}, err
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		Name:         nullString(strings.TrimSpace(name)),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.User{}, ErrDuplicateEmail
		}
		return store.User{}, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks email and password. Unknown emails, OAuth-only
// accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return store.User{}, ErrInvalidCredentials
	}

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, _ = auth.CheckPassword(password, dummyHash())
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, fmt.Errorf("looking up user: %w", err)
	}

	if !user.PasswordHash.Valid || user.PasswordHash.String == "" {
		_, _ = auth.CheckPassword(password, dummyHash())
		return store.User{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash.String)
	if err != nil {
		slog.Warn("stored password hash is malformed", "user_id", user.ID, "error", err)
		return store.User{}, ErrInvalidCredentials
	}
	if !ok {
		return store.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// ResolveGoogleUser finds the account for a Google profile: by Google ID,
// then by email (linking the Google ID), else a new passwordless account.
func (s *AccountService) ResolveGoogleUser(ctx context.Context, p auth.GoogleProfile) (store.User, error) {
	if p.ID == "" || p.Email == "" {
		return store.User{}, auth.ErrNoEmail
	}

	user, err := s.queries.GetUserByGoogleID(ctx, p.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, fmt.Errorf("looking up google id: %w", err)
	}

	user, err = s.queries.GetUserByEmail(ctx, p.Email)
	switch {
	case err == nil:
		linked, err := s.queries.LinkUserGoogleID(ctx, p.ID, user.ID)
		if err != nil {
			return store.User{}, fmt.Errorf("linking google id: %w", err)
		}
		slog.Info("linked google account", "user_id", linked.ID)
		return linked, nil
	case !errors.Is(err, sql.ErrNoRows):
		return store.User{}, fmt.Errorf("looking up email: %w", err)
	}

	user, err = s.queries.CreateUser(ctx, store.CreateUserParams{
		ID:        uuid.NewString(),
		Email:     p.Email,
		Name:      nullString(p.Name),
		GoogleID:  sql.NullString{String: p.ID, Valid: true},
		CreatedAt: time.Now(),
	})
	if err != nil {
		return store.User{}, fmt.Errorf("creating google user: %w", err)
	}
	slog.Info("created google account", "user_id", user.ID)
	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
