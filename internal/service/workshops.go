// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/store"
)

// ErrWorkshopNotFound is returned when a session names a workshop that does not exist.
var ErrWorkshopNotFound = errors.New("workshop not found")

// WorkshopService applies the session write rules that touch uploaded files.
type WorkshopService struct {
	db      *sql.DB
	queries *store.Queries
	uploads *UploadService
}

// NewWorkshopService creates a new WorkshopService.
func NewWorkshopService(db *sql.DB, uploads *UploadService) *WorkshopService {
	return &WorkshopService{
		db:      db,
		queries: store.New(db),
		uploads: uploads,
	}
}

// CreateSession inserts a session under an existing workshop.
func (s *WorkshopService) CreateSession(ctx context.Context, in schema.SessionInput) (store.WorkshopSession, error) {
	if err := s.requireWorkshop(ctx, in.WorkshopID); err != nil {
		return store.WorkshopSession{}, err
	}

	sess, err := s.queries.CreateWorkshopSession(ctx, store.CreateWorkshopSessionParams{
		ID:             uuid.NewString(),
		WorkshopID:     in.WorkshopID,
		Title:          in.Title,
		Description:    nullString(in.Description),
		Duration:       nullString(in.Duration),
		HtmlContentUrl: nullString(in.HTMLContentURL),
		VideoUrl:       nullString(in.VideoURL),
		SortOrder:      in.SortOrder,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return store.WorkshopSession{}, ErrWorkshopNotFound
		}
		return store.WorkshopSession{}, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

// UpdateSession writes the merged input over existing. When the HTML
// source moves off a managed upload, the old file is removed.
func (s *WorkshopService) UpdateSession(ctx context.Context, existing store.WorkshopSession, in schema.SessionInput) (store.WorkshopSession, error) {
	if in.WorkshopID != existing.WorkshopID {
		if err := s.requireWorkshop(ctx, in.WorkshopID); err != nil {
			return store.WorkshopSession{}, err
		}
	}

	updated, err := s.queries.UpdateWorkshopSession(ctx, store.UpdateWorkshopSessionParams{
		ID:             existing.ID,
		WorkshopID:     in.WorkshopID,
		Title:          in.Title,
		Description:    nullString(in.Description),
		Duration:       nullString(in.Duration),
		HtmlContentUrl: nullString(in.HTMLContentURL),
		VideoUrl:       nullString(in.VideoURL),
		SortOrder:      in.SortOrder,
	})
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return store.WorkshopSession{}, ErrWorkshopNotFound
		}
		return store.WorkshopSession{}, fmt.Errorf("updating session: %w", err)
	}

	if old := existing.HtmlContentUrl.String; old != "" && old != in.HTMLContentURL {
		s.uploads.Remove(old)
	}
	return updated, nil
}

// DeleteSession removes the session row and then its uploaded deck.
// Deleting a missing session is not an error.
func (s *WorkshopService) DeleteSession(ctx context.Context, id string) error {
	sess, err := s.queries.GetWorkshopSession(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("loading session: %w", err)
	}

	if err := s.queries.DeleteWorkshopSession(ctx, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	s.uploads.Remove(sess.HtmlContentUrl.String)
	return nil
}

// DeleteWorkshop removes the workshop, cascading to its sessions, and then
// the uploaded decks those sessions referenced.
func (s *WorkshopService) DeleteWorkshop(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)

	urls, err := qtx.ListWorkshopSessionContentURLs(ctx, id)
	if err != nil {
		return fmt.Errorf("listing session files: %w", err)
	}
	if err := qtx.DeleteWorkshop(ctx, id); err != nil {
		return fmt.Errorf("deleting workshop: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing workshop delete: %w", err)
	}

	for _, u := range urls {
		s.uploads.Remove(u)
	}
	return nil
}

func (s *WorkshopService) requireWorkshop(ctx context.Context, id string) error {
	if id == "" {
		return ErrWorkshopNotFound
	}
	if _, err := s.queries.GetWorkshop(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWorkshopNotFound
		}
		return fmt.Errorf("loading workshop: %w", err)
	}
	return nil
}
