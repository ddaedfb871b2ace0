// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/service"
	"github.com/dovito/dovito-edu/internal/store"
)

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}

// CreateSession handles POST /api/admin/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var in schema.SessionInput
	if err := decodeCreate(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	sess, err := h.workshops.CreateSession(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrWorkshopNotFound) {
			WriteValidationError(w, "Workshop not found")
			return
		}
		writeInternalError(w, r, "create session", err)
		return
	}
	WriteJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// UpdateSession handles PATCH /api/admin/sessions/{id}. Moving the deck
// off an uploaded file deletes that file.
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	in := sessionInputFrom(existing)
	if err := decodePatch(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	sess, err := h.workshops.UpdateSession(r.Context(), existing, in)
	if err != nil {
		if errors.Is(err, service.ErrWorkshopNotFound) {
			WriteValidationError(w, "Workshop not found")
			return
		}
		writeInternalError(w, r, "update session", err)
		return
	}
	WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}

// DeleteSession handles DELETE /api/admin/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.workshops.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, r, "delete session", err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Session deleted successfully"})
}

func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (store.WorkshopSession, bool) {
	return requireEntityByID(w, r, "session", func(id string) (store.WorkshopSession, error) {
		return h.queries.GetWorkshopSession(r.Context(), id)
	})
}
