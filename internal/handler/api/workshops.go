// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/store"
)

// ListWorkshops handles GET /api/workshops. Each workshop carries its
// session count from a single grouped query.
func (h *Handler) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	workshops, err := h.queries.ListWorkshopsWithSessionCount(r.Context())
	if err != nil {
		writeInternalError(w, r, "fetch workshops", err)
		return
	}

	resp := make([]WorkshopSummaryResponse, 0, len(workshops))
	for _, ws := range workshops {
		resp = append(resp, WorkshopSummaryResponse{
			WorkshopResponse: toWorkshopResponse(ws.Workshop),
			SessionCount:     ws.SessionCount,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetWorkshop handles GET /api/workshops/{id}
func (h *Handler) GetWorkshop(w http.ResponseWriter, r *http.Request) {
	workshop, ok := h.requireWorkshop(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, toWorkshopResponse(workshop))
}

// ListWorkshopSessions handles GET /api/workshops/{id}/sessions. Unknown
// workshops yield an empty list, not a 404.
func (h *Handler) ListWorkshopSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.queries.ListWorkshopSessions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeInternalError(w, r, "fetch sessions", err)
		return
	}

	resp := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, toSessionResponse(s))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// CreateWorkshop handles POST /api/admin/workshops
func (h *Handler) CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	var in schema.WorkshopInput
	if err := decodeCreate(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	workshop, err := h.queries.CreateWorkshop(r.Context(), store.CreateWorkshopParams{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		writeInternalError(w, r, "create workshop", err)
		return
	}
	WriteJSON(w, http.StatusCreated, toWorkshopResponse(workshop))
}

// UpdateWorkshop handles PATCH /api/admin/workshops/{id}
func (h *Handler) UpdateWorkshop(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.requireWorkshop(w, r)
	if !ok {
		return
	}

	in := workshopInputFrom(existing)
	if err := decodePatch(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	workshop, err := h.queries.UpdateWorkshop(r.Context(), store.UpdateWorkshopParams{
		ID:          existing.ID,
		Title:       in.Title,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		writeInternalError(w, r, "update workshop", err)
		return
	}
	WriteJSON(w, http.StatusOK, toWorkshopResponse(workshop))
}

// DeleteWorkshop handles DELETE /api/admin/workshops/{id}. Child sessions
// cascade and their uploaded decks are removed afterwards.
func (h *Handler) DeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := h.workshops.DeleteWorkshop(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, r, "delete workshop", err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Workshop deleted successfully"})
}

func (h *Handler) requireWorkshop(w http.ResponseWriter, r *http.Request) (store.Workshop, bool) {
	return requireEntityByID(w, r, "workshop", func(id string) (store.Workshop, error) {
		return h.queries.GetWorkshop(r.Context(), id)
	})
}
