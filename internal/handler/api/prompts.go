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

// ListPrompts handles GET /api/prompts?category=&featured=&search=
func (h *Handler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.queries.ListPrompts(r.Context(), store.ListPromptsParams{
		Category: parseCategory(r),
		Featured: parseFeatured(r),
		Search:   parseSearch(r),
	})
	if err != nil {
		writeInternalError(w, r, "fetch prompts", err)
		return
	}

	resp := make([]PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		resp = append(resp, toPromptResponse(p))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetPrompt handles GET /api/prompts/{id}
func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, ok := h.requirePrompt(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, toPromptResponse(prompt))
}

// CreatePrompt handles POST /api/admin/prompts
func (h *Handler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var in schema.PromptInput
	if err := decodeCreate(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	prompt, err := h.queries.CreatePrompt(r.Context(), store.CreatePromptParams{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      in.Tags,
		Featured:  in.Featured == 1,
		SortOrder: in.SortOrder,
		CreatedAt: time.Now(),
	})
	if err != nil {
		writeInternalError(w, r, "create prompt", err)
		return
	}
	WriteJSON(w, http.StatusCreated, toPromptResponse(prompt))
}

// UpdatePrompt handles PATCH /api/admin/prompts/{id}
func (h *Handler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.requirePrompt(w, r)
	if !ok {
		return
	}

	in := promptInputFrom(existing)
	if err := decodePatch(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	prompt, err := h.queries.UpdatePrompt(r.Context(), store.UpdatePromptParams{
		ID:        existing.ID,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      in.Tags,
		Featured:  in.Featured == 1,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		writeInternalError(w, r, "update prompt", err)
		return
	}
	WriteJSON(w, http.StatusOK, toPromptResponse(prompt))
}

// DeletePrompt handles DELETE /api/admin/prompts/{id}
func (h *Handler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeletePrompt(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, r, "delete prompt", err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Prompt deleted successfully"})
}

func (h *Handler) requirePrompt(w http.ResponseWriter, r *http.Request) (store.Prompt, bool) {
	return requireEntityByID(w, r, "prompt", func(id string) (store.Prompt, error) {
		return h.queries.GetPrompt(r.Context(), id)
	})
}
