// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/store"
)

// ListAITools handles GET /api/ai-tools?category=&search=
func (h *Handler) ListAITools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.queries.ListAiTools(r.Context(), store.ListAiToolsParams{
		Category: parseCategory(r),
		Search:   parseSearch(r),
	})
	if err != nil {
		writeInternalError(w, r, "fetch AI tools", err)
		return
	}

	resp := make([]AIToolResponse, 0, len(tools))
	for _, t := range tools {
		resp = append(resp, toAIToolResponse(t))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetAITool handles GET /api/ai-tools/{id}
func (h *Handler) GetAITool(w http.ResponseWriter, r *http.Request) {
	tool, ok := h.requireAITool(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, toAIToolResponse(tool))
}

// CreateAITool handles POST /api/admin/ai-tools
func (h *Handler) CreateAITool(w http.ResponseWriter, r *http.Request) {
	var in schema.AIToolInput
	if err := decodeCreate(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	tool, err := h.queries.CreateAiTool(r.Context(), aiToolParams(uuid.NewString(), in))
	if err != nil {
		writeInternalError(w, r, "create AI tool", err)
		return
	}
	WriteJSON(w, http.StatusCreated, toAIToolResponse(tool))
}

// UpdateAITool handles PATCH /api/admin/ai-tools/{id}
func (h *Handler) UpdateAITool(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.requireAITool(w, r)
	if !ok {
		return
	}

	in := aiToolInputFrom(existing)
	if err := decodePatch(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	tool, err := h.queries.UpdateAiTool(r.Context(), store.UpdateAiToolParams(aiToolParams(existing.ID, in)))
	if err != nil {
		writeInternalError(w, r, "update AI tool", err)
		return
	}
	WriteJSON(w, http.StatusOK, toAIToolResponse(tool))
}

// DeleteAITool handles DELETE /api/admin/ai-tools/{id}. Missing ids succeed.
func (h *Handler) DeleteAITool(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteAiTool(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, r, "delete AI tool", err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "AI tool deleted successfully"})
}

func (h *Handler) requireAITool(w http.ResponseWriter, r *http.Request) (store.AiTool, bool) {
	return requireEntityByID(w, r, "AI tool", func(id string) (store.AiTool, error) {
		return h.queries.GetAiTool(r.Context(), id)
	})
}

func aiToolParams(id string, in schema.AIToolInput) store.CreateAiToolParams {
	return store.CreateAiToolParams{
		ID:                  id,
		Name:                in.Name,
		Category:            in.Category,
		Pricing:             in.Pricing,
		Features:            in.Features,
		UseCases:            in.UseCases,
		Description:         in.Description,
		DetailedDescription: nullString(in.DetailedDescription),
		Strengths:           in.Strengths,
		Weaknesses:          in.Weaknesses,
		BestFor:             in.BestFor,
		Link:                in.Link,
		Logo:                nullString(in.Logo),
		VideoUrl:            nullString(in.VideoURL),
		SortOrder:           in.SortOrder,
	}
}
