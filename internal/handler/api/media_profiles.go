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

// ListMediaProfiles handles GET /api/media-profiles?category=&featured=
func (h *Handler) ListMediaProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.queries.ListMediaProfiles(r.Context(), store.ListMediaProfilesParams{
		Category: parseCategory(r),
		Featured: parseFeatured(r),
	})
	if err != nil {
		writeInternalError(w, r, "fetch media profiles", err)
		return
	}

	resp := make([]MediaProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, toMediaProfileResponse(p))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetMediaProfile handles GET /api/media-profiles/{id}
func (h *Handler) GetMediaProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.requireMediaProfile(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, toMediaProfileResponse(profile))
}

// CreateMediaProfile handles POST /api/admin/media-profiles
func (h *Handler) CreateMediaProfile(w http.ResponseWriter, r *http.Request) {
	var in schema.MediaProfileInput
	if err := decodeCreate(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	profile, err := h.queries.CreateMediaProfile(r.Context(), mediaProfileParams(uuid.NewString(), in))
	if err != nil {
		writeInternalError(w, r, "create media profile", err)
		return
	}
	WriteJSON(w, http.StatusCreated, toMediaProfileResponse(profile))
}

// UpdateMediaProfile handles PATCH /api/admin/media-profiles/{id}
func (h *Handler) UpdateMediaProfile(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.requireMediaProfile(w, r)
	if !ok {
		return
	}

	in := mediaProfileInputFrom(existing)
	if err := decodePatch(w, r, &in); err != nil {
		writeInputError(w, err)
		return
	}

	profile, err := h.queries.UpdateMediaProfile(r.Context(), store.UpdateMediaProfileParams(mediaProfileParams(existing.ID, in)))
	if err != nil {
		writeInternalError(w, r, "update media profile", err)
		return
	}
	WriteJSON(w, http.StatusOK, toMediaProfileResponse(profile))
}

// DeleteMediaProfile handles DELETE /api/admin/media-profiles/{id}
func (h *Handler) DeleteMediaProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteMediaProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, r, "delete media profile", err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Media profile deleted successfully"})
}

func (h *Handler) requireMediaProfile(w http.ResponseWriter, r *http.Request) (store.MediaProfile, bool) {
	return requireEntityByID(w, r, "media profile", func(id string) (store.MediaProfile, error) {
		return h.queries.GetMediaProfile(r.Context(), id)
	})
}

func mediaProfileParams(id string, in schema.MediaProfileInput) store.CreateMediaProfileParams {
	return store.CreateMediaProfileParams{
		ID:           id,
		Name:         in.Name,
		Title:        nullString(in.Title),
		Bio:          in.Bio,
		Avatar:       nullString(in.Avatar),
		YoutubeUrl:   nullString(in.YoutubeURL),
		InstagramUrl: nullString(in.InstagramURL),
		XUrl:         nullString(in.XURL),
		LinkedinUrl:  nullString(in.LinkedinURL),
		WebsiteUrl:   nullString(in.WebsiteURL),
		TiktokUrl:    nullString(in.TiktokURL),
		Category:     nullString(in.Category),
		Featured:     in.Featured == 1,
		SortOrder:    in.SortOrder,
	}
}
