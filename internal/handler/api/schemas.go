// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dovito/dovito-edu/internal/schema"
)

// ListSchemas handles GET /api/admin/schemas
func (h *Handler) ListSchemas(w http.ResponseWriter, _ *http.Request) {
	resp := make(map[string][]schema.Field, len(schema.Resources()))
	for _, name := range schema.Resources() {
		fields, _ := schema.ForResource(name)
		resp[name] = fields
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetSchema handles GET /api/admin/schemas/{resource}
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	fields, ok := schema.ForResource(chi.URLParam(r, "resource"))
	if !ok {
		WriteNotFound(w, "Schema not found")
		return
	}
	WriteJSON(w, http.StatusOK, fields)
}
