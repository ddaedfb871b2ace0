// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
)

// AllCategories is the sentinel category value meaning "no filter".
const AllCategories = "All"

// parseCategory returns the category filter, or "" for none.
func parseCategory(r *http.Request) string {
	c := strings.TrimSpace(r.URL.Query().Get("category"))
	if strings.EqualFold(c, AllCategories) {
		return ""
	}
	return c
}

// parseSearch returns the trimmed search term.
func parseSearch(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}

// parseFeatured reads ?featured=. true/1 keeps featured rows, false/0 keeps
// the rest, anything else (including absent) applies no filter.
func parseFeatured(r *http.Request) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("featured"))) {
	case "true", "1":
		v = true
	case "false", "0":
		v = false
	default:
		return nil
	}
	return &v
}
