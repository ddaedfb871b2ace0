// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
)

// Error codes shared by middleware and handlers.
const (
	CodeValidation         = "validation_error"
	CodeUnauthenticated    = "unauthenticated"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeDuplicateEmail     = "duplicate_email"
	CodeUpload             = "upload_error"
	CodeRateLimited        = "rate_limited"
	CodeSession            = "session_error"
	CodeInternal           = "internal_error"
	CodeUnavailable        = "unavailable"
)

// APIError is the JSON error body.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIError{Message: message, Code: code})
}
