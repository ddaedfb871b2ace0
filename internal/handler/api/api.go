// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API handlers for Dovito EDU.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/dovito/dovito-edu/internal/auth"
	"github.com/dovito/dovito-edu/internal/middleware"
	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/service"
	"github.com/dovito/dovito-edu/internal/store"
)

// maxJSONBody caps admin and auth request bodies.
const maxJSONBody = 1 << 20

var errInvalidBody = errors.New("invalid JSON body")

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	sm        *scs.SessionManager
	accounts  *service.AccountService
	workshops *service.WorkshopService
	uploads   *service.UploadService
	google    auth.IdentityProvider // nil when OAuth is not configured
	login     *middleware.LoginProtection
}

// Deps are the collaborators NewHandler wires together.
type Deps struct {
	DB              *sql.DB
	Sessions        *scs.SessionManager
	Uploads         *service.UploadService
	Google          auth.IdentityProvider
	LoginProtection *middleware.LoginProtection
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	uploads := d.Uploads
	if uploads == nil {
		uploads = service.NewUploadService("")
	}
	login := d.LoginProtection
	if login == nil {
		login = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	}
	return &Handler{
		db:        d.DB,
		queries:   store.New(d.DB),
		sm:        d.Sessions,
		accounts:  service.NewAccountService(d.DB),
		workshops: service.NewWorkshopService(d.DB, uploads),
		uploads:   uploads,
		google:    d.Google,
		login:     login,
	}
}

// MessageResponse is the body of delete and logout responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes the {message, code} error body.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	middleware.WriteAPIError(w, statusCode, code, message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, middleware.CodeNotFound, message)
}

// WriteValidationError writes a 400 with the first failing field's message.
func WriteValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, middleware.CodeValidation, message)
}

// writeInternalError logs err and writes the generic "Failed to X" response.
func writeInternalError(w http.ResponseWriter, r *http.Request, action string, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"action", action,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	WriteError(w, http.StatusInternalServerError, middleware.CodeInternal, "Failed to "+action)
}

// writeInputError maps a decode or validation failure to a 400.
func writeInputError(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		WriteValidationError(w, verr.Message)
		return
	}
	WriteValidationError(w, "Invalid JSON body")
}

// readBody reads a capped JSON body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return nil, errInvalidBody
	}
	return body, nil
}

// inputNormalizer is implemented by the schema input types.
type inputNormalizer interface {
	Normalize()
}

// decodeCreate decodes a full payload into in and validates every rule.
func decodeCreate(w http.ResponseWriter, r *http.Request, in inputNormalizer) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, in); err != nil {
		return errInvalidBody
	}
	in.Normalize()
	return schema.Validate(in)
}

// decodePatch overlays the supplied keys of the body onto in, which holds
// the current record, and validates only those keys.
func decodePatch(w http.ResponseWriter, r *http.Request, in inputNormalizer) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	var supplied map[string]json.RawMessage
	if err := json.Unmarshal(body, &supplied); err != nil {
		return errInvalidBody
	}
	if err := json.Unmarshal(body, in); err != nil {
		return errInvalidBody
	}
	in.Normalize()

	keys := make([]string, 0, len(supplied))
	for k := range supplied {
		keys = append(keys, k)
	}
	return schema.ValidatePartial(in, keys)
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id string) (T, error)

// requireEntityByID reads {id} from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if
// a response has already been written.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			writeInternalError(w, r, "fetch "+entityName, err)
		}
		return zero, false
	}

	return entity, true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// nullString maps "" to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// stringPtr exposes a nullable column as a JSON string or null.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// flag renders a boolean column as the 0/1 integer the client expects.
func flag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// list never renders a nil slice as null.
func list(l store.StringList) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
