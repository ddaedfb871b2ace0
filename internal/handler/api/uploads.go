// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dovito/dovito-edu/internal/middleware"
	"github.com/dovito/dovito-edu/internal/service"
)

// UploadFormField is the multipart field carrying the deck.
const UploadFormField = "htmlFile"

// multipartOverhead allows for boundaries and part headers on top of the file.
const multipartOverhead = 64 << 10

// UploadHTML handles POST /api/admin/sessions/upload-html
func (h *Handler) UploadHTML(w http.ResponseWriter, r *http.Request) {
	const limit = service.MaxHTMLUploadSize + multipartOverhead
	if r.ContentLength > limit {
		writeUploadError(w, service.ErrUploadTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(service.MaxHTMLUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeUploadError(w, service.ErrUploadTooLarge)
			return
		}
		writeUploadError(w, service.ErrNoFile)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(UploadFormField)
	if err != nil {
		writeUploadError(w, service.ErrNoFile)
		return
	}
	defer func() { _ = file.Close() }()

	stored, err := h.uploads.SaveHTML(file, header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		if errors.Is(err, service.ErrUploadTooLarge) || errors.Is(err, service.ErrUploadType) {
			writeUploadError(w, err)
			return
		}
		writeInternalError(w, r, "upload file", err)
		return
	}

	slog.InfoContext(r.Context(), "workshop deck uploaded", "path", stored.Path, "size", stored.Size)
	WriteJSON(w, http.StatusOK, stored)
}

// writeUploadError maps upload sentinels to the messages the admin UI shows.
func writeUploadError(w http.ResponseWriter, err error) {
	var msg string
	switch {
	case errors.Is(err, service.ErrUploadTooLarge):
		msg = "File size exceeds 2MB limit"
	case errors.Is(err, service.ErrUploadType):
		msg = "Only HTML files are allowed"
	default:
		msg = "No file uploaded"
	}
	WriteError(w, http.StatusBadRequest, middleware.CodeUpload, msg)
}
