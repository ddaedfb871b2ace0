// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload limits and locations.
const (
	MaxHTMLUploadSize = 2 * 1024 * 1024 // 2MB
	DefaultUploadDir  = "./uploads"
	workshopSubdir    = "workshops"

	// ManagedPrefix is the public URL prefix of files this service owns.
	ManagedPrefix = "/uploads/workshops/"
)

// Upload errors.
var (
	ErrNoFile         = errors.New("no file uploaded")
	ErrUploadTooLarge = errors.New("file size exceeds 2MB limit")
	ErrUploadType     = errors.New("only HTML files are allowed")
)

// StoredFile describes an accepted upload.
type StoredFile struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// UploadService stores workshop HTML decks under the uploads directory.
type UploadService struct {
	uploadDir string
}

// NewUploadService creates a new UploadService rooted at uploadDir.
func NewUploadService(uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &UploadService{uploadDir: uploadDir}
}

// Dir returns the uploads root served under /uploads.
func (s *UploadService) Dir() string {
	return s.uploadDir
}

// IsHTML accepts a file when its declared type is text/html or its name ends in .html.
func IsHTML(filename, contentType string) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt == "text/html" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".html")
}

// SaveHTML validates and writes an uploaded deck. declaredSize is the
// multipart header size; the copy is also capped in case it lies.
func (s *UploadService) SaveHTML(r io.Reader, filename, contentType string, declaredSize int64) (*StoredFile, error) {
	if declaredSize > MaxHTMLUploadSize {
		return nil, ErrUploadTooLarge
	}
	if !IsHTML(filename, contentType) {
		return nil, ErrUploadType
	}

	dir := filepath.Join(s.uploadDir, workshopSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	name := fmt.Sprintf("%d-%s.html", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	fullPath := filepath.Join(dir, name)

	out, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	size, err := io.Copy(out, io.LimitReader(r, MaxHTMLUploadSize+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if size > MaxHTMLUploadSize {
		_ = os.Remove(fullPath)
		return nil, ErrUploadTooLarge
	}

	return &StoredFile{
		Path:     ManagedPrefix + name,
		Filename: name,
		Size:     size,
	}, nil
}

// IsManaged reports whether url points at a file this service stored.
func IsManaged(url string) bool {
	return strings.HasPrefix(url, ManagedPrefix)
}

// Remove deletes the file behind a managed URL. Unmanaged URLs and
// already-missing files are ignored. Failures are logged, never returned.
func (s *UploadService) Remove(url string) {
	if !IsManaged(url) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, ManagedPrefix))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return
	}

	err := os.Remove(filepath.Join(s.uploadDir, workshopSubdir, name))
	switch {
	case err == nil:
		slog.Info("removed workshop upload", "path", url)
	case errors.Is(err, os.ErrNotExist):
	default:
		slog.Warn("failed to remove workshop upload", "path", url, "error", err)
	}
}
