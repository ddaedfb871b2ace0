// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/dovito/dovito-edu/internal/middleware"
)

// Cache lifetimes for static content.
const (
	assetsMaxAge  = 365 * 24 * 60 * 60
	uploadsMaxAge = 60 * 60
)

// Uploads serves the uploads directory under /uploads. Directory listings
// are refused.
func Uploads(dir string) http.Handler {
	fsys := noDirFS{http.Dir(dir)}
	return http.StripPrefix("/uploads", middleware.StaticCache(uploadsMaxAge)(http.FileServer(fsys)))
}

// noDirFS hides directories so http.FileServer 404s instead of listing.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

// SPAHandler serves the built client. Existing files are served as-is;
// any other GET falls back to index.html so client-side routes resolve.
type SPAHandler struct {
	fsys   fs.FS
	files  http.Handler
	assets http.Handler
}

// NewSPAHandler serves the client bundle rooted at dir.
func NewSPAHandler(dir string) *SPAHandler {
	return newSPAHandler(os.DirFS(dir))
}

func newSPAHandler(fsys fs.FS) *SPAHandler {
	files := http.FileServerFS(fsys)
	return &SPAHandler{
		fsys:   fsys,
		files:  files,
		assets: middleware.StaticCache(assetsMaxAge)(files),
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && name != "index.html" {
		st, err := fs.Stat(h.fsys, name)
		if err == nil && !st.IsDir() {
			if strings.HasPrefix(name, "assets/") {
				// hashed bundle names
				h.assets.ServeHTTP(w, r)
				return
			}
			h.files.ServeHTTP(w, r)
			return
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.serveIndex(w, r)
}

func (h *SPAHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := fs.ReadFile(h.fsys, "index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(index)
	}
}
