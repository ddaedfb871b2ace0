// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server assembles the HTTP router: middleware chain, JSON API,
// OAuth callback, uploads, health probes and the single-page client.
package server

import (
	"crypto/sha256"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/dovito/dovito-edu/internal/auth"
	"github.com/dovito/dovito-edu/internal/config"
	"github.com/dovito/dovito-edu/internal/handler"
	"github.com/dovito/dovito-edu/internal/handler/api"
	"github.com/dovito/dovito-edu/internal/middleware"
	"github.com/dovito/dovito-edu/internal/service"
	"github.com/dovito/dovito-edu/internal/version"
)

// Defaults applied by New.
const (
	DefaultAPIRateLimit   = 300
	DefaultRequestTimeout = 30 * time.Second
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Config          *config.Config
	DB              *sql.DB
	Sessions        *scs.SessionManager
	Uploads         *service.UploadService
	Google          auth.IdentityProvider       // nil disables Google sign-in
	LoginProtection *middleware.LoginProtection // the caller owns Close
	Logger          *slog.Logger
	Version         version.Info

	// APIRateLimit is requests per minute per client IP on /api.
	APIRateLimit   int
	RequestTimeout time.Duration
}

// New builds the application router.
func New(d Deps) http.Handler {
	cfg := d.Config
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Uploads == nil {
		d.Uploads = service.NewUploadService(cfg.UploadsDir)
	}
	if d.APIRateLimit <= 0 {
		d.APIRateLimit = DefaultAPIRateLimit
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = DefaultRequestTimeout
	}
	if d.LoginProtection == nil {
		d.LoginProtection = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	}

	apiHandler := api.NewHandler(api.Deps{
		DB:              d.DB,
		Sessions:        d.Sessions,
		Uploads:         d.Uploads,
		Google:          d.Google,
		LoginProtection: d.LoginProtection,
	})
	healthHandler := handler.NewHealthHandler(d.DB, d.Uploads.Dir(), d.Version)
	loadUser := middleware.LoadUser(d.Sessions, d.DB)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(chimw.GetHead)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions(cfg)))
		r.Use(httprate.LimitByIP(d.APIRateLimit, time.Minute))
		r.Use(middleware.NoStore)
		r.Use(middleware.Timeout(d.RequestTimeout))
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(csrfKey(cfg.SessionSecret), cfg.IsDevelopment(), cfg.AllowedOrigins)))
		r.Use(d.Sessions.LoadAndSave)
		r.Use(loadUser)

		mountAPI(r, apiHandler, d)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			middleware.WriteAPIError(w, http.StatusNotFound, middleware.CodeNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			middleware.WriteAPIError(w, http.StatusMethodNotAllowed, middleware.CodeNotFound, "Method not allowed")
		})
	})

	// Google redirects the browser here, outside /api.
	r.With(d.Sessions.LoadAndSave, loadUser).Get("/auth/google/callback", apiHandler.GoogleCallback)

	r.Route("/health", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.With(d.Sessions.LoadAndSave, loadUser).Get("/", healthHandler.Health)
		r.Get("/live", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Handle("/uploads/*", handler.Uploads(d.Uploads.Dir()))

	if cfg.ClientDir != "" {
		spa := handler.NewSPAHandler(cfg.ClientDir)
		r.NotFound(spa.ServeHTTP)
	}

	return r
}

func mountAPI(r chi.Router, h *api.Handler, d Deps) {
	r.Post("/register", h.Register)
	r.With(d.LoginProtection.Middleware()).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(middleware.RequireAuth).Get("/me", h.Me)
	r.Get("/auth/google", h.GoogleStart)

	r.Get("/ai-tools", h.ListAITools)
	r.Get("/ai-tools/{id}", h.GetAITool)
	r.Get("/media-profiles", h.ListMediaProfiles)
	r.Get("/media-profiles/{id}", h.GetMediaProfile)
	r.Get("/prompts", h.ListPrompts)
	r.Get("/prompts/{id}", h.GetPrompt)
	r.Get("/workshops", h.ListWorkshops)
	r.Get("/workshops/{id}", h.GetWorkshop)
	r.Get("/workshops/{id}/sessions", h.ListWorkshopSessions)
	r.Get("/sessions/{id}", h.GetSession)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/check", h.AdminCheck)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			registerCRUD(r, "/ai-tools", crudHandlers{h.CreateAITool, h.UpdateAITool, h.DeleteAITool})
			registerCRUD(r, "/media-profiles", crudHandlers{h.CreateMediaProfile, h.UpdateMediaProfile, h.DeleteMediaProfile})
			registerCRUD(r, "/prompts", crudHandlers{h.CreatePrompt, h.UpdatePrompt, h.DeletePrompt})
			registerCRUD(r, "/workshops", crudHandlers{h.CreateWorkshop, h.UpdateWorkshop, h.DeleteWorkshop})
			r.Post("/sessions/upload-html", h.UploadHTML)
			registerCRUD(r, "/sessions", crudHandlers{h.CreateSession, h.UpdateSession, h.DeleteSession})

			r.Get("/schemas", h.ListSchemas)
			r.Get("/schemas/{resource}", h.GetSchema)
		})
	})
}

// crudHandlers are the admin write handlers of one resource.
type crudHandlers struct {
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// registerCRUD registers POST base, PATCH base/{id} and DELETE base/{id}.
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Post(base, h.Create)
	r.Patch(base+"/{id}", h.Update)
	r.Delete(base+"/{id}", h.Delete)
}

func corsOptions(cfg *config.Config) cors.Options {
	origins := cfg.AllowedOrigins
	if cfg.IsDevelopment() {
		origins = append([]string{"http://localhost:5173", "http://127.0.0.1:5173"}, origins...)
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// csrfKey derives the 32-byte key filippo.io/csrf expects from the session
// secret.
func csrfKey(secret string) []byte {
	sum := sha256.Sum256([]byte("csrf:" + secret))
	return sum[:]
}
