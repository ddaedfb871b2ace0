// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/dovito/dovito-edu/internal/handler/api"
	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/service"
)

// Response types shared with the server.
type (
	User            = api.UserResponse
	Me              = api.MeResponse
	AITool          = api.AIToolResponse
	MediaProfile    = api.MediaProfileResponse
	Prompt          = api.PromptResponse
	Workshop        = api.WorkshopResponse
	WorkshopSummary = api.WorkshopSummaryResponse
	Session         = api.SessionResponse
	UploadedFile    = service.StoredFile
)

// Patch carries only the fields a partial update changes.
type Patch map[string]any

// Cache key prefixes.
const (
	pathMe            = "/api/me"
	pathAdminCheck    = "/api/admin/check"
	pathAITools       = "/api/ai-tools"
	pathMediaProfiles = "/api/media-profiles"
	pathPrompts       = "/api/prompts"
	pathWorkshops     = "/api/workshops"
	pathSessions      = "/api/sessions"
)

// CatalogFilter narrows a catalog listing. Zero values apply no filter.
type CatalogFilter struct {
	Category string
	Search   string
	Featured *bool
}

func (f CatalogFilter) values() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Featured != nil {
		q.Set("featured", strconv.FormatBool(*f.Featured))
	}
	return q
}

// Register creates a password account and signs in.
func (c *Client) Register(ctx context.Context, email, password, name string) (*User, error) {
	var u User
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.send(ctx, http.MethodPost, "/api/register", body, &u); err != nil {
		return nil, err
	}
	c.InvalidateAll(ctx)
	return &u, nil
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var u User
	body := map[string]string{"email": email, "password": password}
	if err := c.send(ctx, http.MethodPost, "/api/login", body, &u); err != nil {
		return nil, err
	}
	c.InvalidateAll(ctx)
	return &u, nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.send(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.InvalidateAll(ctx)
	return nil
}

// Me returns the signed-in user. It is never cached, so admin changes
// show up immediately.
func (c *Client) Me(ctx context.Context) (*Me, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathMe, nil, "")
	if err != nil {
		return nil, err
	}
	var me Me
	if err := c.roundTrip(ctx, req, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// IsAdmin reports whether the current session belongs to an admin.
func (c *Client) IsAdmin(ctx context.Context) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathAdminCheck, nil, "")
	if err != nil {
		return false, err
	}
	var resp api.AdminCheckResponse
	if err := c.roundTrip(ctx, req, &resp); err != nil {
		return false, err
	}
	return resp.IsAdmin, nil
}

// ListAITools lists AI tools. Featured is ignored by the server.
func (c *Client) ListAITools(ctx context.Context, f CatalogFilter) ([]AITool, error) {
	var out []AITool
	if err := c.get(ctx, pathAITools, f.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAITool fetches one AI tool.
func (c *Client) GetAITool(ctx context.Context, id string) (*AITool, error) {
	var out AITool
	if err := c.get(ctx, pathAITools+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAITool creates an AI tool.
func (c *Client) CreateAITool(ctx context.Context, in schema.AIToolInput) (*AITool, error) {
	var out AITool
	if err := c.send(ctx, http.MethodPost, "/api/admin/ai-tools", in, &out, pathAITools); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAITool applies a partial update.
func (c *Client) UpdateAITool(ctx context.Context, id string, p Patch) (*AITool, error) {
	var out AITool
	if err := c.send(ctx, http.MethodPatch, "/api/admin/ai-tools/"+url.PathEscape(id), p, &out, pathAITools); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAITool deletes an AI tool.
func (c *Client) DeleteAITool(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/admin/ai-tools/"+url.PathEscape(id), nil, nil, pathAITools)
}

// ListMediaProfiles lists media profiles. Search is ignored by the server.
func (c *Client) ListMediaProfiles(ctx context.Context, f CatalogFilter) ([]MediaProfile, error) {
	var out []MediaProfile
	if err := c.get(ctx, pathMediaProfiles, f.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMediaProfile fetches one media profile.
func (c *Client) GetMediaProfile(ctx context.Context, id string) (*MediaProfile, error) {
	var out MediaProfile
	if err := c.get(ctx, pathMediaProfiles+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMediaProfile creates a media profile.
func (c *Client) CreateMediaProfile(ctx context.Context, in schema.MediaProfileInput) (*MediaProfile, error) {
	var out MediaProfile
	if err := c.send(ctx, http.MethodPost, "/api/admin/media-profiles", in, &out, pathMediaProfiles); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMediaProfile applies a partial update.
func (c *Client) UpdateMediaProfile(ctx context.Context, id string, p Patch) (*MediaProfile, error) {
	var out MediaProfile
	if err := c.send(ctx, http.MethodPatch, "/api/admin/media-profiles/"+url.PathEscape(id), p, &out, pathMediaProfiles); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMediaProfile deletes a media profile.
func (c *Client) DeleteMediaProfile(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/admin/media-profiles/"+url.PathEscape(id), nil, nil, pathMediaProfiles)
}

// ListPrompts lists prompts.
func (c *Client) ListPrompts(ctx context.Context, f CatalogFilter) ([]Prompt, error) {
	var out []Prompt
	if err := c.get(ctx, pathPrompts, f.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPrompt fetches one prompt.
func (c *Client) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	var out Prompt
	if err := c.get(ctx, pathPrompts+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePrompt creates a prompt.
func (c *Client) CreatePrompt(ctx context.Context, in schema.PromptInput) (*Prompt, error) {
	var out Prompt
	if err := c.send(ctx, http.MethodPost, "/api/admin/prompts", in, &out, pathPrompts); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePrompt applies a partial update.
func (c *Client) UpdatePrompt(ctx context.Context, id string, p Patch) (*Prompt, error) {
	var out Prompt
	if err := c.send(ctx, http.MethodPatch, "/api/admin/prompts/"+url.PathEscape(id), p, &out, pathPrompts); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePrompt deletes a prompt.
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/admin/prompts/"+url.PathEscape(id), nil, nil, pathPrompts)
}

// ListWorkshops lists workshops with their session counts.
func (c *Client) ListWorkshops(ctx context.Context) ([]WorkshopSummary, error) {
	var out []WorkshopSummary
	if err := c.get(ctx, pathWorkshops, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWorkshop fetches one workshop.
func (c *Client) GetWorkshop(ctx context.Context, id string) (*Workshop, error) {
	var out Workshop
	if err := c.get(ctx, pathWorkshops+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWorkshopSessions lists the sessions of a workshop.
func (c *Client) ListWorkshopSessions(ctx context.Context, workshopID string) ([]Session, error) {
	var out []Session
	if err := c.get(ctx, pathWorkshops+"/"+url.PathEscape(workshopID)+"/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSession fetches one session.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var out Session
	if err := c.get(ctx, pathSessions+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkshop creates a workshop.
func (c *Client) CreateWorkshop(ctx context.Context, in schema.WorkshopInput) (*Workshop, error) {
	var out Workshop
	if err := c.send(ctx, http.MethodPost, "/api/admin/workshops", in, &out, pathWorkshops); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkshop applies a partial update.
func (c *Client) UpdateWorkshop(ctx context.Context, id string, p Patch) (*Workshop, error) {
	var out Workshop
	if err := c.send(ctx, http.MethodPatch, "/api/admin/workshops/"+url.PathEscape(id), p, &out, pathWorkshops); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWorkshop deletes a workshop and its sessions.
func (c *Client) DeleteWorkshop(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/admin/workshops/"+url.PathEscape(id), nil, nil, pathWorkshops, pathSessions)
}

// CreateSession creates a session. Session writes also refresh the
// workshop list, whose entries carry session counts.
func (c *Client) CreateSession(ctx context.Context, in schema.SessionInput) (*Session, error) {
	var out Session
	if err := c.send(ctx, http.MethodPost, "/api/admin/sessions", in, &out, pathWorkshops, pathSessions); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSession applies a partial update.
func (c *Client) UpdateSession(ctx context.Context, id string, p Patch) (*Session, error) {
	var out Session
	if err := c.send(ctx, http.MethodPatch, "/api/admin/sessions/"+url.PathEscape(id), p, &out, pathWorkshops, pathSessions); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSession deletes a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/admin/sessions/"+url.PathEscape(id), nil, nil, pathWorkshops, pathSessions)
}

// UploadHTML uploads a workshop deck. The part is declared text/html when
// the name ends in .html, application/octet-stream otherwise.
func (c *Client) UploadHTML(ctx context.Context, filename string, r io.Reader) (*UploadedFile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	contentType := "application/octet-stream"
	if service.IsHTML(filename, "") {
		contentType = "text/html"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, api.UploadFormField, filepath.Base(filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/admin/sessions/upload-html", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out UploadedFile
	if err := c.roundTrip(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Schema returns the form descriptor of an admin resource.
func (c *Client) Schema(ctx context.Context, resource string) ([]schema.Field, error) {
	var out []schema.Field
	if err := c.get(ctx, "/api/admin/schemas/"+url.PathEscape(resource), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
