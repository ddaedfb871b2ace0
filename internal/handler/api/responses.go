// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"time"

	"github.com/dovito/dovito-edu/internal/schema"
	"github.com/dovito/dovito-edu/internal/store"
)

// UserResponse is returned by register and login.
type UserResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// MeResponse is returned by GET /api/me.
type MeResponse struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Name    *string `json:"name"`
	IsAdmin bool    `json:"isAdmin"`
}

// AdminCheckResponse is returned by GET /api/admin/check.
type AdminCheckResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// AIToolResponse represents an AI tool in API responses.
type AIToolResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Pricing             string   `json:"pricing"`
	Features            []string `json:"features"`
	UseCases            string   `json:"useCases"`
	Description         string   `json:"description"`
	DetailedDescription *string  `json:"detailedDescription"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	BestFor             []string `json:"bestFor"`
	Link                string   `json:"link"`
	Logo                *string  `json:"logo"`
	VideoURL            *string  `json:"videoUrl"`
	SortOrder           int64    `json:"sortOrder"`
}

// MediaProfileResponse represents a media profile in API responses.
type MediaProfileResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Title        *string `json:"title"`
	Bio          string  `json:"bio"`
	Avatar       *string `json:"avatar"`
	YoutubeURL   *string `json:"youtubeUrl"`
	InstagramURL *string `json:"instagramUrl"`
	XURL         *string `json:"xUrl"`
	LinkedinURL  *string `json:"linkedinUrl"`
	WebsiteURL   *string `json:"websiteUrl"`
	TiktokURL    *string `json:"tiktokUrl"`
	Category     *string `json:"category"`
	Featured     int64   `json:"featured"`
	SortOrder    int64   `json:"sortOrder"`
}

// PromptResponse represents a prompt in API responses.
type PromptResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Featured  int64     `json:"featured"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkshopResponse represents a workshop in API responses.
type WorkshopResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SortOrder   int64     `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkshopSummaryResponse is a workshop annotated with its session count.
type WorkshopSummaryResponse struct {
	WorkshopResponse
	SessionCount int64 `json:"sessionCount"`
}

// SessionResponse represents a workshop session in API responses.
type SessionResponse struct {
	ID             string    `json:"id"`
	WorkshopID     string    `json:"workshopId"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	Duration       *string   `json:"duration"`
	HTMLContentURL *string   `json:"htmlContentUrl"`
	VideoURL       *string   `json:"videoUrl"`
	SortOrder      int64     `json:"sortOrder"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserResponse(u store.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: stringPtr(u.Name)}
}

func toAIToolResponse(t store.AiTool) AIToolResponse {
	return AIToolResponse{
		ID:                  t.ID,
		Name:                t.Name,
		Category:            t.Category,
		Pricing:             t.Pricing,
		Features:            list(t.Features),
		UseCases:            t.UseCases,
		Description:         t.Description,
		DetailedDescription: stringPtr(t.DetailedDescription),
		Strengths:           list(t.Strengths),
		Weaknesses:          list(t.Weaknesses),
		BestFor:             list(t.BestFor),
		Link:                t.Link,
		Logo:                stringPtr(t.Logo),
		VideoURL:            stringPtr(t.VideoUrl),
		SortOrder:           t.SortOrder,
	}
}

func toMediaProfileResponse(p store.MediaProfile) MediaProfileResponse {
	return MediaProfileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Title:        stringPtr(p.Title),
		Bio:          p.Bio,
		Avatar:       stringPtr(p.Avatar),
		YoutubeURL:   stringPtr(p.YoutubeUrl),
		InstagramURL: stringPtr(p.InstagramUrl),
		XURL:         stringPtr(p.XUrl),
		LinkedinURL:  stringPtr(p.LinkedinUrl),
		WebsiteURL:   stringPtr(p.WebsiteUrl),
		TiktokURL:    stringPtr(p.TiktokUrl),
		Category:     stringPtr(p.Category),
		Featured:     flag(p.Featured),
		SortOrder:    p.SortOrder,
	}
}

func toPromptResponse(p store.Prompt) PromptResponse {
	return PromptResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Tags:      list(p.Tags),
		Featured:  flag(p.Featured),
		SortOrder: p.SortOrder,
		CreatedAt: p.CreatedAt,
	}
}

func toWorkshopResponse(w store.Workshop) WorkshopResponse {
	return WorkshopResponse{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		SortOrder:   w.SortOrder,
		CreatedAt:   w.CreatedAt,
	}
}

func toSessionResponse(s store.WorkshopSession) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		WorkshopID:     s.WorkshopID,
		Title:          s.Title,
		Description:    stringPtr(s.Description),
		Duration:       stringPtr(s.Duration),
		HTMLContentURL: stringPtr(s.HtmlContentUrl),
		VideoURL:       stringPtr(s.VideoUrl),
		SortOrder:      s.SortOrder,
		CreatedAt:      s.CreatedAt,
	}
}

// The *InputFrom functions seed a PATCH with the stored record.

func aiToolInputFrom(t store.AiTool) schema.AIToolInput {
	return schema.AIToolInput{
		Name:                t.Name,
		Category:            t.Category,
		Pricing:             t.Pricing,
		Description:         t.Description,
		DetailedDescription: t.DetailedDescription.String,
		UseCases:            t.UseCases,
		Features:            list(t.Features),
		Strengths:           list(t.Strengths),
		Weaknesses:          list(t.Weaknesses),
		BestFor:             list(t.BestFor),
		Link:                t.Link,
		Logo:                t.Logo.String,
		VideoURL:            t.VideoUrl.String,
		SortOrder:           t.SortOrder,
	}
}

func mediaProfileInputFrom(p store.MediaProfile) schema.MediaProfileInput {
	return schema.MediaProfileInput{
		Name:         p.Name,
		Title:        p.Title.String,
		Bio:          p.Bio,
		Avatar:       p.Avatar.String,
		YoutubeURL:   p.YoutubeUrl.String,
		InstagramURL: p.InstagramUrl.String,
		XURL:         p.XUrl.String,
		LinkedinURL:  p.LinkedinUrl.String,
		WebsiteURL:   p.WebsiteUrl.String,
		TiktokURL:    p.TiktokUrl.String,
		Category:     p.Category.String,
		Featured:     flag(p.Featured),
		SortOrder:    p.SortOrder,
	}
}

func promptInputFrom(p store.Prompt) schema.PromptInput {
	return schema.PromptInput{
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Tags:      list(p.Tags),
		Featured:  flag(p.Featured),
		SortOrder: p.SortOrder,
	}
}

func workshopInputFrom(w store.Workshop) schema.WorkshopInput {
	return schema.WorkshopInput{
		Title:       w.Title,
		Description: w.Description,
		SortOrder:   w.SortOrder,
	}
}

func sessionInputFrom(s store.WorkshopSession) schema.SessionInput {
	return schema.SessionInput{
		WorkshopID:     s.WorkshopID,
		Title:          s.Title,
		Description:    s.Description.String,
		Duration:       s.Duration.String,
		HTMLContentURL: s.HtmlContentUrl.String,
		VideoURL:       s.VideoUrl.String,
		SortOrder:      s.SortOrder,
	}
}
