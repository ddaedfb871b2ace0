// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package schema

import "strings"

// The form tag reads "Label;kind;placeholder". Kinds: text, textarea,
// list (one entry per line), number, checkbox, url, select-workshop.

// AIToolInput is the admin payload for an AI tool.
type AIToolInput struct {
	Name                string   `json:"name" validate:"notblank,max=200" form:"Name;text;e.g. ChatGPT"`
	Category            string   `json:"category" validate:"notblank,max=100" form:"Category;text;e.g. Conversational AI"`
	Pricing             string   `json:"pricing" validate:"notblank,max=200" form:"Pricing;text;e.g. Free / $20/mo"`
	Description         string   `json:"description" validate:"notblank" form:"Description;textarea;Short summary shown on cards"`
	DetailedDescription string   `json:"detailedDescription" form:"Detailed description;textarea;Longer write-up for the detail view"`
	UseCases            string   `json:"useCases" validate:"notblank" form:"Use cases;textarea;Comma-separated use cases"`
	Features            []string `json:"features" validate:"required,min=1,dive,notblank" form:"Features;list;One feature per line"`
	Strengths           []string `json:"strengths" form:"Strengths;list;One strength per line"`
	Weaknesses          []string `json:"weaknesses" form:"Weaknesses;list;One weakness per line"`
	BestFor             []string `json:"bestFor" form:"Best for;list;One audience per line"`
	Link                string   `json:"link" validate:"notblank" form:"Website;url;https://"`
	Logo                string   `json:"logo" form:"Logo URL;url;https://"`
	VideoURL            string   `json:"videoUrl" form:"Video URL;url;https://www.youtube.com/watch?v="`
	SortOrder           int64    `json:"sortOrder" form:"Sort order;number;0"`
}

// Normalize trims list entries and drops blank ones.
func (in *AIToolInput) Normalize() {
	in.Features = cleanList(in.Features)
	in.Strengths = cleanList(in.Strengths)
	in.Weaknesses = cleanList(in.Weaknesses)
	in.BestFor = cleanList(in.BestFor)
}

// MediaProfileInput is the admin payload for a media profile.
type MediaProfileInput struct {
	Name         string `json:"name" validate:"notblank,max=200" form:"Name;text;Creator name"`
	Title        string `json:"title" form:"Title;text;e.g. AI Educator"`
	Bio          string `json:"bio" validate:"notblank" form:"Bio;textarea;Short biography"`
	Avatar       string `json:"avatar" form:"Avatar URL;url;https://"`
	YoutubeURL   string `json:"youtubeUrl" form:"YouTube;url;https://youtube.com/@"`
	InstagramURL string `json:"instagramUrl" form:"Instagram;url;https://instagram.com/"`
	XURL         string `json:"xUrl" form:"X;url;https://x.com/"`
	LinkedinURL  string `json:"linkedinUrl" form:"LinkedIn;url;https://linkedin.com/in/"`
	WebsiteURL   string `json:"websiteUrl" form:"Website;url;https://"`
	TiktokURL    string `json:"tiktokUrl" form:"TikTok;url;https://tiktok.com/@"`
	Category     string `json:"category" form:"Category;text;e.g. YouTube"`
	Featured     int64  `json:"featured" validate:"oneof=0 1" form:"Featured;checkbox;"`
	SortOrder    int64  `json:"sortOrder" form:"Sort order;number;0"`
}

// Normalize is a no-op; profiles carry no list fields.
func (in *MediaProfileInput) Normalize() {}

// PromptInput is the admin payload for a prompt.
type PromptInput struct {
	Title     string   `json:"title" validate:"notblank,max=200" form:"Title;text;Prompt title"`
	Content   string   `json:"content" validate:"notblank" form:"Prompt;textarea;The prompt text"`
	Category  string   `json:"category" validate:"notblank,max=100" form:"Category;text;e.g. Marketing"`
	Tags      []string `json:"tags" form:"Tags;list;One tag per line"`
	Featured  int64    `json:"featured" validate:"oneof=0 1" form:"Featured;checkbox;"`
	SortOrder int64    `json:"sortOrder" form:"Sort order;number;0"`
}

// Normalize trims tags and drops blank ones.
func (in *PromptInput) Normalize() {
	in.Tags = cleanList(in.Tags)
}

// WorkshopInput is the admin payload for a workshop.
type WorkshopInput struct {
	Title       string `json:"title" validate:"notblank,max=200" form:"Title;text;Workshop title"`
	Description string `json:"description" validate:"notblank" form:"Description;textarea;What the workshop covers"`
	SortOrder   int64  `json:"sortOrder" form:"Sort order;number;0"`
}

// Normalize is a no-op.
func (in *WorkshopInput) Normalize() {}

// SessionInput is the admin payload for a workshop session.
type SessionInput struct {
	WorkshopID     string `json:"workshopId" validate:"notblank" form:"Workshop;select-workshop;"`
	Title          string `json:"title" validate:"notblank,max=200" form:"Title;text;Session title"`
	Description    string `json:"description" form:"Description;textarea;Optional summary"`
	Duration       string `json:"duration" form:"Duration;text;e.g. 45 min"`
	HTMLContentURL string `json:"htmlContentUrl" form:"Slides;url;/uploads/workshops/... or https://"`
	VideoURL       string `json:"videoUrl" form:"Video URL;url;https://"`
	SortOrder      int64  `json:"sortOrder" form:"Sort order;number;0"`
}

// Normalize trims the identifiers.
func (in *SessionInput) Normalize() {
	in.WorkshopID = strings.TrimSpace(in.WorkshopID)
	in.HTMLContentURL = strings.TrimSpace(in.HTMLContentURL)
}

// cleanList trims entries, drops blank ones and never returns nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
