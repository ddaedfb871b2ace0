// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as a JSON array column.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as "[]".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("store: cannot scan %T into StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("store: decoding string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

type User struct {
	ID           string
	Email        string
	PasswordHash sql.NullString
	Name         sql.NullString
	GoogleID     sql.NullString
	IsAdmin      bool
	CreatedAt    time.Time
}

type AiTool struct {
	ID                  string
	Name                string
	Category            string
	Pricing             string
	Features            StringList
	UseCases            string
	Description         string
	DetailedDescription sql.NullString
	Strengths           StringList
	Weaknesses          StringList
	BestFor             StringList
	Link                string
	Logo                sql.NullString
	VideoUrl            sql.NullString
	SortOrder           int64
}

type MediaProfile struct {
	ID           string
	Name         string
	Title        sql.NullString
	Bio          string
	Avatar       sql.NullString
	YoutubeUrl   sql.NullString
	InstagramUrl sql.NullString
	XUrl         sql.NullString
	LinkedinUrl  sql.NullString
	WebsiteUrl   sql.NullString
	TiktokUrl    sql.NullString
	Category     sql.NullString
	Featured     bool
	SortOrder    int64
}

type Prompt struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Tags      StringList
	Featured  bool
	SortOrder int64
	CreatedAt time.Time
}

type Workshop struct {
	ID          string
	Title       string
	Description string
	SortOrder   int64
	CreatedAt   time.Time
}

// WorkshopWithCount is a workshop row joined with its session count.
type WorkshopWithCount struct {
	Workshop
	SessionCount int64
}

type WorkshopSession struct {
	ID             string
	WorkshopID     string
	Title          string
	Description    sql.NullString
	Duration       sql.NullString
	HtmlContentUrl sql.NullString
	VideoUrl       sql.NullString
	SortOrder      int64
	CreatedAt      time.Time
}
