// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

//go:embed seed/ai_tools.yaml
var aiToolsSeed []byte

// SeedTool is one entry of the bundled AI tool catalog.
type SeedTool struct {
	Name                string   `yaml:"name"`
	Category            string   `yaml:"category"`
	Pricing             string   `yaml:"pricing"`
	Features            []string `yaml:"features"`
	UseCases            string   `yaml:"useCases"`
	Description         string   `yaml:"description"`
	DetailedDescription string   `yaml:"detailedDescription"`
	Strengths           []string `yaml:"strengths"`
	Weaknesses          []string `yaml:"weaknesses"`
	BestFor             []string `yaml:"bestFor"`
	Link                string   `yaml:"link"`
	Logo                string   `yaml:"logo"`
	VideoURL            string   `yaml:"videoUrl"`
	SortOrder           int64    `yaml:"sortOrder"`
}

// SeedOptions controls what Seed does beyond the catalog.
type SeedOptions struct {
	// AdminEmail, when set, is promoted to admin if that user exists.
	AdminEmail string
}

// LoadSeedTools parses the bundled AI tool catalog.
func LoadSeedTools() ([]SeedTool, error) {
	var doc struct {
		Tools []SeedTool `yaml:"tools"`
	}
	if err := yaml.Unmarshal(aiToolsSeed, &doc); err != nil {
		return nil, fmt.Errorf("parsing ai tool catalog: %w", err)
	}
	return doc.Tools, nil
}

// Seed inserts the default AI tool catalog into an empty table and
// optionally promotes the configured admin account.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	if err := seedAiTools(ctx, db); err != nil {
		return err
	}

	if email := strings.TrimSpace(opts.AdminEmail); email != "" {
		n, err := New(db).SetUserAdminByEmail(ctx, true, email)
		if err != nil {
			return fmt.Errorf("promoting admin: %w", err)
		}
		if n == 0 {
			slog.Warn("admin email has no account yet, skipping promotion", "email", email)
		} else {
			slog.Info("admin account promoted", "email", email)
		}
	}

	return nil
}

func seedAiTools(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountAiTools(ctx)
	if err != nil {
		return fmt.Errorf("counting ai tools: %w", err)
	}
	if count > 0 {
		slog.Info("ai tools already present, skipping seed", "count", count)
		return nil
	}

	tools, err := LoadSeedTools()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	for _, t := range tools {
		if _, err := qtx.CreateAiTool(ctx, CreateAiToolParams{
			ID:                  uuid.NewString(),
			Name:                t.Name,
			Category:            t.Category,
			Pricing:             t.Pricing,
			Features:            t.Features,
			UseCases:            t.UseCases,
			Description:         t.Description,
			DetailedDescription: optionalString(t.DetailedDescription),
			Strengths:           t.Strengths,
			Weaknesses:          t.Weaknesses,
			BestFor:             t.BestFor,
			Link:                t.Link,
			Logo:                optionalString(t.Logo),
			VideoUrl:            optionalString(t.VideoURL),
			SortOrder:           t.SortOrder,
		}); err != nil {
			return fmt.Errorf("inserting ai tool %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded ai tools", "count", len(tools))
	return nil
}

func optionalString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
