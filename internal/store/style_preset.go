// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"thumbsmith/internal/models"
)

// StylePresetStore handles style preset database operations.
type StylePresetStore struct {
	db *sql.DB
}

// NewStylePresetStore creates a new StylePresetStore.
func NewStylePresetStore(db *sql.DB) *StylePresetStore {
	return &StylePresetStore{db: db}
}

// presetColumns lists the columns selected in style preset queries.
const presetColumns = `id, name, primary_color, font_size, banner_height, panel_height,
	panel_margin, panel_padding, panel_gap, divider_width, divider_opacity, created_at, updated_at`

func scanPreset(scanner rowScanner) (*models.StylePreset, error) {
	var p models.StylePreset
	err := scanner.Scan(
		&p.ID, &p.Name, &p.PrimaryColor, &p.FontSize, &p.BannerHeight, &p.PanelHeight,
		&p.PanelMargin, &p.PanelPadding, &p.PanelGap, &p.DividerWidth, &p.DividerOpacity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all style presets ordered by ascending id.
func (s *StylePresetStore) List(ctx context.Context) ([]models.StylePreset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+presetColumns+` FROM style_presets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list style presets: %w", err)
	}
	defer rows.Close()

	presets := []models.StylePreset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan style preset: %w", err)
		}
		presets = append(presets, *p)
	}
	return presets, rows.Err()
}

// Create validates and inserts a preset, returning the persisted row with
// its generated id and timestamps.
func (s *StylePresetStore) Create(ctx context.Context, p *models.StylePreset) (*models.StylePreset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO style_presets (name, primary_color, font_size, banner_height, panel_height,
			panel_margin, panel_padding, panel_gap, divider_width, divider_opacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+presetColumns,
		p.Name, p.PrimaryColor, p.FontSize, p.BannerHeight, p.PanelHeight,
		p.PanelMargin, p.PanelPadding, p.PanelGap, p.DividerWidth, p.DividerOpacity,
	)
	created, err := scanPreset(row)
	if err != nil {
		return nil, fmt.Errorf("create style preset: %w", err)
	}
	return created, nil
}
