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

// TemplateStore handles template database reads.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `id, name, main_title, left_caption, right_caption, primary_color, font_size, created_at, updated_at`

func scanTemplate(scanner rowScanner) (*models.Template, error) {
	var t models.Template
	err := scanner.Scan(
		&t.ID, &t.Name, &t.MainTitle, &t.LeftCaption, &t.RightCaption,
		&t.PrimaryColor, &t.FontSize, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all templates ordered by ascending id.
func (s *TemplateStore) List(ctx context.Context) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}
