// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"thumbsmith/internal/models"
)

// JSONTemplateStore handles JSON template database operations.
type JSONTemplateStore struct {
	db *sql.DB
}

// NewJSONTemplateStore creates a new JSONTemplateStore.
func NewJSONTemplateStore(db *sql.DB) *JSONTemplateStore {
	return &JSONTemplateStore{db: db}
}

const jsonTemplateColumns = `id, name, content_type, template_json, vars_json, created_at, updated_at`

func scanJSONTemplate(scanner rowScanner) (*models.JSONTemplate, error) {
	var t models.JSONTemplate
	err := scanner.Scan(
		&t.ID, &t.Name, &t.ContentType, &t.TemplateJSON, &t.VarsJSON,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns JSON templates ordered by ascending id. A non-empty
// contentType narrows the result to rows with exactly that content type.
func (s *JSONTemplateStore) List(ctx context.Context, contentType string) ([]models.JSONTemplate, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if contentType == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+jsonTemplateColumns+` FROM json_templates ORDER BY id`)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+jsonTemplateColumns+` FROM json_templates
			WHERE content_type = $1
			ORDER BY id
		`, contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("list json templates: %w", err)
	}
	defer rows.Close()

	items := []models.JSONTemplate{}
	for rows.Next() {
		t, err := scanJSONTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan json template: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Upsert inserts t when t.ID is zero, otherwise replaces every mutable
// field of the row with that id and refreshes updated_at. Updating an id
// that does not exist returns ErrNotFound.
func (s *JSONTemplateStore) Upsert(ctx context.Context, t *models.JSONTemplate) (*models.JSONTemplate, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if t.ID == 0 {
		row := s.db.QueryRowContext(ctx, `
			INSERT INTO json_templates (name, content_type, template_json, vars_json)
			VALUES ($1, $2, $3, $4)
			RETURNING `+jsonTemplateColumns,
			t.Name, t.ContentType, t.TemplateJSON, t.VarsJSON,
		)
		created, err := scanJSONTemplate(row)
		if err != nil {
			return nil, fmt.Errorf("create json template: %w", err)
		}
		return created, nil
	}

	// clock_timestamp() advances within a transaction; NOW() does not.
	row := s.db.QueryRowContext(ctx, `
		UPDATE json_templates SET
			name = $1, content_type = $2, template_json = $3, vars_json = $4,
			updated_at = clock_timestamp()
		WHERE id = $5
		RETURNING `+jsonTemplateColumns,
		t.Name, t.ContentType, t.TemplateJSON, t.VarsJSON, t.ID,
	)
	updated, err := scanJSONTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("json template %d: %w", t.ID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update json template: %w", err)
	}
	return updated, nil
}
