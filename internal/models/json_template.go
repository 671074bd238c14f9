// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// JSONTemplate pairs a raw layout document with its variable bindings.
// Both documents are stored verbatim; ContentType is a free-form tag used
// to filter templates in the editor.
type JSONTemplate struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContentType  string    `json:"content_type"`
	TemplateJSON string    `json:"template_json"`
	VarsJSON     string    `json:"vars_json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate reports the first required field that is empty.
func (t *JSONTemplate) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", t.Name},
		{"content_type", t.ContentType},
		{"template_json", t.TemplateJSON},
		{"vars_json", t.VarsJSON},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{
				Field:   r.field,
				Message: "Name, content type, template JSON, and vars JSON are required.",
			}
		}
	}
	return nil
}
