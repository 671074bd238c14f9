// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"thumbsmith/internal/models"
)

func newJSONTemplate(name, contentType string) *models.JSONTemplate {
	return &models.JSONTemplate{
		Name:         name,
		ContentType:  contentType,
		TemplateJSON: `{"canvas":{"width":1280,"height":720},"layers":[]}`,
		VarsJSON:     `{"title":"hello"}`,
	}
}

func TestJSONTemplateStoreInsert(t *testing.T) {
	db := testDB(t)
	s := NewJSONTemplateStore(db)
	ctx := context.Background()

	ct := "test_" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanJSONTemplates(t, db, ct) })

	a, err := s.Upsert(ctx, newJSONTemplate("A", ct))
	if err != nil {
		t.Fatalf("Upsert A: %v", err)
	}
	b, err := s.Upsert(ctx, newJSONTemplate("B", ct))
	if err != nil {
		t.Fatalf("Upsert B: %v", err)
	}

	if a.ID == 0 || b.ID == 0 {
		t.Fatal("expected generated ids")
	}
	if a.ID == b.ID {
		t.Errorf("inserts share id %d", a.ID)
	}
	if a.TemplateJSON != newJSONTemplate("", "").TemplateJSON {
		t.Errorf("template_json not stored verbatim: %q", a.TemplateJSON)
	}
}

func TestJSONTemplateStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewJSONTemplateStore(db)
	ctx := context.Background()

	ct := "test_" + uuid.NewString()[:8]
	ct2 := ct + "_moved"
	t.Cleanup(func() { cleanJSONTemplates(t, db, ct, ct2) })

	created, err := s.Upsert(ctx, newJSONTemplate("Original", ct))
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	updated, err := s.Upsert(ctx, &models.JSONTemplate{
		ID:           created.ID,
		Name:         "Renamed",
		ContentType:  ct2,
		TemplateJSON: `{"layers":[{"type":"divider"}]}`,
		VarsJSON:     `{"x":1}`,
	})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("id changed: %d -> %d", created.ID, updated.ID)
	}
	if updated.Name != "Renamed" || updated.ContentType != ct2 ||
		updated.TemplateJSON != `{"layers":[{"type":"divider"}]}` || updated.VarsJSON != `{"x":1}` {
		t.Errorf("mutable fields not replaced: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at not refreshed: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestJSONTemplateStoreUpdateMissing(t *testing.T) {
	db := testDB(t)
	s := NewJSONTemplateStore(db)

	tmpl := newJSONTemplate("Ghost", "test_ghost")
	tmpl.ID = -1

	_, err := s.Upsert(context.Background(), tmpl)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONTemplateStoreUpsertValidation(t *testing.T) {
	db := testDB(t)
	s := NewJSONTemplateStore(db)

	tmpl := newJSONTemplate("No Vars", "test_invalid")
	tmpl.VarsJSON = ""

	_, err := s.Upsert(context.Background(), tmpl)
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "vars_json" {
		t.Errorf("field: got %q, want vars_json", ve.Field)
	}
}

func TestJSONTemplateStoreListFilter(t *testing.T) {
	db := testDB(t)
	s := NewJSONTemplateStore(db)
	ctx := context.Background()

	ctA := "test_" + uuid.NewString()[:8]
	ctB := "test_" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanJSONTemplates(t, db, ctA, ctB) })

	var wantA []int64
	for _, row := range []struct{ name, ct string }{
		{"a1", ctA}, {"b1", ctB}, {"a2", ctA}, {"b2", ctB}, {"a3", ctA},
	} {
		created, err := s.Upsert(ctx, newJSONTemplate(row.name, row.ct))
		if err != nil {
			t.Fatalf("Upsert %s: %v", row.name, err)
		}
		if row.ct == ctA {
			wantA = append(wantA, created.ID)
		}
	}

	filtered, err := s.List(ctx, ctA)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(filtered) != len(wantA) {
		t.Fatalf("filtered: got %d rows, want %d", len(filtered), len(wantA))
	}
	for i, item := range filtered {
		if item.ContentType != ctA {
			t.Errorf("row %d has content type %q", item.ID, item.ContentType)
		}
		if item.ID != wantA[i] {
			t.Errorf("position %d: got id %d, want %d", i, item.ID, wantA[i])
		}
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	var seen int
	for i, item := range all {
		if i > 0 && all[i-1].ID >= item.ID {
			t.Errorf("unfiltered list not in ascending id order")
		}
		if item.ContentType == ctA || item.ContentType == ctB {
			seen++
		}
	}
	if seen != 5 {
		t.Errorf("unfiltered list contains %d test rows, want 5", seen)
	}
}
