// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"thumbsmith/internal/models"
	"thumbsmith/internal/render"
)

// Font families and styles the renderer's font catalog knows. The first
// entry of each is the renderer's own default.
var (
	fontFamilies = []string{"dejavu_sans", "dejavu_serif", "liberation_sans", "liberation_serif"}
	fontStyles   = []string{"bold", "regular", "italic", "bold_italic"}
)

// layoutField is one numeric layout input on the edit page.
type layoutField struct {
	Name  string
	Label string
}

var layoutFields = []layoutField{
	{"banner_height", "Banner height"},
	{"panel_height", "Panel height"},
	{"panel_margin", "Panel margin"},
	{"panel_padding", "Panel padding"},
	{"panel_gap", "Panel gap"},
	{"divider_width", "Divider width"},
	{"divider_opacity", "Divider opacity"},
}

// Editor serves the single-page editor.
type Editor struct {
	renderer      *render.Renderer
	templates     TemplateLister
	presets       StylePresetRepository
	jsonTemplates JSONTemplateRepository
}

// NewEditor creates the editor handler group.
func NewEditor(renderer *render.Renderer, templates TemplateLister, presets StylePresetRepository, jsonTemplates JSONTemplateRepository) *Editor {
	return &Editor{
		renderer:      renderer,
		templates:     templates,
		presets:       presets,
		jsonTemplates: jsonTemplates,
	}
}

// Root redirects to the editor.
func (e *Editor) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/edit", http.StatusFound)
}

// Edit renders the editor with the current templates, presets and JSON
// templates. Every request reads from the store.
func (e *Editor) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	templates, err := e.templates.List(ctx)
	if err != nil {
		slog.Error("list templates failed", "error", err)
		http.Error(w, "Failed to load templates.", http.StatusInternalServerError)
		return
	}
	presets, err := e.presets.List(ctx)
	if err != nil {
		slog.Error("list style presets failed", "error", err)
		http.Error(w, "Failed to load style presets.", http.StatusInternalServerError)
		return
	}
	jsonTemplates, err := e.jsonTemplates.List(ctx, "")
	if err != nil {
		slog.Error("list json templates failed", "error", err)
		http.Error(w, "Failed to load JSON templates.", http.StatusInternalServerError)
		return
	}

	e.renderer.Page(w, "edit", &render.PageData{
		Title: "Edit",
		Data: map[string]any{
			"Templates":     templates,
			"StylePresets":  presets,
			"JSONTemplates": jsonTemplates,
			"ContentTypes":  contentTypes(jsonTemplates),
			"FontFamilies":  fontFamilies,
			"FontStyles":    fontStyles,
			"LayoutFields":  layoutFields,
		},
	})
}

// contentTypes returns the distinct content types in first-seen order.
func contentTypes(items []models.JSONTemplate) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it.ContentType] {
			seen[it.ContentType] = true
			out = append(out, it.ContentType)
		}
	}
	return out
}
