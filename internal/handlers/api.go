// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"thumbsmith/internal/models"
	"thumbsmith/internal/store"
)

// defaultHistoryLimit is how many generations GET /api/generations returns
// when no limit is given.
const defaultHistoryLimit = 20

// API groups the JSON endpoints under /api.
type API struct {
	templates     TemplateLister
	presets       StylePresetRepository
	jsonTemplates JSONTemplateRepository
	history       GenerationHistory
}

// NewAPI creates the API handler group. history may be nil when
// generation history is disabled.
func NewAPI(templates TemplateLister, presets StylePresetRepository, jsonTemplates JSONTemplateRepository, history GenerationHistory) *API {
	return &API{
		templates:     templates,
		presets:       presets,
		jsonTemplates: jsonTemplates,
		history:       history,
	}
}

// ListTemplates returns all caption templates.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := a.templates.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListStylePresets returns all style presets.
func (a *API) ListStylePresets(w http.ResponseWriter, r *http.Request) {
	items, err := a.presets.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// stylePresetRequest is the body of POST /api/style-presets. Unknown keys
// such as id or timestamps are ignored. Everything but name is a pointer so
// that null and absent values can be told apart from zero.
type stylePresetRequest struct {
	Name           string  `json:"name"`
	PrimaryColor   *string `json:"primary_color"`
	FontSize       *int    `json:"font_size"`
	BannerHeight   *int    `json:"banner_height"`
	PanelHeight    *int    `json:"panel_height"`
	PanelMargin    *int    `json:"panel_margin"`
	PanelPadding   *int    `json:"panel_padding"`
	PanelGap       *int    `json:"panel_gap"`
	DividerWidth   *int    `json:"divider_width"`
	DividerOpacity *int    `json:"divider_opacity"`
}

// preset converts the request, failing on the first null or absent field.
func (req *stylePresetRequest) preset() (*models.StylePreset, error) {
	p := &models.StylePreset{Name: req.Name}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if req.PrimaryColor == nil {
		return nil, requiredField("primary_color", "Primary color")
	}
	p.PrimaryColor = *req.PrimaryColor

	numbers := []struct {
		field string
		label string
		src   *int
		dst   *int
	}{
		{"font_size", "Font size", req.FontSize, &p.FontSize},
		{"banner_height", "Banner height", req.BannerHeight, &p.BannerHeight},
		{"panel_height", "Panel height", req.PanelHeight, &p.PanelHeight},
		{"panel_margin", "Panel margin", req.PanelMargin, &p.PanelMargin},
		{"panel_padding", "Panel padding", req.PanelPadding, &p.PanelPadding},
		{"panel_gap", "Panel gap", req.PanelGap, &p.PanelGap},
		{"divider_width", "Divider width", req.DividerWidth, &p.DividerWidth},
		{"divider_opacity", "Divider opacity", req.DividerOpacity, &p.DividerOpacity},
	}
	for _, n := range numbers {
		if n.src == nil {
			return nil, requiredField(n.field, n.label)
		}
		*n.dst = *n.src
	}
	return p, nil
}

func requiredField(field, label string) error {
	return &models.ValidationError{Field: field, Message: label + " is required."}
}

// CreateStylePreset validates and stores a new preset and returns the
// persisted row.
func (a *API) CreateStylePreset(w http.ResponseWriter, r *http.Request) {
	var req stylePresetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := req.preset()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := validatePreset(p); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.presets.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("style preset created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusOK, created)
}

// ListJSONTemplates returns JSON templates, filtered by the contentType
// query parameter when it is non-empty.
func (a *API) ListJSONTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := a.jsonTemplates.List(r.Context(), r.URL.Query().Get("contentType"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// jsonTemplateRequest is the body of POST /api/json-templates. A missing,
// null or zero id creates a new row.
type jsonTemplateRequest struct {
	ID           *int64 `json:"id"`
	Name         string `json:"name"`
	ContentType  string `json:"content_type"`
	TemplateJSON string `json:"template_json"`
	VarsJSON     string `json:"vars_json"`
}

// SaveJSONTemplate inserts or updates a JSON template and returns the
// resulting row.
func (a *API) SaveJSONTemplate(w http.ResponseWriter, r *http.Request) {
	var req jsonTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	t := &models.JSONTemplate{
		Name:         req.Name,
		ContentType:  req.ContentType,
		TemplateJSON: req.TemplateJSON,
		VarsJSON:     req.VarsJSON,
	}
	if req.ID != nil {
		t.ID = *req.ID
	}
	if err := validateJSONTemplate(t); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := a.jsonTemplates.Upsert(r.Context(), t)
	if errors.Is(err, store.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "JSON template not found.")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// ListGenerations returns the most recent generations, newest first. The
// list is empty when history is disabled.
func (a *API) ListGenerations(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorMessage(w, http.StatusBadRequest, "limit must be a positive integer.")
			return
		}
		limit = n
	}

	if a.history == nil {
		writeJSON(w, http.StatusOK, []models.Generation{})
		return
	}

	items, err := a.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
