// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for Thumbsmith. Handlers are
// grouped by concern (editor page, JSON API, generation) and receive their
// dependencies through the handler struct as interfaces, so tests can
// substitute in-memory fakes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"thumbsmith/internal/generator"
	"thumbsmith/internal/models"
)

// TemplateLister reads caption templates.
type TemplateLister interface {
	List(ctx context.Context) ([]models.Template, error)
}

// StylePresetRepository lists and creates style presets.
type StylePresetRepository interface {
	List(ctx context.Context) ([]models.StylePreset, error)
	Create(ctx context.Context, p *models.StylePreset) (*models.StylePreset, error)
}

// JSONTemplateRepository lists and upserts JSON templates. An empty
// contentType lists every row.
type JSONTemplateRepository interface {
	List(ctx context.Context, contentType string) ([]models.JSONTemplate, error)
	Upsert(ctx context.Context, t *models.JSONTemplate) (*models.JSONTemplate, error)
}

// Renderer produces one thumbnail per call.
type Renderer interface {
	Render(ctx context.Context, job generator.Job) (*generator.Result, error)
}

// GenerationHistory records successful generations and lists recent ones.
type GenerationHistory interface {
	Record(ctx context.Context, g models.Generation) error
	Recent(ctx context.Context, limit int) ([]models.Generation, error)
}

// OutputPublisher copies a generated file somewhere public and returns
// its URL.
type OutputPublisher interface {
	PublishOutput(ctx context.Context, localPath string) (string, error)
}

// Client-facing messages for errors that carry no message of their own.
const (
	msgInternal    = "Internal server error."
	msgBadResponse = "Invalid response from image generator."
	msgInvalidBody = "Invalid JSON body."
)

// maxJSONBody caps API request bodies. JSON templates are the largest.
const maxJSONBody = 2 << 20

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes data as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("write json response failed", "error", err)
	}
}

// writeErrorMessage writes {"error": msg} with the given status code.
func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps err to a status code and a client-safe message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	var fe *generator.FailureError

	switch {
	case errors.As(err, &ve):
		writeErrorMessage(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &fe):
		writeErrorMessage(w, http.StatusInternalServerError, fe.Message)
	case errors.Is(err, generator.ErrBadResponse):
		writeErrorMessage(w, http.StatusInternalServerError, msgBadResponse)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON reads a single JSON document from the request body into dst.
// Trailing data after the document is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
