// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure: in-memory fakes of
// the handler dependencies, renderer stub scripts and request builders.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"thumbsmith/internal/generator"
	"thumbsmith/internal/models"
	"thumbsmith/internal/store"
)

// fakeTemplates implements TemplateLister.
type fakeTemplates struct {
	items []models.Template
	err   error
}

func (f *fakeTemplates) List(context.Context) ([]models.Template, error) {
	return f.items, f.err
}

// fakePresets implements StylePresetRepository.
type fakePresets struct {
	mu    sync.Mutex
	items []models.StylePreset
	err   error
}

func (f *fakePresets) List(context.Context) ([]models.StylePreset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.StylePreset{}, f.items...), f.err
}

func (f *fakePresets) Create(_ context.Context, p *models.StylePreset) (*models.StylePreset, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := *p
	out.ID = int64(len(f.items) + 1)
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.items = append(f.items, out)
	return &out, nil
}

// fakeJSONTemplates implements JSONTemplateRepository.
type fakeJSONTemplates struct {
	mu     sync.Mutex
	items  []models.JSONTemplate
	nextID int64
	err    error
}

func (f *fakeJSONTemplates) List(_ context.Context, contentType string) ([]models.JSONTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.JSONTemplate{}
	for _, it := range f.items {
		if contentType == "" || it.ContentType == contentType {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeJSONTemplates) Upsert(_ context.Context, t *models.JSONTemplate) (*models.JSONTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if t.ID == 0 {
		f.nextID++
		out := *t
		out.ID = f.nextID
		out.CreatedAt, out.UpdatedAt = now, now
		f.items = append(f.items, out)
		return &out, nil
	}
	for i := range f.items {
		if f.items[i].ID == t.ID {
			created := f.items[i].CreatedAt
			f.items[i] = *t
			f.items[i].CreatedAt, f.items[i].UpdatedAt = created, now
			out := f.items[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("json template %d: %w", t.ID, store.ErrNotFound)
}

// fakeRenderer implements Renderer and records every job.
type fakeRenderer struct {
	mu   sync.Mutex
	jobs []generator.Job
	res  *generator.Result
	err  error
}

func (f *fakeRenderer) Render(_ context.Context, job generator.Job) (*generator.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return f.res, f.err
}

func (f *fakeRenderer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

// fakeHistory implements GenerationHistory.
type fakeHistory struct {
	mu    sync.Mutex
	items []models.Generation
	err   error
}

func (f *fakeHistory) Record(_ context.Context, g models.Generation) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]models.Generation{g}, f.items...)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]models.Generation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.items) {
		limit = len(f.items)
	}
	return append([]models.Generation{}, f.items[:limit]...), nil
}

// fakePublisher implements OutputPublisher.
type fakePublisher struct {
	paths []string
	url   string
	err   error
}

func (f *fakePublisher) PublishOutput(_ context.Context, localPath string) (string, error) {
	f.paths = append(f.paths, localPath)
	return f.url, f.err
}

var errStore = errors.New("connection refused")

// stubRenderer writes a shell script standing in for the renderer and
// returns a gateway that runs it.
func stubRenderer(t *testing.T, body string) *generator.Gateway {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("renderer stubs are shell scripts")
	}
	path := filepath.Join(t.TempDir(), "render.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\ncat >/dev/null\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return generator.New([]string{path}, 10*time.Second)
}

// newPublicDir creates a public directory with uploads/ and output/.
func newPublicDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"uploads", "output"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// multipartRequest builds a POST /generate request. The image part is
// only added when filename is non-empty.
func multipartRequest(t *testing.T, fields map[string]string, filename string, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(image)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/generate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody unmarshals a recorder's JSON body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error reply.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	decodeBody(t, rec, &body)
	return body.Error
}
