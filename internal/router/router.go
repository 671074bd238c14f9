// Package router sets up all HTTP routes and middleware chains for
// Thumbsmith: the editor page, the JSON API, the generate endpoint and
// the static file trees.
package router

import (
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thumbsmith/internal/handlers"
	"thumbsmith/internal/middleware"
	"thumbsmith/web"
)

// Options carries the parts of the router that vary by deployment.
type Options struct {
	// PublicDir holds the uploads/ and output/ trees served as-is.
	PublicDir string
	// GenerateLimiter throttles POST /generate per client. Nil disables it.
	GenerateLimiter *middleware.RateLimiter
}

// New creates the configured Chi router.
func New(editor *handlers.Editor, api *handlers.API, gen *handlers.Generator, opts Options) (chi.Router, error) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", editor.Root)
	r.Get("/edit", editor.Edit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", api.ListTemplates)
		r.Get("/style-presets", api.ListStylePresets)
		r.Post("/style-presets", api.CreateStylePreset)
		r.Get("/json-templates", api.ListJSONTemplates)
		r.Post("/json-templates", api.SaveJSONTemplate)
		r.Get("/generations", api.ListGenerations)
	})

	r.Group(func(r chi.Router) {
		if opts.GenerateLimiter != nil {
			r.Use(opts.GenerateLimiter.Middleware)
		}
		r.Post("/generate", gen.Generate)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	for _, dir := range []string{"uploads", "output"} {
		prefix := "/" + dir + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(opts.PublicDir, dir)))))
	}

	return r, nil
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
