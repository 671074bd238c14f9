// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"thumbsmith/internal/generator"
	"thumbsmith/internal/imaging"
	"thumbsmith/internal/models"
)

const (
	// defaultUploadExt is used when the uploaded file name has no usable
	// extension.
	defaultUploadExt = ".jpg"

	// multipartMemory is how much of a multipart body is held in memory
	// before spilling to temporary files.
	multipartMemory = 8 << 20

	// formOverhead allows for the text fields sent next to the image.
	formOverhead = 1 << 20

	// postRenderTimeout bounds the best-effort work done after a render.
	postRenderTimeout = 15 * time.Second
)

// Generator handles POST /generate.
type Generator struct {
	renderer  Renderer
	uploadDir string
	outputDir string
	maxUpload int64
	history   GenerationHistory
	mirror    OutputPublisher
	probe     func(path string) (*imaging.Info, error)

	// background tracks afterRender runs still in progress.
	background sync.WaitGroup
}

// NewGenerator creates the generation handler. Uploads are stored under
// publicDir/uploads and outputs are requested at publicDir/output, both as
// absolute paths. history and mirror may be nil.
func NewGenerator(renderer Renderer, publicDir string, maxUpload int64, history GenerationHistory, mirror OutputPublisher) (*Generator, error) {
	abs, err := filepath.Abs(publicDir)
	if err != nil {
		return nil, fmt.Errorf("resolve public dir: %w", err)
	}
	return &Generator{
		renderer:  renderer,
		uploadDir: filepath.Join(abs, "uploads"),
		outputDir: filepath.Join(abs, "output"),
		maxUpload: maxUpload,
		history:   history,
		mirror:    mirror,
		probe:     imaging.Probe,
	}, nil
}

// generateResponse is the body of a successful generation.
type generateResponse struct {
	Output string `json:"output"`
}

// Generate stores the uploaded image, runs the renderer and replies with
// the public URL of the output. Nothing is spawned when the image is
// missing.
func (g *Generator) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, g.maxUpload+formOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeErrorMessage(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Image is too large (max %d MB).", g.maxUpload>>20))
		case errors.Is(err, http.ErrNotMultipart):
			writeErrorMessage(w, http.StatusBadRequest, "Image upload is required.")
		default:
			writeErrorMessage(w, http.StatusBadRequest, "Invalid form data.")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Image upload is required.")
		return
	}
	defer file.Close()

	if header.Size > g.maxUpload {
		writeErrorMessage(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Image is too large (max %d MB).", g.maxUpload>>20))
		return
	}

	imagePath, err := g.saveUpload(file, header.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id := uuid.NewString()
	outputPath := filepath.Join(g.outputDir, id+".jpg")
	job := jobFromForm(r.MultipartForm.Value, imagePath, outputPath)

	res, err := g.renderer.Render(r.Context(), job)
	if err != nil {
		writeError(w, r, err)
		return
	}

	output := "/output/" + res.OutputName
	slog.Info("thumbnail generated", "output", output, "duration", res.Duration.String())

	writeJSON(w, http.StatusOK, generateResponse{Output: output})

	gen := models.Generation{
		ID:         id,
		Output:     output,
		Title:      job.MainTitle,
		DurationMS: res.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	ctx := context.WithoutCancel(r.Context())
	g.background.Add(1)
	go func() {
		defer g.background.Done()
		g.afterRender(ctx, gen, res.OutputPath)
	}()
}

// Wait blocks until every post-render task started by Generate has
// finished.
func (g *Generator) Wait() {
	g.background.Wait()
}

// saveUpload writes the upload to the uploads directory under a fresh
// random name that keeps the original extension.
func (g *Generator) saveUpload(src io.Reader, originalName string) (string, error) {
	path := filepath.Join(g.uploadDir, uuid.NewString()+uploadExt(originalName))

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path, nil
}

// afterRender probes, mirrors and records a successful generation once the
// response has been written. Each step is best-effort: failures are only
// logged.
func (g *Generator) afterRender(ctx context.Context, gen models.Generation, outputPath string) {
	ctx, cancel := context.WithTimeout(ctx, postRenderTimeout)
	defer cancel()

	if info, err := g.probe(outputPath); err != nil {
		slog.Warn("probe output failed", "path", outputPath, "error", err)
	} else {
		gen.Width, gen.Height = info.Width, info.Height
	}

	if g.mirror != nil {
		if mirrorURL, err := g.mirror.PublishOutput(ctx, outputPath); err != nil {
			slog.Warn("mirror output failed", "path", outputPath, "error", err)
		} else {
			gen.MirrorURL = mirrorURL
		}
	}

	if g.history != nil {
		if err := g.history.Record(ctx, gen); err != nil {
			slog.Warn("record generation failed", "id", gen.ID, "error", err)
		}
	}
}

// uploadExt returns the extension of name, or defaultUploadExt when name
// has none or it contains anything other than ASCII letters and digits.
func uploadExt(name string) string {
	ext := filepath.Ext(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	if len(ext) < 2 || len(ext) > 10 {
		return defaultUploadExt
	}
	for _, c := range ext[1:] {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return defaultUploadExt
		}
	}
	return ext
}

// jobFromForm builds the renderer job from the submitted fields. Text
// fields are passed through verbatim; numeric fields are coerced with
// generator.ParseNumber.
func jobFromForm(values url.Values, imagePath, outputPath string) generator.Job {
	text := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	number := func(key string) generator.Number {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return generator.ParseNumber("", false)
		}
		return generator.ParseNumber(v[0], true)
	}

	return generator.Job{
		ImagePath:      imagePath,
		OutputPath:     outputPath,
		MainTitle:      text("main_title"),
		LeftCaption:    text("left_caption"),
		RightCaption:   text("right_caption"),
		PrimaryColor:   text("primary_color"),
		FontSize:       number("font_size"),
		FontFamily:     text("font_family"),
		FontStyle:      text("font_style"),
		BannerHeight:   number("banner_height"),
		PanelHeight:    number("panel_height"),
		PanelMargin:    number("panel_margin"),
		PanelPadding:   number("panel_padding"),
		PanelGap:       number("panel_gap"),
		DividerWidth:   number("divider_width"),
		DividerOpacity: number("divider_opacity"),
	}
}
