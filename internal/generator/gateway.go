// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator delegates thumbnail composition to an external
// renderer process. One process is started per job: the job is written to
// its stdin as a single JSON document, stdin is closed, and the process's
// stdout is parsed as a single JSON result once it exits.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrBadResponse is returned when the renderer exits successfully but its
// stdout is not a JSON object with an output_path.
var ErrBadResponse = errors.New("invalid response from image generator")

// FailureError is returned when the renderer exits with a nonzero status.
// Message carries the renderer's stderr, or a generic text when it was silent.
type FailureError struct {
	Message  string
	ExitCode int
}

func (e *FailureError) Error() string {
	return e.Message
}

// Job is the document written to the renderer's stdin. Field names are
// the renderer's wire format and must not change.
type Job struct {
	ImagePath    string `json:"image_path"`
	OutputPath   string `json:"output_path"`
	MainTitle    string `json:"main_title"`
	LeftCaption  string `json:"left_caption"`
	RightCaption string `json:"right_caption"`
	PrimaryColor string `json:"primary_color"`
	FontSize     Number `json:"font_size"`

	FontFamily     string `json:"font_family"`
	FontStyle      string `json:"font_style"`
	BannerHeight   Number `json:"banner_height"`
	PanelHeight    Number `json:"panel_height"`
	PanelMargin    Number `json:"panel_margin"`
	PanelPadding   Number `json:"panel_padding"`
	PanelGap       Number `json:"panel_gap"`
	DividerWidth   Number `json:"divider_width"`
	DividerOpacity Number `json:"divider_opacity"`
}

// Result describes a successful render.
type Result struct {
	// OutputPath is the path reported by the renderer.
	OutputPath string
	// OutputName is the basename of OutputPath, used to build the public URL.
	OutputName string
	Duration   time.Duration
}

// waitDelay bounds how long Wait keeps reading output after the renderer
// has been killed by the timeout.
const waitDelay = 5 * time.Second

// rendererResponse is the renderer's stdout document.
type rendererResponse struct {
	OutputPath *string `json:"output_path"`
}

// Gateway runs the external renderer.
type Gateway struct {
	command []string
	timeout time.Duration
}

// New creates a Gateway that starts command (program followed by its
// arguments) for every job. A zero timeout lets the renderer run for as
// long as it needs.
func New(command []string, timeout time.Duration) *Gateway {
	return &Gateway{
		command: append([]string(nil), command...),
		timeout: timeout,
	}
}

// Render runs one renderer process for job and waits for it to exit.
//
// Cancellation of ctx does not stop the renderer: a client that drops its
// connection leaves the process running to completion. Only the gateway's
// own timeout, when configured, kills it.
//
// The output file named in the result is not checked for existence.
func (g *Gateway) Render(ctx context.Context, job Job) (*Result, error) {
	if len(g.command) == 0 {
		return nil, fmt.Errorf("renderer command not configured")
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode render job: %w", err)
	}

	runCtx := context.WithoutCancel(ctx)
	if g.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, g.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, g.command[0], g.command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	rendersInFlight.Inc()
	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)
	rendersInFlight.Dec()

	if runErr != nil {
		outcome, err := g.failure(runCtx, runErr, stderr.String(), elapsed)
		rendersTotal.WithLabelValues(outcome).Inc()
		if outcome != outcomeStartError {
			renderDuration.Observe(elapsed.Seconds())
		}
		return nil, err
	}
	renderDuration.Observe(elapsed.Seconds())

	var resp rendererResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		slog.Warn("renderer returned non-JSON output", "error", err, "stdout_bytes", stdout.Len())
		rendersTotal.WithLabelValues(outcomeBadResponse).Inc()
		return nil, ErrBadResponse
	}
	if resp.OutputPath == nil || *resp.OutputPath == "" {
		slog.Warn("renderer response missing output_path", "stdout_bytes", stdout.Len())
		rendersTotal.WithLabelValues(outcomeBadResponse).Inc()
		return nil, ErrBadResponse
	}
	rendersTotal.WithLabelValues(outcomeOK).Inc()

	slog.Debug("renderer finished", "output", *resp.OutputPath, "duration", elapsed.String())
	return &Result{
		OutputPath: *resp.OutputPath,
		OutputName: filepath.Base(*resp.OutputPath),
		Duration:   elapsed,
	}, nil
}

// failure maps a failed run to its metrics outcome and the error returned
// to callers.
func (g *Gateway) failure(runCtx context.Context, runErr error, stderrText string, elapsed time.Duration) (string, error) {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		slog.Error("renderer timed out", "timeout", g.timeout.String())
		return outcomeTimeout, &FailureError{Message: "Image generation timed out.", ExitCode: -1}
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		// The process never started (missing binary, permissions).
		return outcomeStartError, fmt.Errorf("start renderer: %w", runErr)
	}

	msg := strings.TrimSpace(stderrText)
	if msg == "" {
		msg = "Image generation failed."
	}
	slog.Error("renderer failed",
		"exit_code", exitErr.ExitCode(),
		"duration", elapsed.String(),
		"stderr", msg,
	)
	return outcomeFailed, &FailureError{Message: msg, ExitCode: exitErr.ExitCode()}
}
