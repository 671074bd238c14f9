// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects images written by the renderer. Only the image
// header is decoded, so probing a large output stays cheap.
package imaging

import (
	"fmt"
	"image"
	"os"

	// Decoders for every format the renderer may emit.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a probed image.
type Info struct {
	Width  int
	Height int
	Format string // "jpeg", "png", "webp", ...
}

// Probe reads the header of the image at path and returns its dimensions.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode image header %s: %w", path, err)
	}
	return &Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
