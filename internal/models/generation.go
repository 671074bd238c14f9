// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Generation records one successful /generate call in the recent history.
// It is never stored in PostgreSQL.
type Generation struct {
	ID         string    `json:"id"`
	Output     string    `json:"output"`
	Title      string    `json:"title"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	MirrorURL  string    `json:"mirror_url,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
