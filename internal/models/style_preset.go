// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// StylePreset is a named bundle of color and layout parameters that can be
// applied to any generation independently of its caption text.
type StylePreset struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	PrimaryColor   string    `json:"primary_color"`
	FontSize       int       `json:"font_size"`
	BannerHeight   int       `json:"banner_height"`
	PanelHeight    int       `json:"panel_height"`
	PanelMargin    int       `json:"panel_margin"`
	PanelPadding   int       `json:"panel_padding"`
	PanelGap       int       `json:"panel_gap"`
	DividerWidth   int       `json:"divider_width"`
	DividerOpacity int       `json:"divider_opacity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate checks the fields required to persist a preset. Numeric values
// carry no bounds beyond what the INTEGER columns hold.
func (p *StylePreset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "Preset name is required."}
	}
	return nil
}
