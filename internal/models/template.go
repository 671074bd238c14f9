// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records persisted by the store and the
// validation rules applied to them before any write.
package models

import "time"

// Template is a named preset of caption text with basic color and size
// styling, used to prefill the simple generation form. Templates are
// seeded on first boot and only ever read afterwards.
type Template struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	MainTitle    string    `json:"main_title"`
	LeftCaption  string    `json:"left_caption"`
	RightCaption string    `json:"right_caption"`
	PrimaryColor string    `json:"primary_color"`
	FontSize     int       `json:"font_size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
