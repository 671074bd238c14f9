package handlers

import (
	"fmt"
	"math"
	"unicode/utf8"

	"thumbsmith/internal/models"
)

// Length limits matching the VARCHAR(255) columns. Template and vars
// documents are TEXT and only bounded by maxJSONBody.
const (
	maxNameLen        = 255
	maxColorLen       = 255
	maxContentTypeLen = 255
)

// lengthRule is one field checked by checkLengths.
type lengthRule struct {
	field string
	label string
	value string
	max   int
}

// checkLengths returns a ValidationError for the first value longer than
// its limit.
func checkLengths(rules ...lengthRule) error {
	for _, r := range rules {
		if utf8.RuneCountInString(r.value) > r.max {
			return &models.ValidationError{
				Field:   r.field,
				Message: fmt.Sprintf("%s is too long (max %d characters).", r.label, r.max),
			}
		}
	}
	return nil
}

// rangeRule is one numeric field checked by checkRanges.
type rangeRule struct {
	field string
	label string
	value int
}

// checkRanges returns a ValidationError for the first value that does not
// fit the INTEGER columns.
func checkRanges(rules ...rangeRule) error {
	for _, r := range rules {
		if r.value < math.MinInt32 || r.value > math.MaxInt32 {
			return &models.ValidationError{
				Field:   r.field,
				Message: fmt.Sprintf("%s is out of range.", r.label),
			}
		}
	}
	return nil
}

// validatePreset checks a preset before it reaches the store.
func validatePreset(p *models.StylePreset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := checkLengths(
		lengthRule{"name", "Preset name", p.Name, maxNameLen},
		lengthRule{"primary_color", "Primary color", p.PrimaryColor, maxColorLen},
	); err != nil {
		return err
	}
	return checkRanges(
		rangeRule{"font_size", "Font size", p.FontSize},
		rangeRule{"banner_height", "Banner height", p.BannerHeight},
		rangeRule{"panel_height", "Panel height", p.PanelHeight},
		rangeRule{"panel_margin", "Panel margin", p.PanelMargin},
		rangeRule{"panel_padding", "Panel padding", p.PanelPadding},
		rangeRule{"panel_gap", "Panel gap", p.PanelGap},
		rangeRule{"divider_width", "Divider width", p.DividerWidth},
		rangeRule{"divider_opacity", "Divider opacity", p.DividerOpacity},
	)
}

// validateJSONTemplate checks a JSON template before it reaches the store.
func validateJSONTemplate(t *models.JSONTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return checkLengths(
		lengthRule{"name", "Name", t.Name, maxNameLen},
		lengthRule{"content_type", "Content type", t.ContentType, maxContentTypeLen},
	)
}
