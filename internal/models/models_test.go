package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestStylePresetValidate(t *testing.T) {
	tests := []struct {
		name    string
		preset  StylePreset
		wantErr bool
	}{
		{"valid", StylePreset{Name: "Bold Contrast"}, false},
		{"zero numbers are fine", StylePreset{Name: "Flat", FontSize: 0, DividerOpacity: -5}, false},
		{"empty name", StylePreset{Name: ""}, true},
		{"whitespace name", StylePreset{Name: "   "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.preset.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != "name" {
				t.Errorf("field: got %q, want name", ve.Field)
			}
		})
	}
}

func TestJSONTemplateValidate(t *testing.T) {
	valid := JSONTemplate{
		Name:         "Split Screen Classic",
		ContentType:  "comparison",
		TemplateJSON: `{"layers":[]}`,
		VarsJSON:     `{}`,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	tests := []struct {
		field  string
		mutate func(*JSONTemplate)
	}{
		{"name", func(j *JSONTemplate) { j.Name = "" }},
		{"content_type", func(j *JSONTemplate) { j.ContentType = " " }},
		{"template_json", func(j *JSONTemplate) { j.TemplateJSON = "" }},
		{"vars_json", func(j *JSONTemplate) { j.VarsJSON = "\n" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			jt := valid
			tt.mutate(&jt)

			var ve *ValidationError
			if !errors.As(jt.Validate(), &ve) {
				t.Fatal("expected *ValidationError")
			}
			if ve.Field != tt.field {
				t.Errorf("field: got %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if got := (&ValidationError{Field: "name"}).Error(); got != "name is required" {
		t.Errorf("got %q", got)
	}
	if got := (&ValidationError{Field: "name", Message: "Custom."}).Error(); got != "Custom." {
		t.Errorf("got %q", got)
	}
}

func TestStylePresetJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(StylePreset{Name: "x"})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		`"primary_color"`, `"font_size"`, `"banner_height"`, `"panel_height"`,
		`"panel_margin"`, `"panel_padding"`, `"panel_gap"`, `"divider_width"`,
		`"divider_opacity"`, `"created_at"`, `"updated_at"`,
	} {
		if !strings.Contains(string(b), key) {
			t.Errorf("missing key %s in %s", key, b)
		}
	}
}
