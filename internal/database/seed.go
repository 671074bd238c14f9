package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"thumbsmith/internal/models"
)

// SeedFS holds the bundled JSON template documents loaded on first boot.
//
//go:embed seeds/*.json
var SeedFS embed.FS

// seedTemplates are inserted when the templates table is empty.
var seedTemplates = []models.Template{
	{
		Name:         "Tech Comparison",
		MainTitle:    "MAC VS PC",
		LeftCaption:  "Speed. Power. Clean UI.",
		RightCaption: "Budget build. Lag. Pop-ups.",
		PrimaryColor: "#ff4d4f",
		FontSize:     64,
	},
	{
		Name:         "Fitness Before/After",
		MainTitle:    "90-DAY TRANSFORM",
		LeftCaption:  "Before: low energy",
		RightCaption: "After: lean & strong",
		PrimaryColor: "#16a34a",
		FontSize:     64,
	},
	{
		Name:         "Financial Era",
		MainTitle:    "BIG MONEY ERA",
		LeftCaption:  "Paying off debt",
		RightCaption: "Investing monthly",
		PrimaryColor: "#f59e0b",
		FontSize:     64,
	},
}

// seedStylePresets are inserted when the style_presets table is empty.
var seedStylePresets = []models.StylePreset{
	{
		Name:           "Bold Contrast",
		PrimaryColor:   "#4f46e5",
		FontSize:       68,
		BannerHeight:   120,
		PanelHeight:    220,
		PanelMargin:    32,
		PanelPadding:   18,
		PanelGap:       20,
		DividerWidth:   8,
		DividerOpacity: 140,
	},
	{
		Name:           "Warm Pop",
		PrimaryColor:   "#f97316",
		FontSize:       62,
		BannerHeight:   110,
		PanelHeight:    210,
		PanelMargin:    28,
		PanelPadding:   16,
		PanelGap:       16,
		DividerWidth:   6,
		DividerOpacity: 120,
	},
}

// jsonTemplateSeed names the pair of bundled documents behind one row.
type jsonTemplateSeed struct {
	Name         string
	ContentType  string
	TemplateFile string
	VarsFile     string
}

var seedJSONTemplates = []jsonTemplateSeed{
	{"Split Screen Classic", "comparison", "split_screen_classic.json", "vars_split_screen_classic.json"},
	{"VRAM Tax", "product_launch", "vram_tax.json", "vars_vram_tax.json"},
	{"Announcement Spotlight", "announcement", "announcement_spotlight.json", "vars_announcement_spotlight.json"},
}

// Seed inserts the fixed reference rows into every table that is still
// empty. Tables that already hold rows are left untouched, so calling Seed
// on every boot is safe. JSON template documents are read from fsys (under
// "seeds/") before anything is written; a missing document aborts seeding.
func Seed(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	jsonTemplates, err := loadJSONTemplateSeeds(fsys)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	empty, err := tableEmpty(ctx, tx, "templates")
	if err != nil {
		return err
	}
	if empty {
		for _, t := range seedTemplates {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO templates (name, main_title, left_caption, right_caption, primary_color, font_size)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, t.Name, t.MainTitle, t.LeftCaption, t.RightCaption, t.PrimaryColor, t.FontSize); err != nil {
				return fmt.Errorf("seed insert template %q: %w", t.Name, err)
			}
		}
		slog.Info("seeded templates", "count", len(seedTemplates))
	}

	empty, err = tableEmpty(ctx, tx, "style_presets")
	if err != nil {
		return err
	}
	if empty {
		for _, p := range seedStylePresets {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO style_presets (name, primary_color, font_size, banner_height, panel_height,
					panel_margin, panel_padding, panel_gap, divider_width, divider_opacity)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`, p.Name, p.PrimaryColor, p.FontSize, p.BannerHeight, p.PanelHeight,
				p.PanelMargin, p.PanelPadding, p.PanelGap, p.DividerWidth, p.DividerOpacity); err != nil {
				return fmt.Errorf("seed insert style preset %q: %w", p.Name, err)
			}
		}
		slog.Info("seeded style presets", "count", len(seedStylePresets))
	}

	empty, err = tableEmpty(ctx, tx, "json_templates")
	if err != nil {
		return err
	}
	if empty {
		for _, jt := range jsonTemplates {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO json_templates (name, content_type, template_json, vars_json)
				VALUES ($1, $2, $3, $4)
			`, jt.Name, jt.ContentType, jt.TemplateJSON, jt.VarsJSON); err != nil {
				return fmt.Errorf("seed insert json template %q: %w", jt.Name, err)
			}
		}
		slog.Info("seeded json templates", "count", len(jsonTemplates))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}
	return nil
}

// loadJSONTemplateSeeds reads both documents for every seed row verbatim.
func loadJSONTemplateSeeds(fsys fs.FS) ([]models.JSONTemplate, error) {
	items := make([]models.JSONTemplate, 0, len(seedJSONTemplates))
	for _, s := range seedJSONTemplates {
		tmpl, err := fs.ReadFile(fsys, "seeds/"+s.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("seed read %s: %w", s.TemplateFile, err)
		}
		vars, err := fs.ReadFile(fsys, "seeds/"+s.VarsFile)
		if err != nil {
			return nil, fmt.Errorf("seed read %s: %w", s.VarsFile, err)
		}
		items = append(items, models.JSONTemplate{
			Name:         s.Name,
			ContentType:  s.ContentType,
			TemplateJSON: string(tmpl),
			VarsJSON:     string(vars),
		})
	}
	return items, nil
}

// tableEmpty reports whether the named table has no rows. The name is
// always one of the fixed table names above, never user input.
func tableEmpty(ctx context.Context, tx *sql.Tx, table string) (bool, error) {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return false, fmt.Errorf("seed check %s: %w", table, err)
	}
	return count == 0, nil
}
