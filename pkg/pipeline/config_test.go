package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/interact"
)

const sampleConfig = `
dish = "burger"
formats = ["svg", "png"]

[layout]
min_pieces = 2
max_pieces = 8
piece_cap = 200

[highlight]
base_scale = 1.0
base_opacity = 0.7
hover_scale = 1.2
hover_opacity = 1.0
hover_tint = 0.25

[render]
background = "#ffffff"
image_size = 1024
unit = 120.0
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}

	if cfg.Dish != "burger" {
		t.Errorf("Dish = %q, want burger", cfg.Dish)
	}
	if len(cfg.Formats) != 2 {
		t.Errorf("Formats = %v, want [svg png]", cfg.Formats)
	}
	if cfg.Layout.MaxPieces != 8 || cfg.Layout.PieceCap != 200 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	want := interact.Highlight{BaseScale: 1, BaseOpacity: 0.7, HoverScale: 1.2, HoverOpacity: 1, HoverTint: 0.25}
	if cfg.Highlight == nil || *cfg.Highlight != want {
		t.Errorf("Highlight = %+v, want %+v", cfg.Highlight, want)
	}
	if cfg.Render.ImageSize != 1024 || cfg.Render.Unit != 120 {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `dish = `},
		{"unknown key", `dsh = "pizza"`},
		{"unknown table key", "[layout]\nmax = 3"},
		{"bad color", "[render]\nbackground = \"blue\""},
		{"wrong type", `formats = "svg"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("ParseConfig() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodstack.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Dish != "burger" {
		t.Errorf("Dish = %q, want burger", cfg.Dish)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestFileConfigApply(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	// Flags set before Apply win.
	opts := Options{Dish: "pizza", ImageSize: 256}
	cfg.Apply(&opts)

	if opts.Dish != "pizza" {
		t.Errorf("Dish = %q, flag should win", opts.Dish)
	}
	if opts.ImageSize != 256 {
		t.Errorf("ImageSize = %d, flag should win", opts.ImageSize)
	}
	if opts.MinPieces != 2 || opts.MaxPieces != 8 || opts.PieceCap != 200 {
		t.Errorf("layout not applied: %d %d %d", opts.MinPieces, opts.MaxPieces, opts.PieceCap)
	}
	if opts.Highlight.HoverScale != 1.2 {
		t.Errorf("Highlight not applied: %+v", opts.Highlight)
	}
	if opts.Background != "#ffffff" || opts.Unit != 120 {
		t.Errorf("render not applied: %q %v", opts.Background, opts.Unit)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("applied options should validate: %v", err)
	}
}
