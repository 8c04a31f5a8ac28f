package pipeline

import (
	"testing"

	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/interact"
	"github.com/matzehuels/foodstack/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateDish(t *testing.T) {
	tests := []struct {
		dish    string
		wantErr bool
	}{
		{"pizza", false},
		{"burger", false},
		{"taco", true},
		{"Pizza", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDish(tt.dish)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDish(%q) error = %v, wantErr %v", tt.dish, err, tt.wantErr)
		}
	}
}

func TestValidatePieceRange(t *testing.T) {
	tests := []struct {
		lo, hi  int
		wantErr bool
	}{
		{1, 12, false},
		{3, 3, false},
		{0, 12, true},
		{5, 4, true},
	}

	for _, tt := range tests {
		err := ValidatePieceRange(tt.lo, tt.hi)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePieceRange(%d, %d) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
		}
	}
}

func TestValidateSelection(t *testing.T) {
	if err := ValidateSelection([]string{"dough", "pineapple", "extra_cheese"}); err != nil {
		t.Errorf("Well-formed ids should pass even if unknown: %v", err)
	}
	if err := ValidateSelection([]string{"Pepperoni", "extra cheese", "jalapeño"}); err != nil {
		t.Errorf("Non-slug ids should pass as unknown ingredients: %v", err)
	}
	if err := ValidateSelection(nil); err != nil {
		t.Errorf("Empty selection should pass: %v", err)
	}
	err := ValidateSelection([]string{"dough", "dou\x00gh"})
	if !errors.Is(err, errors.ErrCodeInvalidIngredient) {
		t.Errorf("Malformed id should fail with INVALID_INGREDIENT, got %v", err)
	}
	if err := ValidateSelection([]string{""}); !errors.Is(err, errors.ErrCodeInvalidIngredient) {
		t.Errorf("Empty id should fail with INVALID_INGREDIENT, got %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should validate: %v", err)
	}

	if opts.Dish != DefaultDish {
		t.Errorf("Dish should be %s, got %s", DefaultDish, opts.Dish)
	}
	if opts.MinPieces != layout.DefaultMinPieces || opts.MaxPieces != layout.DefaultMaxPieces {
		t.Errorf("Piece range should be [%d, %d], got [%d, %d]",
			layout.DefaultMinPieces, layout.DefaultMaxPieces, opts.MinPieces, opts.MaxPieces)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Highlight != interact.DefaultHighlight {
		t.Errorf("Highlight should default, got %+v", opts.Highlight)
	}
	if opts.ImageSize != DefaultImageSize {
		t.Errorf("ImageSize should be %d, got %d", DefaultImageSize, opts.ImageSize)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsCatalogPathSkipsDish(t *testing.T) {
	opts := Options{CatalogPath: "custom.toml"}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("Catalog path without dish should pass: %v", err)
	}
	if opts.Dish != "" {
		t.Errorf("Dish should stay empty with a catalog path, got %q", opts.Dish)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad dish", Options{Dish: "taco"}, errors.ErrCodeInvalidDish},
		{"bad range", Options{MinPieces: 6, MaxPieces: 2}, errors.ErrCodeInvalidConfig},
		{"negative cap", Options{PieceCap: -1}, errors.ErrCodeInvalidConfig},
		{"bad id", Options{Selection: []string{"Dough"}}, errors.ErrCodeInvalidIngredient},
		{"bad hover", Options{Hovered: "two\nlines"}, errors.ErrCodeInvalidIngredient},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad background", Options{Background: "yellow"}, errors.ErrCodeInvalidConfig},
		{"huge image", Options{ImageSize: 100000}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Dish: "burger"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMax := opts.MaxPieces
	originalFormats := opts.Formats

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.MaxPieces != originalMax {
		t.Error("MaxPieces changed on second call")
	}
	if len(opts.Formats) != len(originalFormats) {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsScene(t *testing.T) {
	opts := Options{}
	if got := opts.Scene().Background; got != "#f1c40f" {
		t.Errorf("default background = %s, want #f1c40f", got)
	}
	opts.Background = "#FFFFFF"
	if got := opts.Scene().Background; got != "#ffffff" {
		t.Errorf("background = %s, want #ffffff", got)
	}
}

func TestOptionsIDs(t *testing.T) {
	opts := Options{Selection: []string{"bun", "meat"}}
	ids := opts.IDs()
	if len(ids) != 2 || ids[0] != "bun" || ids[1] != "meat" {
		t.Errorf("IDs() = %v", ids)
	}
}
