// Package pipeline provides the build pipeline for foodstack.
//
// This package implements the complete catalog → layout → aggregate → frame →
// render pipeline used by every CLI command. Centralizing it keeps the
// commands consistent in defaults and validation.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Catalog: Load the embedded dish table or a custom catalog file
//  2. Layout: Expand the selection into placed pieces
//  3. Aggregate: Sum nutrition and price
//  4. Render: Assemble a viewport frame and write it as SVG, PNG, or JSON
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Dish:      "pizza",
//	    Selection: []string{"dough", "sauce", "cheese", "pepperoni"},
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/interact"
	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/nutrition"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

// =============================================================================
// Default Values - Single Source of Truth for every command
// =============================================================================

const (
	// DefaultDish is the dish used when none is given.
	DefaultDish = "pizza"

	// DefaultImageSize is the PNG edge length in pixels.
	DefaultImageSize = 512

	// DefaultUnit is the number of SVG pixels per scene unit.
	DefaultUnit = 100.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the build pipeline.
type Options struct {
	// Catalog options
	Dish        string `json:"dish,omitempty"`
	CatalogPath string `json:"catalog,omitempty"` // custom catalog file; overrides Dish

	// Selection
	Selection []string `json:"selection"`
	Hovered   string   `json:"hovered,omitempty"`

	// Layout options
	MinPieces int `json:"min_pieces,omitempty"`
	MaxPieces int `json:"max_pieces,omitempty"`
	PieceCap  int `json:"piece_cap,omitempty"` // 0 = unbounded

	// Render options
	Formats    []string           `json:"formats,omitempty"`
	Highlight  interact.Highlight `json:"highlight,omitempty"`
	Background string             `json:"background,omitempty"`
	ImageSize  int                `json:"image_size,omitempty"`
	Unit       float32            `json:"unit,omitempty"`
	Elapsed    time.Duration      `json:"elapsed,omitempty"` // idle rotation time

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Catalog is the catalog the selection was resolved against.
	Catalog *catalog.Catalog

	// Layout contains the placed pieces.
	Layout layout.Layout

	// Summary contains nutrition totals and price.
	Summary nutrition.Summary

	// Badges are the nutrition highlights the dish qualifies for.
	Badges []nutrition.Badge

	// Frame is the assembled viewport frame.
	Frame viewport.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Units         int
	Pieces        int
	Unknown       int
	LayoutTime    time.Duration
	AggregateTime time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDish checks that an embedded catalog exists for dish.
func ValidateDish(dish string) error {
	if !slices.Contains(catalog.Dishes(), dish) {
		return errors.New(errors.ErrCodeInvalidDish, "invalid dish: %q (must be one of: %s)", dish, strings.Join(catalog.Dishes(), ", "))
	}
	return nil
}

// ValidatePieceRange checks a pieces_per_unit clamp range.
func ValidatePieceRange(lo, hi int) error {
	if lo < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_pieces must be at least 1, got %d", lo)
	}
	if hi < lo {
		return errors.New(errors.ErrCodeInvalidConfig, "max_pieces %d is below min_pieces %d", hi, lo)
	}
	return nil
}

// ValidateSelection rejects empty ids and ids with control characters. Any
// other id is allowed even when it is not a catalog slug; ids missing from
// the catalog render with fallback geometry.
func ValidateSelection(ids []string) error {
	for _, id := range ids {
		if err := errors.ValidateSelectedID(id); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for catalog loading and layout.
func (o *Options) SetLayoutDefaults() {
	if o.Dish == "" && o.CatalogPath == "" {
		o.Dish = DefaultDish
	}
	if o.MinPieces == 0 {
		o.MinPieces = layout.DefaultMinPieces
	}
	if o.MaxPieces == 0 {
		o.MaxPieces = max(layout.DefaultMaxPieces, o.MinPieces)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for catalog loading and layout.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.CatalogPath == "" {
		if err := ValidateDish(o.Dish); err != nil {
			return err
		}
	}
	if err := ValidatePieceRange(o.MinPieces, o.MaxPieces); err != nil {
		return err
	}
	if o.PieceCap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "piece_cap must not be negative, got %d", o.PieceCap)
	}
	if err := ValidateSelection(o.Selection); err != nil {
		return err
	}
	if o.Hovered != "" {
		return errors.ValidateSelectedID(o.Hovered)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Highlight == (interact.Highlight{}) {
		o.Highlight = interact.DefaultHighlight
	}
	if o.ImageSize == 0 {
		o.ImageSize = DefaultImageSize
	}
	if o.Unit == 0 {
		o.Unit = DefaultUnit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.ImageSize < 0 || o.ImageSize > 8192 {
		return errors.New(errors.ErrCodeInvalidConfig, "image_size must be between 1 and 8192, got %d", o.ImageSize)
	}
	if o.Unit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unit must be positive, got %g", o.Unit)
	}
	if o.Background != "" {
		if err := validateColor(o.Background); err != nil {
			return err
		}
	}
	return nil
}

// IDs returns the selection as catalog ids.
func (o *Options) IDs() []catalog.ID {
	ids := make([]catalog.ID, len(o.Selection))
	for i, s := range o.Selection {
		ids[i] = catalog.ID(s)
	}
	return ids
}

// EngineOptions returns the layout engine options implied by o.
func (o *Options) EngineOptions() []layout.Option {
	return []layout.Option{
		layout.WithLogger(o.Logger),
		layout.WithPieceRange(o.MinPieces, o.MaxPieces),
		layout.WithMaxPieces(o.PieceCap),
	}
}

// Scene returns the viewport scene implied by o.
func (o *Options) Scene() viewport.Scene {
	s := viewport.DefaultScene()
	if o.Background != "" {
		s.Background = strings.ToLower(o.Background)
	}
	return s
}

// Source describes where the catalog comes from, for logs.
func (o *Options) Source() string {
	if o.CatalogPath != "" {
		return o.CatalogPath
	}
	return fmt.Sprintf("embedded:%s", o.Dish)
}
