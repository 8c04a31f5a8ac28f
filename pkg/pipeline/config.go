package pipeline

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/interact"
)

// FileConfig is the on-disk configuration file, e.g.
//
//	dish = "burger"
//	formats = ["svg", "png"]
//
//	[layout]
//	min_pieces = 2
//	max_pieces = 8
//	piece_cap = 200
//
//	[highlight]
//	base_scale = 1.0
//	base_opacity = 0.8
//	hover_scale = 1.15
//	hover_opacity = 1.0
//	hover_tint = 0.2
//
//	[render]
//	background = "#ffffff"
//	image_size = 1024
//	unit = 120.0
type FileConfig struct {
	Dish      string              `toml:"dish"`
	Catalog   string              `toml:"catalog"`
	Formats   []string            `toml:"formats"`
	Layout    LayoutConfig        `toml:"layout"`
	Highlight *interact.Highlight `toml:"highlight"`
	Render    RenderConfig        `toml:"render"`
}

// LayoutConfig is the [layout] table.
type LayoutConfig struct {
	MinPieces int `toml:"min_pieces"`
	MaxPieces int `toml:"max_pieces"`
	PieceCap  int `toml:"piece_cap"`
}

// RenderConfig is the [render] table.
type RenderConfig struct {
	Background string  `toml:"background"`
	ImageSize  int     `toml:"image_size"`
	Unit       float32 `toml:"unit"`
}

// LoadConfig reads a configuration file. Unknown keys are rejected so typos
// do not pass silently.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML configuration data.
func ParseConfig(data []byte) (FileConfig, error) {
	var cfg FileConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Render.Background != "" {
		if err := validateColor(cfg.Render.Background); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Apply fills fields of o that are still at their zero value. Command-line
// flags are applied first, so they take precedence over the file.
func (c FileConfig) Apply(o *Options) {
	if o.Dish == "" {
		o.Dish = c.Dish
	}
	if o.CatalogPath == "" {
		o.CatalogPath = c.Catalog
	}
	if len(o.Formats) == 0 {
		o.Formats = c.Formats
	}
	if o.MinPieces == 0 {
		o.MinPieces = c.Layout.MinPieces
	}
	if o.MaxPieces == 0 {
		o.MaxPieces = c.Layout.MaxPieces
	}
	if o.PieceCap == 0 {
		o.PieceCap = c.Layout.PieceCap
	}
	if c.Highlight != nil && o.Highlight == (interact.Highlight{}) {
		o.Highlight = *c.Highlight
	}
	if o.Background == "" {
		o.Background = c.Render.Background
	}
	if o.ImageSize == 0 {
		o.ImageSize = c.Render.ImageSize
	}
	if o.Unit == 0 {
		o.Unit = c.Render.Unit
	}
}

func validateColor(hex string) error {
	if _, err := colorful.Hex(hex); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid color %q (want #rrggbb)", hex)
	}
	return nil
}
