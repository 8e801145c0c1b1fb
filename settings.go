package knitvis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ChartSettings configure the chart figure.
type ChartSettings struct {
	FontSize   float64 `toml:"font_size" yaml:"font_size" json:"font_size"`       // glyph size in points, zero hides glyphs
	Bold       bool    `toml:"bold" yaml:"bold" json:"bold"`
	CellSize   float64 `toml:"cell_size" yaml:"cell_size" json:"cell_size"`       // cell size in points
	TickEvery  int     `toml:"tick_every" yaml:"tick_every" json:"tick_every"`    // zero hides ticks
	LabelEvery int     `toml:"label_every" yaml:"label_every" json:"label_every"` // label ticks whose number is a multiple
}

// FabricSettings configure the fabric figure.
type FabricSettings struct {
	Ratio    float64 `toml:"ratio" yaml:"ratio" json:"ratio"`
	Padding  float64 `toml:"padding" yaml:"padding" json:"padding"`
	Outlines bool    `toml:"outlines" yaml:"outlines" json:"outlines"`
	Width    float64 `toml:"width" yaml:"width" json:"width"` // figure width in points
}

// RasterSettings configure bitmap output.
type RasterSettings struct {
	CellPixels int  `toml:"cell_pixels" yaml:"cell_pixels" json:"cell_pixels"`
	Glyphs     bool `toml:"glyphs" yaml:"glyphs" json:"glyphs"`
}

// Settings are user preferences for rendering, loaded from a TOML, YAML, or JSON file.
type Settings struct {
	Glyphs     Glyphs         `toml:"glyphs" yaml:"glyphs" json:"glyphs"`
	FrontColor Color          `toml:"front_color" yaml:"front_color" json:"front_color"`
	BackColor  Color          `toml:"back_color" yaml:"back_color" json:"back_color"`
	Chart      ChartSettings  `toml:"chart" yaml:"chart" json:"chart"`
	Fabric     FabricSettings `toml:"fabric" yaml:"fabric" json:"fabric"`
	Raster     RasterSettings `toml:"raster" yaml:"raster" json:"raster"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Glyphs:     DefaultGlyphs,
		FrontColor: White,
		BackColor:  Black,
		Chart: ChartSettings{
			FontSize:   12.0,
			Bold:       true,
			CellSize:   20.0,
			TickEvery:  1,
			LabelEvery: 1,
		},
		Fabric: FabricSettings{
			Ratio:   0.7,
			Padding: 0.01,
			Width:   576.0,
		},
		Raster: RasterSettings{
			CellPixels: 16,
			Glyphs:     true,
		},
	}
}

// LoadSettings reads settings from a .toml, .yaml, .yml, or .json file. Fields missing from
// the file keep their default value.
func LoadSettings(filename string) (Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(filename)
	if err != nil {
		return s, err
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(b)).Decode(&s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &s)
	case ".json":
		err = json.Unmarshal(b, &s)
	default:
		return s, fmt.Errorf("%w: unknown settings file extension %q", ErrFormat, ext)
	}
	if err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrFormat, filename, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Validate checks the colors and sizes.
func (s Settings) Validate() error {
	if _, err := s.FrontColor.RGBA(); err != nil {
		return err
	} else if _, err := s.BackColor.RGBA(); err != nil {
		return err
	} else if s.Chart.FontSize < 0.0 || s.Chart.CellSize <= 0.0 || s.Chart.TickEvery < 0 || s.Chart.LabelEvery < 0 {
		return fmt.Errorf("%w: invalid chart settings", ErrFormat)
	} else if s.Fabric.Ratio <= 0.0 || s.Fabric.Padding < 0.0 || 0.25 <= s.Fabric.Padding || s.Fabric.Width <= 0.0 {
		return fmt.Errorf("%w: invalid fabric settings", ErrFormat)
	} else if s.Raster.CellPixels <= 0 {
		return fmt.Errorf("%w: invalid raster settings", ErrFormat)
	}
	return nil
}

// SaveSettings writes settings to a file, in the format given by its extension.
func SaveSettings(filename string, s Settings) error {
	var b []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		buf := &bytes.Buffer{}
		err = toml.NewEncoder(buf).Encode(s)
		b = buf.Bytes()
	case ".yaml", ".yml":
		b, err = yaml.Marshal(s)
	case ".json":
		b, err = json.MarshalIndent(s, "", "  ")
	default:
		return fmt.Errorf("%w: unknown settings file extension %q", ErrFormat, ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
