package render

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/plot/vg"
)

// Style selects the chart decoration.
type Style string

// Supported styles.
const (
	StyleWhiteGrid Style = "whitegrid"
	StylePlain     Style = "plain"
)

// Defaults applied by NewConfig.
const (
	DefaultDPI    = 150
	DefaultWidth  = 20 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("nothing to plot")

// Config holds the output settings shared by every chart of a run. It is
// created once at startup and passed to the renderers.
type Config struct {
	OutputDir string
	DPI       int
	Width     vg.Length
	Height    vg.Length
	Style     Style
}

// NewConfig returns a Config with the default figure size.
func NewConfig(outputDir string, dpi int, style Style) Config {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if style == "" {
		style = StyleWhiteGrid
	}
	return Config{
		OutputDir: outputDir,
		DPI:       dpi,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Style:     style,
	}
}

// WithSize returns a copy of c drawing figures of the given size.
func (c Config) WithSize(width, height vg.Length) Config {
	c.Width = width
	c.Height = height
	return c
}

// Validate checks that c can produce files.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("render: output directory is empty")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("render: dpi must be positive, got %d", c.DPI)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("render: figure size must be positive, got %vx%v", c.Width, c.Height)
	}
	switch c.Style {
	case StyleWhiteGrid, StylePlain:
	default:
		return fmt.Errorf("render: unknown style %q", c.Style)
	}
	return nil
}

// Prepare creates the output directory.
func (c Config) Prepare() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("render: create output directory: %w", err)
	}
	return nil
}
