// Package config loads the viewer settings from TOML. A default file is
// compiled in; a user file only needs the keys it changes.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
	"github.com/1siamBot/solids/engine/scene"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultTOML []byte

// ErrInvalid is returned by Validate for out-of-range or malformed settings.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Background string    `toml:"background"`
	Window     Window    `toml:"window"`
	Sampling   Sampling  `toml:"sampling"`
	Plot       Plot      `toml:"plot"`
	Solid      Solid     `toml:"solid"`
	Examples   []Example `toml:"example"`
}

type Window struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	PanelWidth   int    `toml:"panel_width"`
	PanelHeight  int    `toml:"panel_height"`
	SidebarWidth int    `toml:"sidebar_width"`
	Title        string `toml:"title"`
}

type Sampling struct {
	CurveSegments  int       `toml:"curve_segments"`
	RadialSegments int       `toml:"radial_segments"`
	Interval       []float64 `toml:"interval"`
}

type Plot struct {
	FrustumSize float64  `toml:"frustum_size"`
	CameraZ     float64  `toml:"camera_z"`
	AxisLength  float64  `toml:"axis_length"`
	Palette     []string `toml:"palette"`
}

type Solid struct {
	FOV            float64   `toml:"fov"`
	CameraPosition []float64 `toml:"camera_position"`
	Opacity        float64   `toml:"opacity"`
	XColors        []string  `toml:"x_colors"`
	YColors        []string  `toml:"y_colors"`
}

// Example is a preset selectable from the examples table.
type Example struct {
	Label   string  `toml:"label"`
	Formula string  `toml:"formula"`
	A       float64 `toml:"a"`
	B       float64 `toml:"b"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	c, err := Parse(defaultTOML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return c
}

// Load reads path on top of the defaults. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if !bytes.Equal(data, defaultTOML) {
		c = Default()
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges and that every colour parses.
func (c *Config) Validate() error {
	w := c.Window
	if w.PanelWidth <= 0 || w.PanelHeight <= 0 {
		return fmt.Errorf("%w: panel size %dx%d", ErrInvalid, w.PanelWidth, w.PanelHeight)
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, w.Width, w.Height)
	}
	if c.Sampling.CurveSegments <= 0 {
		return fmt.Errorf("%w: sampling.curve_segments must be positive, got %d", ErrInvalid, c.Sampling.CurveSegments)
	}
	if c.Sampling.RadialSegments <= 0 {
		return fmt.Errorf("%w: sampling.radial_segments must be positive, got %d", ErrInvalid, c.Sampling.RadialSegments)
	}
	if iv := c.Sampling.Interval; len(iv) != 2 || !finite(iv[0]) || !finite(iv[1]) {
		return fmt.Errorf("%w: sampling.interval must be two finite numbers, got %v", ErrInvalid, iv)
	}
	if c.Plot.FrustumSize <= 0 || c.Plot.AxisLength <= 0 {
		return fmt.Errorf("%w: plot.frustum_size and plot.axis_length must be positive", ErrInvalid)
	}
	if c.Solid.FOV <= 0 || c.Solid.FOV >= 180 {
		return fmt.Errorf("%w: solid.fov %g out of (0, 180)", ErrInvalid, c.Solid.FOV)
	}
	if len(c.Solid.CameraPosition) != 3 {
		return fmt.Errorf("%w: solid.camera_position needs 3 components, got %d", ErrInvalid, len(c.Solid.CameraPosition))
	}
	if c.Solid.Opacity <= 0 || c.Solid.Opacity > 1 {
		return fmt.Errorf("%w: solid.opacity %g out of (0, 1]", ErrInvalid, c.Solid.Opacity)
	}

	lists := []struct {
		key    string
		colors []string
	}{
		{"plot.palette", c.Plot.Palette},
		{"solid.x_colors", c.Solid.XColors},
		{"solid.y_colors", c.Solid.YColors},
	}
	for _, l := range lists {
		if len(l.colors) == 0 {
			return fmt.Errorf("%w: %s is empty", ErrInvalid, l.key)
		}
		for _, s := range l.colors {
			if _, err := ParseColor(s); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, l.key, err)
			}
		}
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	for i, ex := range c.Examples {
		if strings.TrimSpace(ex.Formula) == "" {
			return fmt.Errorf("%w: example %d has no formula", ErrInvalid, i+1)
		}
	}
	return nil
}

// ParseColor accepts "#RRGGBB", "0xRRGGBB" or bare "RRGGBB".
func ParseColor(s string) (geom.Color3, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) != 6 {
		return geom.Color3{}, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return geom.Color3{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return geom.Hex(uint32(v)), nil
}

// colors converts an already validated list.
func colors(list []string) []geom.Color3 {
	out := make([]geom.Color3, 0, len(list))
	for _, s := range list {
		c, _ := ParseColor(s)
		out = append(out, c)
	}
	return out
}

// Palette returns the curve colours.
func (c *Config) Palette() []geom.Color3 { return colors(c.Plot.Palette) }

// SolidColor returns the colour for the solid of formula slot about axis.
// Slots past the end of the list cycle.
func (c *Config) SolidColor(axis revolve.Axis, slot int) geom.Color3 {
	list := c.Solid.YColors
	if axis == revolve.AxisX {
		list = c.Solid.XColors
	}
	return plot.PaletteColor(colors(list), slot)
}

// SolidMaterial is the material for the solid of formula slot about axis.
func (c *Config) SolidMaterial(axis revolve.Axis, slot int) revolve.Material {
	m := revolve.SolidMaterial(c.SolidColor(axis, slot))
	m.Opacity = c.Solid.Opacity
	return m
}

// DefaultInterval is the interval used when the bound fields do not parse.
func (c *Config) DefaultInterval() plot.Interval {
	return plot.Interval{A: c.Sampling.Interval[0], B: c.Sampling.Interval[1]}
}

// SceneOptions maps the view settings onto scene.Options.
func (c *Config) SceneOptions() scene.Options {
	bg, _ := ParseColor(c.Background)
	p := c.Solid.CameraPosition
	return scene.Options{
		Width:       c.Window.PanelWidth,
		Height:      c.Window.PanelHeight,
		AxisLength:  c.Plot.AxisLength,
		FrustumSize: c.Plot.FrustumSize,
		FOV:         c.Solid.FOV,
		CameraPos:   geom.V3(p[0], p[1], p[2]),
		PlotCameraZ: c.Plot.CameraZ,
		Background:  bg,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
