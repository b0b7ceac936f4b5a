package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
	"github.com/1siamBot/solids/engine/scene"
	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Sampling.CurveSegments != 100 || c.Sampling.RadialSegments != 60 {
		t.Errorf("segments = %d/%d; want 100/60", c.Sampling.CurveSegments, c.Sampling.RadialSegments)
	}
	if d := cmp.Diff(plot.Interval{A: -1, B: 3}, c.DefaultInterval()); d != "" {
		t.Errorf("interval mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff(plot.DefaultPalette, c.Palette()); d != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff(scene.DefaultOptions(), c.SceneOptions()); d != "" {
		t.Errorf("scene options mismatch (-want +got):\n%s", d)
	}
	if len(c.Examples) == 0 || c.Examples[0].Formula != "x^2" {
		t.Errorf("examples = %+v; want x^2 first", c.Examples)
	}
}

func TestSolidColors(t *testing.T) {
	c := Default()
	tests := []struct {
		axis revolve.Axis
		slot int
		want uint32
	}{
		{revolve.AxisX, 0, 0x007BFF},
		{revolve.AxisX, 1, 0xFF1493},
		{revolve.AxisY, 0, 0x28A745},
		{revolve.AxisY, 1, 0x00CED1},
		{revolve.AxisY, 2, 0x28A745},
	}
	for _, tt := range tests {
		if got := c.SolidColor(tt.axis, tt.slot); got != geom.Hex(tt.want) {
			t.Errorf("SolidColor(%v, %d) = %v; want %06X", tt.axis, tt.slot, got, tt.want)
		}
	}
	m := c.SolidMaterial(revolve.AxisX, 0)
	if m.Opacity != 0.7 || !m.DoubleSided {
		t.Errorf("material %+v; want opacity 0.7, double-sided", m)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
[sampling]
curve_segments = 40

[[example]]
label = "Line"
formula = "2*x"
a = 0.0
b = 1.0
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Sampling.CurveSegments != 40 {
		t.Errorf("curve_segments = %d; want 40", c.Sampling.CurveSegments)
	}
	if c.Sampling.RadialSegments != 60 {
		t.Errorf("radial_segments = %d; want default 60", c.Sampling.RadialSegments)
	}
	want := []Example{{Label: "Line", Formula: "2*x", A: 0, B: 1}}
	if d := cmp.Diff(want, c.Examples); d != "" {
		t.Errorf("examples mismatch (-want +got):\n%s", d)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero segments", "[sampling]\ncurve_segments = 0"},
		{"negative radial", "[sampling]\nradial_segments = -3"},
		{"empty palette", "[plot]\npalette = []"},
		{"bad colour", "[plot]\npalette = [\"#GG0000\"]"},
		{"short colour", "[solid]\nx_colors = [\"#FFF\"]"},
		{"opacity", "[solid]\nopacity = 1.5"},
		{"interval", "[sampling]\ninterval = [1.0]"},
		{"camera", "[solid]\ncamera_position = [1.0, 2.0]"},
		{"blank example", "[[example]]\nformula = \"  \""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse err=%v; want ErrInvalid", err)
			}
		})
	}
}

func TestParseUnknownKey(t *testing.T) {
	if _, err := Parse([]byte("[sampling]\nsegmnets = 5")); err == nil {
		t.Error("unknown key accepted")
	}
	if _, err := Parse([]byte("[sampling\n")); err == nil {
		t.Error("malformed TOML accepted")
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil || c.Window.PanelWidth != 600 {
		t.Fatalf("Load(\"\") = %+v, %v", c, err)
	}

	path := filepath.Join(t.TempDir(), "solids.toml")
	if err := os.WriteFile(path, []byte("background = \"#FFFFFF\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.SceneOptions().Background; got != geom.Hex(0xFFFFFF) {
		t.Errorf("background = %v; want white", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err=%v; want ErrNotExist", err)
	}
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#FF6600", "0xff6600", "FF6600", " #ff6600 "} {
		c, err := ParseColor(s)
		if err != nil || c != geom.Hex(0xFF6600) {
			t.Errorf("ParseColor(%q) = %v, %v", s, c, err)
		}
	}
	for _, s := range []string{"", "#12345", "#1234567", "orange"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("ParseColor(%q) accepted", s)
		}
	}
}
