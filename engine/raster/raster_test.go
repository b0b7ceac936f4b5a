package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
	"github.com/1siamBot/solids/engine/scene"
)

func testViews(t *testing.T) *scene.Registry {
	t.Helper()
	return scene.NewRegistry(config.Default().SceneOptions())
}

func mustView(t *testing.T, r *scene.Registry, id scene.ID) *scene.View {
	t.Helper()
	v, err := r.View(id)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestBuildPlotView(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph2D)
	v.ReplacePrimary(plot.BuildCurve(plot.SampleFormula("x^2", plot.DefaultInterval, 100), plot.DefaultPalette[0]))

	dl := Build(v, 600, 400)
	if len(dl.Over) != 1 {
		t.Fatalf("%d curve strokes; want 1", len(dl.Over))
	}
	if n := len(dl.Over[0].Points); n != 101 {
		t.Errorf("stroke has %d points; want 101", n)
	}
	if len(dl.Under) < 49 {
		t.Errorf("%d axis segments; want two solid axes plus the dashes", len(dl.Under))
	}
	if len(dl.Tris) != 0 {
		t.Errorf("plot view produced %d triangles", len(dl.Tris))
	}
	if len(dl.Labels) != 2 {
		t.Errorf("%d labels; want 2", len(dl.Labels))
	}
}

func TestBuildLiftsPenAtNaN(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph2D)
	// sqrt(-1) is NaN: the first segment is not drawn.
	v.ReplacePrimary(plot.BuildCurve(plot.SampleFormula("sqrt(x)", plot.DefaultInterval, 4), plot.DefaultPalette[0]))

	dl := Build(v, 600, 400)
	if len(dl.Over) != 1 {
		t.Fatalf("%d curve strokes; want 1", len(dl.Over))
	}
	if n := len(dl.Over[0].Points); n != 4 {
		t.Errorf("stroke has %d points; want 4", n)
	}
}

func TestBuildSplitsStrokeAtGap(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph2D)
	// Undefined at x=0 only: samples -2, -1 | 0 | 1, 2.
	v.ReplacePrimary(plot.BuildCurve(plot.SampleFormula("sqrt(x*x - 1)", plot.Interval{A: -2, B: 2}, 4), plot.DefaultPalette[0]))

	dl := Build(v, 600, 400)
	if len(dl.Over) != 2 {
		t.Fatalf("%d curve strokes; want 2", len(dl.Over))
	}
	for i, s := range dl.Over {
		if len(s.Points) != 2 {
			t.Errorf("stroke %d has %d points; want 2", i, len(s.Points))
		}
	}
}

func TestBuildSolidView(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph3DY)
	s := revolve.BuildSolid("x^2", plot.Interval{A: 0, B: 2}, 24, revolve.AxisY, revolve.SolidMaterial(geom.Hex(0x28A745)))
	v.AppendAndTrack(s)

	dl := Build(v, 600, 400)
	if len(dl.Tris) == 0 {
		t.Fatal("no triangles")
	}
	solid, cones := 0, 0
	for i, tr := range dl.Tris {
		if i > 0 && tr.Depth > dl.Tris[i-1].Depth {
			t.Fatalf("triangle %d is farther than the one drawn before it", i)
		}
		switch tr.Alpha {
		case revolve.DefaultOpacity:
			solid++
		case 1:
			cones++
		default:
			t.Fatalf("triangle alpha %g", tr.Alpha)
		}
	}
	if solid == 0 || cones == 0 {
		t.Errorf("%d solid and %d arrowhead triangles; want both", solid, cones)
	}
	if len(dl.Labels) != 3 {
		t.Errorf("%d labels; want 3", len(dl.Labels))
	}
}

func TestRenderCurvePixels(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph2D)
	v.ReplacePrimary(plot.BuildCurve(plot.SampleFormula("x + 2", plot.DefaultInterval, 100), plot.DefaultPalette[0]))

	img := Render(Build(v, 600, 400))
	if got := img.RGBAAt(2, 2); got != (color.RGBA{0xF0, 0xF0, 0xF0, 0xFF}) {
		t.Errorf("corner = %v; want background", got)
	}
	// (1, 3) in world space lands at (322.2, 133.3).
	got := img.RGBAAt(322, 133)
	if !near(got.R, 0xFF) || !near(got.G, 0x66) || !near(got.B, 0x00) {
		t.Errorf("curve pixel = %v; want FF6600", got)
	}

	// Every pixel on the centre line is solid, including those at the
	// joints between samples.
	for i := 0; i <= 200; i++ {
		x := float64(i) / 100
		sx, sy, _ := v.Camera.ToScreen(geom.V3(x, x+2, 0))
		px, py := int(sx), int(sy)
		if got := img.RGBAAt(px, py); !near(got.R, 0xFF) || !near(got.G, 0x66) || !near(got.B, 0x00) {
			t.Fatalf("pixel (%d, %d) at x=%g = %v; want FF6600", px, py, x, got)
		}
	}
}

func TestStrokePolylineJoints(t *testing.T) {
	bg := geom.Hex(0xFFFFFF)
	c := NewCanvas(100, 40, bg)
	// Many short pieces along one horizontal line, joints at fractional x.
	var pts []Point
	for x := float32(10.3); x < 90; x += 0.7 {
		pts = append(pts, Point{x, 20.5})
	}
	c.StrokePolyline(pts, 5, color.NRGBA{0xFF, 0x66, 0x00, 0xFF})
	for x := 12; x < 88; x++ {
		for y := 19; y <= 21; y++ {
			if got := c.Img.RGBAAt(x, y); !near(got.R, 0xFF) || !near(got.G, 0x66) || !near(got.B, 0x00) {
				t.Fatalf("pixel (%d, %d) = %v; want solid FF6600", x, y, got)
			}
		}
	}

	// A right-angle corner leaves no notch on its outer side.
	c = NewCanvas(40, 40, bg)
	c.StrokePolyline([]Point{{5, 20.5}, {20.5, 20.5}, {20.5, 35}}, 5, color.Black)
	if got := c.Img.RGBAAt(21, 19); !near(got.R, 0) || !near(got.G, 0) || !near(got.B, 0) {
		t.Errorf("outer corner pixel = %v; want black", got)
	}
}

func TestRenderSolid(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph3DX)
	v.AppendAndTrack(revolve.BuildSolid("1", plot.Interval{A: -2, B: 2}, 24, revolve.AxisX, revolve.SolidMaterial(geom.Hex(0x007BFF))))

	img := Render(Build(v, 300, 200))
	bg := color.RGBA{0xF0, 0xF0, 0xF0, 0xFF}
	painted := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			if c := img.RGBAAt(x, y); c != bg && c.B > c.R {
				painted++
			}
		}
	}
	if painted < 200 {
		t.Errorf("%d bluish pixels; want the cylinder drawn", painted)
	}
}

func TestTextImage(t *testing.T) {
	img := TextImage("X", color.Black)
	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 13 {
		t.Fatalf("bounds %v; want 7x13", b)
	}
	inked := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			inked = true
			break
		}
	}
	if !inked {
		t.Error("glyph image is empty")
	}
}

func TestWritePNG(t *testing.T) {
	img := NewCanvas(16, 8, geom.Hex(0x336699)).Img
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	back, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v; want %v", back.Bounds(), img.Bounds())
	}
}

func TestBuilderReleasesLighting(t *testing.T) {
	r := testViews(t)
	v := mustView(t, r, scene.Graph3DY)
	b := NewBuilder()
	v.OnRelease = b.Release

	mat := revolve.SolidMaterial(geom.Hex(0x28A745))
	v.AppendAndTrack(revolve.BuildSolid("x", plot.Interval{A: 0, B: 1}, 8, revolve.AxisY, mat))
	v.AppendAndTrack(revolve.BuildSolid("x^2", plot.Interval{A: 0, B: 1}, 8, revolve.AxisY, mat))

	b.Build(v, 300, 200)
	// Two solids plus three arrowheads.
	if n := b.Cached(); n != 5 {
		t.Fatalf("%d cached meshes; want 5", n)
	}
	first := b.Build(v, 300, 200)
	if n := b.Cached(); n != 5 {
		t.Errorf("%d cached meshes after a second frame; want 5", n)
	}

	v.ClearTracked()
	if n := b.Cached(); n != 3 {
		t.Errorf("%d cached meshes after clearing; want the 3 arrowheads", n)
	}
	if len(Build(v, 300, 200).Tris) >= len(first.Tris) {
		t.Error("cleared solids still drawn")
	}
}
