// Package raster turns a scene view into screen-space primitives and can
// rasterise them into an image without a window.
//
// Build produces a DrawList: projected segments and lit, depth-sorted
// triangles. The window renderer feeds the list to the GPU; Render fills an
// *image.RGBA with golang.org/x/image/vector for headless export and tests.
package raster

import (
	"math"
	"sort"

	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
	"github.com/1siamBot/solids/engine/scene"
)

// Point is a pixel position.
type Point struct{ X, Y float32 }

// Segment is a projected line piece.
type Segment struct {
	A, B  Point
	Color geom.Color3
	Width float32
}

// Stroke is an unbroken run of a projected polyline, drawn with one pen
// stroke so its pieces join without seams.
type Stroke struct {
	Points []Point
	Color  geom.Color3
	Width  float32
}

// Tri is a projected, lit triangle.
type Tri struct {
	P     [3]Point
	Color [3]geom.Color3
	Alpha float64
	Depth float64 // mean NDC z, larger is farther
}

// Text is a label placed in pixels; X, Y is the centre of the text.
type Text struct {
	S     string
	X, Y  float32
	Color geom.Color3
}

// DrawList holds a view's primitives in paint order: Under, Tris, Over,
// Labels.
type DrawList struct {
	W, H       int
	Background geom.Color3
	Under      []Segment // axis lines
	Tris       []Tri     // solids and arrowheads, back to front
	Over       []Stroke  // plot curves
	Labels     []Text
}

// Line widths in pixels.
const (
	AxisWidth = 1
	DashWidth = 1
)

// offscreenLimit bounds how far outside the viewport a projected vertex may
// fall before its primitive is dropped.
const offscreenLimit = 4

// Builder builds draw lists and keeps the lit vertex colours of each mesh
// between frames. Lighting does not depend on the camera, so a mesh is lit
// once until Release drops it.
type Builder struct {
	lit map[*geom.Mesh3D]*litMesh
}

// litMesh holds per-vertex colours for the front and back side of every
// triangle.
type litMesh struct {
	front, back [][3]geom.Color3
}

func NewBuilder() *Builder {
	return &Builder{lit: make(map[*geom.Mesh3D]*litMesh)}
}

// Cached reports how many meshes have cached lighting.
func (b *Builder) Cached() int { return len(b.lit) }

// Release drops cached data for a *revolve.Solid let go by a view. It is
// meant to be installed as scene.View.OnRelease.
func (b *Builder) Release(obj any) {
	if s, ok := obj.(*revolve.Solid); ok && s != nil {
		delete(b.lit, s.Mesh)
	}
}

// Build projects v into a w by h viewport without caching.
func Build(v *scene.View, w, h int) *DrawList {
	return (&Builder{}).Build(v, w, h)
}

// Build projects v into a w by h viewport. The view's camera is resized to
// match.
func (b *Builder) Build(v *scene.View, w, h int) *DrawList {
	v.Camera.Resize(w, h)
	dl := &DrawList{W: w, H: h, Background: v.Background}

	for _, l := range v.Axes.Lines {
		width := float32(AxisWidth)
		if l.Dash > 0 {
			width = DashWidth
		}
		for _, d := range l.Dashes() {
			if s, ok := dl.segment(v.Camera, d[0], d[1], l.Color, width); ok {
				dl.Under = append(dl.Under, s)
			}
		}
	}

	eye := v.Camera.Eye()
	for _, s := range v.Solids {
		if s == nil || s.Mesh.IsEmpty() {
			continue
		}
		dl.addMesh(v, eye, s.Mesh, b.lighting(v, s.Mesh), s.Material.Opacity, s.Material.DoubleSided)
	}
	for _, c := range v.Axes.Cones {
		dl.addMesh(v, eye, c, b.lighting(v, c), 1, true)
	}
	sort.SliceStable(dl.Tris, func(i, j int) bool {
		return dl.Tris[i].Depth > dl.Tris[j].Depth
	})

	if v.Primary != nil {
		for _, pl := range v.Primary.Lines {
			dl.addPolyline(v.Camera, pl)
		}
	}

	for _, l := range v.Axes.Labels {
		p := v.LabelPixel(l.Pos, w, h)
		if !p.Visible {
			continue
		}
		dl.Labels = append(dl.Labels, Text{S: l.Text, X: float32(p.X), Y: float32(p.Y), Color: l.Color})
	}
	return dl
}

func (dl *DrawList) onScreen(x, y float64) bool {
	lw, lh := offscreenLimit*float64(dl.W), offscreenLimit*float64(dl.H)
	return x >= -lw && x <= lw && y >= -lh && y <= lh && !math.IsNaN(x) && !math.IsNaN(y)
}

// point projects p, reporting false when it falls outside the clip range.
func (dl *DrawList) point(c *scene.Camera, p geom.Vec3) (Point, bool) {
	x, y, z := c.ToScreen(p)
	if z < -1 || z > 1 || !dl.onScreen(x, y) {
		return Point{}, false
	}
	return Point{float32(x), float32(y)}, true
}

func (dl *DrawList) segment(c *scene.Camera, a, b geom.Vec3, col geom.Color3, width float32) (Segment, bool) {
	pa, ok := dl.point(c, a)
	if !ok {
		return Segment{}, false
	}
	pb, ok := dl.point(c, b)
	if !ok {
		return Segment{}, false
	}
	return Segment{A: pa, B: pb, Color: col, Width: width}, true
}

// addPolyline splits pl into strokes, lifting the pen at points that are
// not finite or cannot be projected.
func (dl *DrawList) addPolyline(c *scene.Camera, pl *plot.Polyline) {
	var run []Point
	flush := func() {
		if len(run) >= 2 {
			dl.Over = append(dl.Over, Stroke{Points: run, Color: pl.Color, Width: float32(pl.Width)})
		}
		run = nil
	}
	for _, p := range pl.Points {
		if !p.IsFinite() {
			flush()
			continue
		}
		pt, ok := dl.point(c, geom.V3(p.X, p.Y, 0))
		if !ok {
			flush()
			continue
		}
		run = append(run, pt)
	}
	flush()
}

// lighting returns the lit colours of m, from the cache when there is one.
func (b *Builder) lighting(v *scene.View, m *geom.Mesh3D) *litMesh {
	if lm, ok := b.lit[m]; ok {
		return lm
	}
	lm := &litMesh{
		front: make([][3]geom.Color3, len(m.Triangles)),
		back:  make([][3]geom.Color3, len(m.Triangles)),
	}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			n := tri.V[j].Normal
			lm.front[i][j] = v.Lighting.ComputeLighting(n, tri.V[j].Color)
			lm.back[i][j] = v.Lighting.ComputeLighting(n.Scale(-1), tri.V[j].Color)
		}
	}
	if b.lit != nil {
		b.lit[m] = lm
	}
	return lm
}

// addMesh projects every triangle of m. Back faces of a double-sided
// surface take the colours lit with the flipped normal; single-sided back
// faces are culled.
func (dl *DrawList) addMesh(v *scene.View, eye geom.Vec3, m *geom.Mesh3D, lm *litMesh, alpha float64, doubleSided bool) {
	for i, tri := range m.Triangles {
		var t Tri
		visible := true
		for j := 0; j < 3; j++ {
			x, y, z := v.Camera.ToScreen(tri.V[j].Pos)
			if z < -1 || z > 1 || !dl.onScreen(x, y) {
				visible = false
				break
			}
			t.P[j] = Point{float32(x), float32(y)}
			t.Depth += z / 3
		}
		if !visible {
			continue
		}

		// Shading normals decide the side, not the winding.
		n := tri.V[0].Normal.Add(tri.V[1].Normal).Add(tri.V[2].Normal)
		if n.Len() < 1e-9 {
			n = tri.FaceNormal()
		}
		switch {
		case n.Dot(eye.Sub(tri.Center())) >= 0:
			t.Color = lm.front[i]
		case doubleSided:
			t.Color = lm.back[i]
		default:
			continue
		}
		t.Alpha = alpha
		dl.Tris = append(dl.Tris, t)
	}
}

// FlatColor is the mean of the triangle's vertex colours.
func (t Tri) FlatColor() geom.Color3 {
	return geom.Color3{
		R: (t.Color[0].R + t.Color[1].R + t.Color[2].R) / 3,
		G: (t.Color[0].G + t.Color[1].G + t.Color[2].G) / 3,
		B: (t.Color[0].B + t.Color[1].B + t.Color[2].B) / 3,
	}
}
