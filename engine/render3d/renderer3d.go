// Package render3d draws scene views into ebiten images.
package render3d

import (
	"image/color"

	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/raster"
	"github.com/1siamBot/solids/engine/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type labelKey struct {
	text  string
	color geom.Color3
}

// Renderer3D draws each view into its own offscreen panel.
type Renderer3D struct {
	whiteImg *ebiten.Image
	builders map[scene.ID]*raster.Builder
	panels   map[scene.ID]*ebiten.Image
	labels   map[labelKey]*ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16

	// Triangles drawn during the last frame, all views.
	Triangles int
}

// NewRenderer3D installs a release hook on every view so cached lighting
// is dropped together with the geometry.
func NewRenderer3D(views []*scene.View) *Renderer3D {
	r := &Renderer3D{
		builders: make(map[scene.ID]*raster.Builder),
		panels:   make(map[scene.ID]*ebiten.Image),
		labels:   make(map[labelKey]*ebiten.Image),
	}
	for _, v := range views {
		b := raster.NewBuilder()
		r.builders[v.ID] = b
		v.OnRelease = b.Release
	}

	// 1x1 white image for colored triangle rendering
	r.whiteImg = ebiten.NewImage(4, 4)
	r.whiteImg.Fill(color.White)
	return r
}

// BeginFrame resets per-frame counters.
func (r *Renderer3D) BeginFrame() { r.Triangles = 0 }

// DrawView renders v at (x, y) on screen with size w by h.
func (r *Renderer3D) DrawView(screen *ebiten.Image, v *scene.View, x, y, w, h int) {
	panel := r.panel(v.ID, w, h)
	b := r.builders[v.ID]
	if b == nil {
		b = raster.NewBuilder()
		r.builders[v.ID] = b
	}
	dl := b.Build(v, w, h)

	panel.Fill(raster.NRGBA(dl.Background, 1))
	for _, s := range dl.Under {
		strokeSegment(panel, s)
	}
	r.drawTriangles(panel, dl.Tris)
	for _, s := range dl.Over {
		r.strokePolyline(panel, s)
	}
	for _, l := range dl.Labels {
		img := r.label(l.S, l.Color)
		op := &ebiten.DrawImageOptions{}
		lw, lh := img.Bounds().Dx(), img.Bounds().Dy()
		op.GeoM.Translate(float64(l.X)-float64(lw)/2, float64(l.Y)-float64(lh)/2)
		panel.DrawImage(img, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(panel, op)
}

func (r *Renderer3D) panel(id scene.ID, w, h int) *ebiten.Image {
	p := r.panels[id]
	if p != nil && p.Bounds().Dx() == w && p.Bounds().Dy() == h {
		return p
	}
	if p != nil {
		p.Deallocate()
	}
	p = ebiten.NewImage(w, h)
	r.panels[id] = p
	return p
}

func (r *Renderer3D) label(text string, c geom.Color3) *ebiten.Image {
	k := labelKey{text, c}
	if img, ok := r.labels[k]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(raster.TextImage(text, raster.NRGBA(c, 1)))
	r.labels[k] = img
	return img
}

func strokeSegment(dst *ebiten.Image, s raster.Segment) {
	vector.StrokeLine(dst, s.A.X, s.A.Y, s.B.X, s.B.Y, s.Width, raster.NRGBA(s.Color, 1), true)
}

// strokePolyline strokes a whole curve run as one path with round joins.
func (r *Renderer3D) strokePolyline(dst *ebiten.Image, s raster.Stroke) {
	var path vector.Path
	path.MoveTo(s.Points[0].X, s.Points[0].Y)
	for _, p := range s.Points[1:] {
		path.LineTo(p.X, p.Y)
	}
	r.vertices, r.indices = path.AppendVerticesAndIndicesForStroke(r.vertices[:0], r.indices[:0], &vector.StrokeOptions{
		Width:    s.Width,
		LineJoin: vector.LineJoinRound,
	})
	for i := range r.vertices {
		r.vertices[i].SrcX, r.vertices[i].SrcY = 1, 1
		r.vertices[i].ColorR = float32(s.Color.R)
		r.vertices[i].ColorG = float32(s.Color.G)
		r.vertices[i].ColorB = float32(s.Color.B)
		r.vertices[i].ColorA = 1
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(r.vertices, r.indices, r.whiteImg, op)
}

// drawTriangles batches the already sorted triangles. Vertex colours carry
// straight alpha.
func (r *Renderer3D) drawTriangles(dst *ebiten.Image, tris []raster.Tri) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range tris {
		base := uint16(len(r.vertices))
		for i := 0; i < 3; i++ {
			c := t.Color[i]
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   t.P[i].X,
				DstY:   t.P[i].Y,
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(c.R),
				ColorG: float32(c.G),
				ColorB: float32(c.B),
				ColorA: float32(t.Alpha),
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
		r.Triangles++

		// Flush if approaching uint16 limit
		if len(r.vertices) >= 65000 {
			dst.DrawTriangles(r.vertices, r.indices, r.whiteImg, nil)
			r.vertices = r.vertices[:0]
			r.indices = r.indices[:0]
		}
	}
	if len(r.vertices) > 0 {
		dst.DrawTriangles(r.vertices, r.indices, r.whiteImg, nil)
	}
}
