package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/1siamBot/solids/engine/geom"
	"golang.org/x/image/vector"
)

// NRGBA converts a colour with opacity alpha to an 8-bit colour.
func NRGBA(c geom.Color3, alpha float64) color.NRGBA {
	r, g, b := c.RGBA8()
	a := uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Canvas is a software render target.
type Canvas struct {
	Img *image.RGBA
	z   vector.Rasterizer
}

func NewCanvas(w, h int, bg geom.Color3) *Canvas {
	c := &Canvas{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(NRGBA(bg, 1)), image.Point{}, draw.Src)
	return c
}

// joinSides is the polygon count used for round joins.
const joinSides = 12

// begin sizes the rasteriser to the given box clipped to the image and
// returns the clipped box. Points passed to the rasteriser must be offset by
// its minimum corner.
func (c *Canvas) begin(minX, minY, maxX, maxY float32) (image.Rectangle, bool) {
	r := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	).Intersect(c.Img.Bounds())
	if r.Empty() {
		return r, false
	}
	c.z.Reset(r.Dx(), r.Dy())
	c.z.DrawOp = draw.Over
	return r, true
}

func (c *Canvas) polygon(pts []Point, o Point) {
	c.z.MoveTo(pts[0].X-o.X, pts[0].Y-o.Y)
	for _, p := range pts[1:] {
		c.z.LineTo(p.X-o.X, p.Y-o.Y)
	}
	c.z.ClosePath()
}

// FillPolygon fills a closed polygon, blending over what is already drawn.
// The rasteriser is sized to the polygon's clipped bounding box.
func (c *Canvas) FillPolygon(pts []Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	r, ok := c.begin(minX, minY, maxX, maxY)
	if !ok {
		return
	}
	c.polygon(pts, Point{float32(r.Min.X), float32(r.Min.Y)})
	c.z.Draw(c.Img, r, image.NewUniform(col), image.Point{})
}

// StrokeLine draws a segment as a quad of the given width.
func (c *Canvas) StrokeLine(a, b Point, width float32, col color.Color) {
	c.StrokePolyline([]Point{a, b}, width, col)
}

// StrokePolyline draws connected segments with round joins and butt ends.
// Every piece goes into one rasteriser pass: all pieces wind the same way,
// so where they meet or overlap their coverage adds up to a solid line and
// the colour is blended onto the image once.
func (c *Canvas) StrokePolyline(pts []Point, width float32, col color.Color) {
	if len(pts) < 2 {
		return
	}
	if width < 1 {
		width = 1
	}
	hw := width / 2
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	r, ok := c.begin(minX-hw-1, minY-hw-1, maxX+hw+1, maxY+hw+1)
	if !ok {
		return
	}
	o := Point{float32(r.Min.X), float32(r.Min.Y)}

	drawn := false
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		c.polygon([]Point{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		}, o)
		if i < len(pts)-1 {
			c.polygon(joinAt(b, hw), o)
		}
		drawn = true
	}
	if drawn {
		c.z.Draw(c.Img, r, image.NewUniform(col), image.Point{})
	}
}

// joinAt returns a disc of radius hw around p, wound like the segment quads
// in StrokePolyline.
func joinAt(p Point, hw float32) []Point {
	pts := make([]Point, joinSides)
	for k := range pts {
		a := -2 * math.Pi * float64(k) / joinSides
		pts[k] = Point{p.X + hw*float32(math.Cos(a)), p.Y + hw*float32(math.Sin(a))}
	}
	return pts
}

// Render rasterises dl into a new image.
func Render(dl *DrawList) *image.RGBA {
	c := NewCanvas(dl.W, dl.H, dl.Background)
	for _, s := range dl.Under {
		c.StrokeLine(s.A, s.B, s.Width, NRGBA(s.Color, 1))
	}
	for _, t := range dl.Tris {
		c.FillPolygon(t.P[:], NRGBA(t.FlatColor(), t.Alpha))
	}
	for _, s := range dl.Over {
		c.StrokePolyline(s.Points, s.Width, NRGBA(s.Color, 1))
	}
	for _, l := range dl.Labels {
		DrawText(c.Img, l.S, int(l.X), int(l.Y), NRGBA(l.Color, 1))
	}
	return c.Img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
