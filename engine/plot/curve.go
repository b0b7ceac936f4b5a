package plot

import (
	"log"

	"github.com/1siamBot/solids/engine/geom"
)

// DefaultPalette colours formulas by position; index i uses
// DefaultPalette[i % len(DefaultPalette)].
var DefaultPalette = []geom.Color3{
	geom.Hex(0xFF6600),
	geom.Hex(0x007BFF),
	geom.Hex(0x28A745),
	geom.Hex(0x6F42C1),
}

// Line widths in pixels for the single and multi formula paths.
const (
	SingleWidth = 5
	MultiWidth  = 4
)

// Polyline is one drawable curve in the XY plane. Points may hold NaN
// values on the single-formula path; renderers lift the pen there.
type Polyline struct {
	Points []geom.Vec2
	Color  geom.Color3
	Width  float64
}

// CurveGroup is the plot view's primary geometry: one or more polylines.
type CurveGroup struct {
	Lines []*Polyline
}

// PaletteColor returns the colour for formula index i, cycling through
// palette.
func PaletteColor(palette []geom.Color3, i int) geom.Color3 {
	if len(palette) == 0 {
		return geom.Color3{}
	}
	return palette[i%len(palette)]
}

// BuildCurve turns raw samples into one polyline without filtering: failed
// evaluations contribute the sentinel 0. Returns nil when the samples do not
// span at least two distinct points.
func BuildCurve(samples []Sample, c geom.Color3) *CurveGroup {
	pts := make([]geom.Vec2, len(samples))
	for i, s := range samples {
		pts[i] = geom.V2(s.X, s.Value())
	}
	if geom.Coincident(pts) {
		return nil
	}
	return &CurveGroup{Lines: []*Polyline{{Points: pts, Color: c, Width: SingleWidth}}}
}

// BuildCurves builds one polyline per sample sequence from its finite
// samples, coloured by sequence index. Sequences with fewer than two usable
// points are skipped; if every sequence is skipped the result is nil.
func BuildCurves(seqs [][]Sample, palette []geom.Color3) *CurveGroup {
	g := &CurveGroup{}
	for i, seq := range seqs {
		finite := Finite(seq)
		pts := make([]geom.Vec2, len(finite))
		for j, s := range finite {
			pts[j] = geom.V2(s.X, s.Y)
		}
		if geom.Coincident(pts) {
			continue
		}
		g.Lines = append(g.Lines, &Polyline{
			Points: pts,
			Color:  PaletteColor(palette, i),
			Width:  MultiWidth,
		})
	}
	if len(g.Lines) == 0 {
		log.Printf("Warning: no formula produced a drawable curve")
		return nil
	}
	return g
}
