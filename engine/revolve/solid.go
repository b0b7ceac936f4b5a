// Package revolve builds solids of revolution: a formula is sampled over an
// interval, turned into a (radius, axial) profile and lathed a full turn
// around the X or Y axis.
package revolve

import (
	"math"

	"github.com/1siamBot/solids/engine/formula"
	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
)

// Axis selects the axis of revolution.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "unknown"
}

// Material describes how a solid is shaded.
type Material struct {
	Color       geom.Color3
	Opacity     float64
	DoubleSided bool
}

// DefaultOpacity lets the cavity show through the surface.
const DefaultOpacity = 0.7

// SolidMaterial is the semi-transparent double-sided material used for all
// solids of revolution.
func SolidMaterial(c geom.Color3) Material {
	return Material{Color: c, Opacity: DefaultOpacity, DoubleSided: true}
}

// Solid is a lathed surface placed in world space.
type Solid struct {
	Formula  string
	Axis     Axis
	Profile  []geom.Vec2
	Mesh     *geom.Mesh3D
	Material Material
}

// Profile maps samples to lathe profile points.
//
// About X a point is (|y|, x) and only finite samples with y >= 0 are kept;
// negative values are dropped, not mirrored. About Y a point is (|x|, y) and
// every finite sample is kept whatever the sign of x.
func Profile(samples []plot.Sample, axis Axis) []geom.Vec2 {
	out := make([]geom.Vec2, 0, len(samples))
	for _, s := range samples {
		if !s.Finite() {
			continue
		}
		switch axis {
		case AxisX:
			if s.Y < 0 {
				continue
			}
			out = append(out, geom.V2(math.Abs(s.Y), s.X))
		case AxisY:
			out = append(out, geom.V2(math.Abs(s.X), s.Y))
		}
	}
	return out
}

// BuildSolid samples f over iv and revolves it about axis. segments is used
// both for sampling and for the angular resolution. Returns nil when the
// formula is blank or the profile has fewer than two distinct points.
func BuildSolid(f string, iv plot.Interval, segments int, axis Axis, mat Material) *Solid {
	if formula.IsBlank(f) {
		return nil
	}
	s := FromSamples(plot.SampleFormula(f, iv, segments), segments, axis, mat)
	if s != nil {
		s.Formula = formula.Normalize(f)
	}
	return s
}

// FromSamples revolves already sampled data.
func FromSamples(samples []plot.Sample, segments int, axis Axis, mat Material) *Solid {
	prof := Profile(samples, axis)
	if geom.Coincident(prof) {
		return nil
	}
	mesh := geom.Lathe(prof, segments, mat.Color)
	if mesh == nil {
		return nil
	}
	if axis == AxisX {
		// The lathe runs along Y; turn it so the profile's axial
		// coordinate lies along world X.
		mesh = mesh.Transform(geom.Mat4RotateZ(-math.Pi / 2))
	}
	return &Solid{Axis: axis, Profile: prof, Mesh: mesh, Material: mat}
}
