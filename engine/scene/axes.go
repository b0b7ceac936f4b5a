package scene

import (
	"math"

	"github.com/1siamBot/solids/engine/geom"
)

// AxisLine is a straight axis segment. Dash and Gap are world lengths;
// Dash == 0 draws a solid line.
type AxisLine struct {
	From, To  geom.Vec3
	Color     geom.Color3
	Dash, Gap float64
}

// Label is a text overlay pinned to a world position.
type Label struct {
	Text  string
	Pos   geom.Vec3
	Color geom.Color3
}

// Axes holds the helper geometry of a view.
type Axes struct {
	Lines  []AxisLine
	Cones  []*geom.Mesh3D
	Labels []Label
}

var (
	axisBlack = geom.Hex(0x000000)
	axisRed   = geom.Hex(0xFF0000)
	axisGreen = geom.Hex(0x00FF00)
	axisBlue  = geom.Hex(0x0000FF)
)

// BuildAxes lays out axis lines of half-length length through the origin,
// a dashed red overlay on X and end labels just past each axis. 3D views
// also get a Z axis and cone arrowheads.
func BuildAxes(length float64, is3D bool) Axes {
	var a Axes
	a.Lines = append(a.Lines,
		AxisLine{From: geom.V3(-length, 0, 0), To: geom.V3(length, 0, 0), Color: axisBlack},
		AxisLine{From: geom.V3(-length, 0, 0), To: geom.V3(length, 0, 0), Color: axisRed, Dash: 0.2, Gap: 0.1},
		AxisLine{From: geom.V3(0, -length, 0), To: geom.V3(0, length, 0), Color: axisBlack},
	)
	a.Labels = append(a.Labels,
		Label{Text: "X", Pos: geom.V3(length+0.5, 0, 0), Color: axisRed},
		Label{Text: "Y", Pos: geom.V3(0, length+0.5, 0), Color: axisGreen},
	)
	if !is3D {
		return a
	}

	a.Lines = append(a.Lines, AxisLine{From: geom.V3(0, 0, -length), To: geom.V3(0, 0, length), Color: axisBlack})
	a.Labels = append(a.Labels, Label{Text: "Z", Pos: geom.V3(0, 0, length+0.5), Color: axisBlue})

	cones := []struct {
		rot   geom.Mat4
		pos   geom.Vec3
		color geom.Color3
	}{
		{rot: geom.Mat4RotateZ(-math.Pi / 2), pos: geom.V3(length, 0, 0), color: axisRed},
		{rot: geom.Mat4Identity(), pos: geom.V3(0, length, 0), color: axisGreen},
		{rot: geom.Mat4RotateX(math.Pi / 2), pos: geom.V3(0, 0, length), color: axisBlue},
	}
	for _, c := range cones {
		m := geom.MakeCone(0.3, 0.5, 32, c.color)
		a.Cones = append(a.Cones, m.Transform(geom.Mat4Translate(c.pos.X, c.pos.Y, c.pos.Z).Mul(c.rot)))
	}
	return a
}

// Dashes splits l into its visible segments. A solid line is returned whole.
func (l AxisLine) Dashes() [][2]geom.Vec3 {
	total := l.To.Sub(l.From).Len()
	if l.Dash <= 0 || total == 0 {
		return [][2]geom.Vec3{{l.From, l.To}}
	}
	dir := l.To.Sub(l.From).Scale(1 / total)
	var out [][2]geom.Vec3
	for s := 0.0; s < total; s += l.Dash + l.Gap {
		e := math.Min(s+l.Dash, total)
		out = append(out, [2]geom.Vec3{l.From.Add(dir.Scale(s)), l.From.Add(dir.Scale(e))})
	}
	return out
}
