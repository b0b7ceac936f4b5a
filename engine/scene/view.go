// Package scene owns the per-view render state: camera, lights, axis
// helpers and the geometry currently attached to each view.
//
// A view holds the only reference to its live geometry. Replacing or
// clearing geometry releases the old objects first through the view's
// OnRelease hook, which renderers use to drop cached draw buffers.
package scene

import (
	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
)

// ID names a view.
type ID string

const (
	Graph2D  ID = "graph2D"
	Graph3DX ID = "graph3DX"
	Graph3DY ID = "graph3DY"
)

// Kind distinguishes the flat plot view from the solid views.
type Kind uint8

const (
	KindPlot Kind = iota
	KindSolid
)

// ScreenPos is a projected label position in viewport pixels.
type ScreenPos struct {
	X, Y    float64
	Visible bool
}

// View is one independently rendered panel.
type View struct {
	ID         ID
	Kind       Kind
	Camera     *Camera
	Lighting   LightingSetup
	Background geom.Color3
	Axes       Axes

	// LabelPositions[i] is where Axes.Labels[i] sits on screen; refreshed by
	// Update every tick.
	LabelPositions []ScreenPos

	// Primary is the plot view's current curve group, nil when nothing is
	// drawn. Solids accumulates until ClearTracked.
	Primary *plot.CurveGroup
	Solids  []*revolve.Solid

	// OnRelease, if set, is called with each *plot.CurveGroup or
	// *revolve.Solid the view lets go of.
	OnRelease func(obj any)
	// Released counts released objects.
	Released int
}

func (v *View) release(obj any) {
	v.Released++
	if v.OnRelease != nil {
		v.OnRelease(obj)
	}
}

// ReplacePrimary releases the current curve group and attaches g. A nil g
// leaves the view empty.
func (v *View) ReplacePrimary(g *plot.CurveGroup) {
	if v.Primary != nil {
		v.release(v.Primary)
		v.Primary = nil
	}
	v.Primary = g
}

// AppendAndTrack attaches s to the view. Existing solids are kept. A nil
// solid is ignored and reported as false.
func (v *View) AppendAndTrack(s *revolve.Solid) bool {
	if s == nil {
		return false
	}
	v.Solids = append(v.Solids, s)
	return true
}

// ClearTracked releases and detaches every tracked solid.
func (v *View) ClearTracked() {
	for _, s := range v.Solids {
		v.release(s)
	}
	v.Solids = nil
}

// ProjectNDC maps a world point to normalised device coordinates using the
// view's current camera.
func (v *View) ProjectNDC(p geom.Vec3) geom.Vec3 {
	return v.Camera.ProjectNDC(p)
}

// LabelPixel maps a world point to pixel coordinates inside a panel of
// w by h pixels. visible is false when the point lies outside the clip
// depth range.
func (v *View) LabelPixel(p geom.Vec3, w, h int) ScreenPos {
	ndc := v.ProjectNDC(p)
	return ScreenPos{
		X:       (ndc.X*0.5 + 0.5) * float64(w),
		Y:       (-ndc.Y*0.5 + 0.5) * float64(h),
		Visible: ndc.Z >= -1 && ndc.Z <= 1,
	}
}

// Update advances camera controls and re-projects label overlays.
func (v *View) Update() {
	v.Camera.Update()
	if cap(v.LabelPositions) < len(v.Axes.Labels) {
		v.LabelPositions = make([]ScreenPos, len(v.Axes.Labels))
	}
	v.LabelPositions = v.LabelPositions[:len(v.Axes.Labels)]
	for i, l := range v.Axes.Labels {
		v.LabelPositions[i] = v.LabelPixel(l.Pos, v.Camera.ScreenW, v.Camera.ScreenH)
	}
}
