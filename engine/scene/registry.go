package scene

import (
	"errors"
	"fmt"

	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
)

var ErrUnknownView = errors.New("scene: unknown view")

// Options configures the three views.
type Options struct {
	Width, Height int // panel size in pixels
	AxisLength    float64
	FrustumSize   float64 // plot view, world units visible vertically
	FOV           float64 // solid views, degrees
	CameraPos     geom.Vec3
	PlotCameraZ   float64
	Background    geom.Color3
}

func DefaultOptions() Options {
	return Options{
		Width:       600,
		Height:      400,
		AxisLength:  7,
		FrustumSize: 18,
		FOV:         75,
		CameraPos:   geom.V3(1, 5, 12),
		PlotCameraZ: 15,
		Background:  geom.Hex(0xF0F0F0),
	}
}

// Registry owns the plot view and the two solid views.
type Registry struct {
	views map[ID]*View
	order []ID
}

// NewRegistry builds the plot view (orthographic, no rotation) and the
// X and Y solid views (perspective, orbit).
func NewRegistry(opt Options) *Registry {
	r := &Registry{views: make(map[ID]*View)}
	r.add(&View{
		ID:         Graph2D,
		Kind:       KindPlot,
		Camera:     NewOrthoCamera(opt.Width, opt.Height, opt.FrustumSize, geom.V3(0, 0, opt.PlotCameraZ)),
		Lighting:   DefaultLighting(),
		Background: opt.Background,
		Axes:       BuildAxes(opt.AxisLength, false),
	})
	for _, id := range []ID{Graph3DX, Graph3DY} {
		r.add(&View{
			ID:         id,
			Kind:       KindSolid,
			Camera:     NewPerspectiveCamera(opt.Width, opt.Height, opt.FOV, opt.CameraPos),
			Lighting:   DefaultLighting(),
			Background: opt.Background,
			Axes:       BuildAxes(opt.AxisLength, true),
		})
	}
	return r
}

func (r *Registry) add(v *View) {
	r.views[v.ID] = v
	r.order = append(r.order, v.ID)
}

// View looks up a view by id.
func (r *Registry) View(id ID) (*View, error) {
	v, ok := r.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, id)
	}
	return v, nil
}

// Views returns the views in creation order.
func (r *Registry) Views() []*View {
	out := make([]*View, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.views[id])
	}
	return out
}

func (r *Registry) ReplacePrimary(id ID, g *plot.CurveGroup) error {
	v, err := r.View(id)
	if err != nil {
		return err
	}
	v.ReplacePrimary(g)
	return nil
}

func (r *Registry) AppendAndTrack(id ID, s *revolve.Solid) error {
	v, err := r.View(id)
	if err != nil {
		return err
	}
	v.AppendAndTrack(s)
	return nil
}

func (r *Registry) ClearTracked(id ID) error {
	v, err := r.View(id)
	if err != nil {
		return err
	}
	v.ClearTracked()
	return nil
}

// Update runs one tick of every view.
func (r *Registry) Update() {
	for _, id := range r.order {
		r.views[id].Update()
	}
}
