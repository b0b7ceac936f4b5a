// Package app drives the viewer: it holds the text inputs, runs the user
// operations against the scene registry and steps the views.
package app

import (
	"log"
	"strconv"

	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/formula"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
	"github.com/1siamBot/solids/engine/scene"
)

// Inputs mirrors the four text fields of the side panel.
type Inputs struct {
	Formula1 string
	Formula2 string
	AText    string
	BText    string
}

// Slots returns the formula text of each slot in order.
func (in Inputs) Slots() [2]string {
	return [2]string{in.Formula1, in.Formula2}
}

// App owns the scene registry and applies user operations to it.
type App struct {
	Config *config.Config
	Scenes *scene.Registry
	Inputs Inputs
	Events *EventBus

	// Regenerations counts completed RegenerateAll calls.
	Regenerations int
	// Revision is bumped whenever an operation rewrites Inputs.
	Revision uint64

	tick uint64
}

// New builds the three views from cfg. Nothing is drawn until the first
// RegenerateAll.
func New(cfg *config.Config) *App {
	a := &App{
		Config: cfg,
		Scenes: scene.NewRegistry(cfg.SceneOptions()),
		Events: NewEventBus(),
	}
	a.Events.On(EvtRegenerate, func(Event) { a.RegenerateAll() })
	a.Events.On(EvtClear, func(Event) { a.ClearAll() })
	a.Events.On(EvtSelectExample, func(e Event) {
		if ex, ok := e.Payload.(config.Example); ok {
			a.SelectExample(ex)
		}
	})
	a.Events.On(EvtInputChanged, func(e Event) {
		if in, ok := e.Payload.(Inputs); ok {
			a.setInputs(in)
		}
	})
	return a
}

// Interval parses the bound fields, falling back to the configured default
// for a field that does not parse.
func (a *App) Interval() plot.Interval {
	return plot.ParseInterval(a.Inputs.AText, a.Inputs.BText, a.Config.DefaultInterval())
}

// RegenerateAll rebuilds every view from the current inputs.
//
// One formula draws a single unfiltered curve in the first palette colour;
// two draw one filtered curve each. With no formula the plot is left as it
// is. Both solid views are always cleared, then each non-blank slot adds
// its solid about X and about Y.
func (a *App) RegenerateAll() {
	iv := a.Interval()
	segs := a.Config.Sampling.CurveSegments
	palette := a.Config.Palette()

	var formulas []string
	for _, f := range a.Inputs.Slots() {
		if !formula.IsBlank(f) {
			formulas = append(formulas, f)
		}
	}

	switch {
	case len(formulas) == 1:
		samples := plot.SampleFormula(formulas[0], iv, segs)
		a.replacePrimary(plot.BuildCurve(samples, plot.PaletteColor(palette, 0)))
	case len(formulas) > 1:
		seqs := make([][]plot.Sample, len(formulas))
		for i, f := range formulas {
			seqs[i] = plot.SampleFormula(f, iv, segs)
		}
		a.replacePrimary(plot.BuildCurves(seqs, palette))
	}

	a.clearSolids()
	radial := a.Config.Sampling.RadialSegments
	for slot, f := range a.Inputs.Slots() {
		if formula.IsBlank(f) {
			continue
		}
		for _, t := range []struct {
			id   scene.ID
			axis revolve.Axis
		}{
			{scene.Graph3DX, revolve.AxisX},
			{scene.Graph3DY, revolve.AxisY},
		} {
			s := revolve.BuildSolid(f, iv, radial, t.axis, a.Config.SolidMaterial(t.axis, slot))
			if s == nil {
				continue
			}
			if err := a.Scenes.AppendAndTrack(t.id, s); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}
	a.Regenerations++
}

// ClearAll blanks the inputs and releases every curve and solid.
func (a *App) ClearAll() {
	a.setInputs(Inputs{})
	a.replacePrimary(nil)
	a.clearSolids()
}

// SelectExample loads a preset into the first slot, blanks the second and
// regenerates.
func (a *App) SelectExample(ex config.Example) {
	a.setInputs(Inputs{
		Formula1: ex.Formula,
		AText:    formatBound(ex.A),
		BText:    formatBound(ex.B),
	})
	a.RegenerateAll()
}

func (a *App) setInputs(in Inputs) {
	a.Inputs = in
	a.Revision++
}

// Tick dispatches queued requests and advances every view by one step.
func (a *App) Tick() {
	a.tick++
	a.Events.Dispatch()
	a.Scenes.Update()
}

func (a *App) replacePrimary(g *plot.CurveGroup) {
	if err := a.Scenes.ReplacePrimary(scene.Graph2D, g); err != nil {
		log.Printf("Warning: %v", err)
	}
}

func (a *App) clearSolids() {
	for _, id := range []scene.ID{scene.Graph3DX, scene.Graph3DY} {
		if err := a.Scenes.ClearTracked(id); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
